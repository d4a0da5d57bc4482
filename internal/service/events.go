package service

import (
	"context"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/auth"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/cache"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/metrics"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/moderation"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExternalEmailPrefix marks registrations recorded for an external form.
const ExternalEmailPrefix = "external_"

// EventService handles event creation, deletion and registration.
type EventService struct {
	events   EventStore
	regs     RegistrationStore
	words    BannedWordStore
	cache    Cache
	statsTTL time.Duration
	log      *zap.Logger
}

// NewEventService constructs an EventService.
func NewEventService(events EventStore, regs RegistrationStore, words BannedWordStore, c Cache, statsTTL time.Duration, log *zap.Logger) *EventService {
	return &EventService{
		events:   events,
		regs:     regs,
		words:    words,
		cache:    c,
		statsTTL: statsTTL,
		log:      log,
	}
}

// List returns events matching f.
func (s *EventService) List(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	events, err := s.events.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return emptyIfNil(events), nil
}

// Get returns a single event.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	return s.events.GetByID(ctx, id)
}

// Create validates req, screens it against the banned word list and stores
// the event on behalf of who.
func (s *EventService) Create(ctx context.Context, who *auth.Claims, req model.CreateEventRequest) (*model.Event, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Category = strings.TrimSpace(req.Category)
	req.Date = strings.TrimSpace(req.Date)
	req.Time = strings.TrimSpace(req.Time)
	req.Venue = strings.TrimSpace(req.Venue)
	req.Society = strings.TrimSpace(req.Society)

	required := []struct{ name, value string }{
		{"title", req.Title},
		{"description", req.Description},
		{"category", req.Category},
		{"date", req.Date},
		{"time", req.Time},
		{"venue", req.Venue},
	}
	for _, f := range required {
		if f.value == "" {
			return nil, invalid("Missing required field: " + f.name)
		}
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		return nil, invalid("Invalid date, expected YYYY-MM-DD")
	}
	clock, ok := normalizeTime(req.Time)
	if !ok {
		return nil, invalid("Invalid time, expected HH:MM")
	}

	words, err := s.words.Words(ctx)
	if err != nil {
		return nil, err
	}
	text := moderation.EventText(req.Title, req.Description, req.Society, req.Venue)
	if word := moderation.Match(text, words); word != "" {
		metrics.TrackEventBlocked()
		s.log.Info("event blocked by banned word",
			zap.String("user_id", who.UserID),
			zap.String("word", word),
		)
		return nil, &BannedContentError{Word: word}
	}

	createdBy := who.UserID
	event := &model.Event{
		ID:              uuid.NewString(),
		Title:           req.Title,
		Description:     req.Description,
		Category:        req.Category,
		Date:            req.Date,
		Time:            clock,
		Venue:           req.Venue,
		PosterURL:       strings.TrimSpace(req.PosterURL),
		RegistrationURL: strings.TrimSpace(req.RegistrationURL),
		Society:         req.Society,
		CreatedBy:       &createdBy,
		LocationID:      req.LocationID,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
		LocationAddress: req.LocationAddress,
	}
	if req.EventPassword != "" {
		hash, err := auth.HashPassword(req.EventPassword)
		if err != nil {
			return nil, err
		}
		event.PasswordHash = hash
		event.IsLocked = true
	}

	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	metrics.TrackEventCreated()
	s.invalidate(ctx)
	return event, nil
}

// Delete removes an event and its registrations. The creator, admin-tier
// roles, and anyone for an event without a creator may delete it.
func (s *EventService) Delete(ctx context.Context, who *auth.Claims, id string) (int64, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if event.CreatedBy != nil && !owns(who, event) {
		return 0, ErrForbidden
	}
	removed, err := s.events.Delete(ctx, id)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return removed, nil
}

// SetExpired flips an event's expired flag. Only the creator and admin-tier
// roles may do so.
func (s *EventService) SetExpired(ctx context.Context, who *auth.Claims, id string, expired bool) error {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !owns(who, event) {
		return ErrForbidden
	}
	return s.events.SetExpired(ctx, id, expired)
}

func owns(who *auth.Claims, e *model.Event) bool {
	if who.Role.IsAdminTier() {
		return true
	}
	return e.CreatedBy != nil && *e.CreatedBy == who.UserID
}

// Register signs who up for an event and returns its new registration count.
// Locked events require the event password. email defaults to the token
// email.
func (s *EventService) Register(ctx context.Context, who *auth.Claims, id string, req model.RegisterRequest) (int, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	if event.IsLocked {
		if req.EventPassword == "" {
			return 0, ErrPasswordRequired
		}
		if !auth.CheckPassword(event.PasswordHash, req.EventPassword) {
			return 0, ErrIncorrectPassword
		}
	}

	email := strings.TrimSpace(req.Email)
	if email == "" {
		email = who.Email
	}
	count, err := s.regs.Book(ctx, id, who.UserID, email)
	if err != nil {
		return 0, err
	}
	metrics.TrackRegistration(metrics.KindDirect)
	s.invalidate(ctx)
	return count, nil
}

// MarkRegistered records that who registered through the event's external
// form.
func (s *EventService) MarkRegistered(ctx context.Context, who *auth.Claims, id string) (int, error) {
	count, err := s.regs.Book(ctx, id, who.UserID, ExternalEmailPrefix+who.Email)
	if err != nil {
		return 0, err
	}
	metrics.TrackRegistration(metrics.KindExternal)
	s.invalidate(ctx)
	return count, nil
}

// VerifyPassword checks an event password. Unlocked events accept anything;
// the second return reports whether the event was locked at all.
func (s *EventService) VerifyPassword(ctx context.Context, id, password string) (valid, locked bool, err error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		return false, false, err
	}
	if !event.IsLocked {
		return true, false, nil
	}
	return auth.CheckPassword(event.PasswordHash, password), true, nil
}

// RegistrationCount returns how many users registered for an event.
func (s *EventService) RegistrationCount(ctx context.Context, id string) (int, error) {
	return s.regs.CountByEvent(ctx, id)
}

// Stats returns totals and the per-category event count, served from the
// cache when possible.
func (s *EventService) Stats(ctx context.Context) (*model.Stats, error) {
	var cached model.Stats
	hit, err := s.cache.Get(ctx, cache.KeyStats, &cached)
	if err != nil {
		s.log.Warn("read stats cache", zap.Error(err))
	}
	if hit {
		return &cached, nil
	}

	totalEvents, err := s.events.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalRegs, err := s.regs.Count(ctx)
	if err != nil {
		return nil, err
	}
	counts, err := s.events.CategoryCounts(ctx, "")
	if err != nil {
		return nil, err
	}

	stats := &model.Stats{
		TotalEvents:        totalEvents,
		TotalRegistrations: totalRegs,
		CategoryStats:      make(map[string]int, len(counts)),
	}
	for _, c := range counts {
		stats.CategoryStats[c.Category] = c.Count
	}

	if err := s.cache.Set(ctx, cache.KeyStats, stats, s.statsTTL); err != nil {
		s.log.Warn("write stats cache", zap.Error(err))
	}
	return stats, nil
}

func (s *EventService) invalidate(ctx context.Context) {
	if err := s.cache.Delete(ctx, cache.KeyStats); err != nil {
		s.log.Warn("invalidate stats cache", zap.Error(err))
	}
}
