package service

import (
	"context"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/assistant"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/auth"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/metrics"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RecentRequestWindow is how far back the public request feed looks.
const RecentRequestWindow = 20 * 24 * time.Hour

// AnonymousEmail is recorded for requests submitted without a token.
const AnonymousEmail = "anonymous"

// RequestService records and triages assistant event requests.
type RequestService struct {
	requests RequestStore
	clock    Clock
	log      *zap.Logger
}

// NewRequestService constructs a RequestService.
func NewRequestService(requests RequestStore, clock Clock, log *zap.Logger) *RequestService {
	return &RequestService{requests: requests, clock: clock, log: log}
}

// Submit analyses text and stores it as a pending request. who may be nil.
func (s *RequestService) Submit(ctx context.Context, who *auth.Claims, text string) (*model.Submission, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, invalid("Request text is required")
	}

	a := assistant.Analyze(text)
	req := &model.EventRequest{
		ID:               uuid.NewString(),
		UserEmail:        AnonymousEmail,
		RequestText:      text,
		CategoryDetected: a.Category,
		Sentiment:        a.Sentiment,
		AutoResponse:     a.AutoResponse,
		Status:           model.StatusPending,
		SocietyName:      a.SocietyName,
		CreatedAt:        s.clock.now().UTC(),
	}
	if who != nil {
		uid := who.UserID
		req.UserID = &uid
		req.UserEmail = who.Email
	}
	if err := s.requests.Create(ctx, req); err != nil {
		return nil, err
	}
	metrics.TrackRequestSubmitted(a.Category)
	s.log.Debug("event request submitted",
		zap.String("request_id", req.ID),
		zap.String("category", a.Category),
		zap.String("sentiment", a.Sentiment),
	)

	return &model.Submission{
		ID:           req.ID,
		Request:      text,
		Category:     a.Category,
		Sentiment:    a.Sentiment,
		AutoResponse: a.AutoResponse,
		SocietyName:  a.SocietyName,
		Message:      "Request submitted successfully",
	}, nil
}

// List returns requests filtered by status ("all" or empty for every status)
// and, when days is positive, created within the last days days.
func (s *RequestService) List(ctx context.Context, f model.RequestFilter) ([]model.EventRequest, error) {
	var since time.Time
	if f.Days > 0 {
		since = s.clock.now().Add(-time.Duration(f.Days) * 24 * time.Hour)
	}
	out, err := s.requests.List(ctx, f.Status, since)
	if err != nil {
		return nil, err
	}
	return emptyIfNil(out), nil
}

// Recent returns the public feed of requests from the last twenty days.
func (s *RequestService) Recent(ctx context.Context) ([]model.EventRequest, error) {
	out, err := s.requests.Recent(ctx, s.clock.now().Add(-RecentRequestWindow))
	if err != nil {
		return nil, err
	}
	return emptyIfNil(out), nil
}

// Get returns a single request.
func (s *RequestService) Get(ctx context.Context, id string) (*model.EventRequest, error) {
	return s.requests.GetByID(ctx, id)
}

// Respond records who's answer. status defaults to responded.
func (s *RequestService) Respond(ctx context.Context, who *auth.Claims, id string, req model.RespondRequestPayload) error {
	response := strings.TrimSpace(req.Response)
	if response == "" {
		return invalid("Response text is required")
	}
	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = model.StatusResponded
	}
	if !model.ValidRequestStatus(status) {
		return invalid("Invalid status")
	}
	return s.requests.Respond(ctx, id, who.UserID, response, status)
}

// Stats aggregates requests by status, category and sentiment.
func (s *RequestService) Stats(ctx context.Context) (*model.RequestStats, error) {
	return s.requests.Stats(ctx)
}
