package handler

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/repository"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/google/uuid"
)

// memDB is an in-memory stand-in for the postgres repositories.
type memDB struct {
	mu       sync.Mutex
	events   map[string]model.Event
	regs     []model.Registration
	users    map[string]model.User
	requests map[string]model.EventRequest
	words    []model.BannedWord
}

func newMemDB() *memDB {
	return &memDB{
		events:   map[string]model.Event{},
		users:    map[string]model.User{},
		requests: map[string]model.EventRequest{},
	}
}

func (db *memDB) countFor(eventID string) int {
	n := 0
	for _, r := range db.regs {
		if r.EventID == eventID {
			n++
		}
	}
	return n
}

type memEvents struct{ *memDB }

func (s memEvents) Create(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events[e.ID] = *e
	return nil
}

func (s memEvents) List(_ context.Context, f model.EventFilter) ([]model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.Event
	for _, e := range s.events {
		switch {
		case !f.ShowExpired && e.IsExpired:
		case f.Category != "" && f.Category != "all" && e.Category != f.Category:
		case f.Search != "" && !strings.Contains(strings.ToLower(e.Title+" "+e.Description), strings.ToLower(f.Search)):
		case f.From != "" && e.Date < f.From:
		case f.To != "" && e.Date > f.To:
		default:
			e.RegistrationCount = s.countFor(e.ID)
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date+out[i].Time < out[j].Date+out[j].Time })
	return out, nil
}

func (s memEvents) GetByID(_ context.Context, id string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	e.RegistrationCount = s.countFor(id)
	return &e, nil
}

func (s memEvents) Delete(_ context.Context, id string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return 0, repository.ErrNotFound
	}
	delete(s.events, id)
	var kept []model.Registration
	var removed int64
	for _, r := range s.regs {
		if r.EventID == id {
			removed++
			continue
		}
		kept = append(kept, r)
	}
	s.regs = kept
	return removed, nil
}

func (s memEvents) SetExpired(_ context.Context, id string, expired bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return repository.ErrNotFound
	}
	e.IsExpired = expired
	s.events[id] = e
	return nil
}

func (s memEvents) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.events), nil
}

func (s memEvents) CategoryCounts(_ context.Context, from string) ([]model.CategoryCount, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	counts := map[string]int{}
	for _, e := range s.events {
		if from == "" || e.Date >= from {
			counts[e.Category]++
		}
	}
	var out []model.CategoryCount
	for c, n := range counts {
		out = append(out, model.CategoryCount{Category: c, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

type memRegs struct{ *memDB }

func (s memRegs) Book(_ context.Context, eventID, userID, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[eventID]; !ok {
		return 0, repository.ErrNotFound
	}
	for _, r := range s.regs {
		if r.EventID == eventID && r.UserID == userID {
			return 0, repository.ErrAlreadyRegistered
		}
	}
	s.regs = append(s.regs, model.Registration{
		ID: uuid.NewString(), EventID: eventID, UserID: userID, UserEmail: email, RegisteredAt: time.Now(),
	})
	return s.countFor(eventID), nil
}

func (s memRegs) CountByEvent(_ context.Context, eventID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.countFor(eventID), nil
}

func (s memRegs) Count(context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.regs), nil
}

func (s memRegs) CountByUser(_ context.Context, userID, today string) (int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total, upcoming := 0, 0
	for _, r := range s.regs {
		if r.UserID != userID {
			continue
		}
		total++
		if s.events[r.EventID].Date >= today {
			upcoming++
		}
	}
	return total, upcoming, nil
}

func (s memRegs) ListByUser(_ context.Context, userID string) ([]model.RegisteredEvent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.RegisteredEvent
	for _, r := range s.regs {
		if r.UserID == userID {
			out = append(out, model.RegisteredEvent{Event: s.events[r.EventID], RegisteredAt: r.RegisteredAt, UserEmail: r.UserEmail})
		}
	}
	return out, nil
}

func (s memRegs) EventIDsByUser(_ context.Context, userID string) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	ids := map[string]bool{}
	for _, r := range s.regs {
		if r.UserID == userID {
			ids[r.EventID] = true
		}
	}
	return ids, nil
}

type memUsers struct{ *memDB }

func (s memUsers) Create(_ context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return repository.ErrDuplicate
		}
	}
	s.users[u.ID] = *u
	return nil
}

func (s memUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s memUsers) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

type memRequests struct{ *memDB }

func (s memRequests) Create(_ context.Context, r *model.EventRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[r.ID] = *r
	return nil
}

func (s memRequests) filter(keep func(model.EventRequest) bool) []model.EventRequest {
	var out []model.EventRequest
	for _, r := range s.requests {
		if keep(r) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s memRequests) List(_ context.Context, status string, since time.Time) ([]model.EventRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(r model.EventRequest) bool {
		return (status == "" || status == "all" || r.Status == status) && !r.CreatedAt.Before(since)
	}), nil
}

func (s memRequests) Recent(_ context.Context, since time.Time) ([]model.EventRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filter(func(r model.EventRequest) bool { return !r.CreatedAt.Before(since) }), nil
}

func (s memRequests) GetByID(_ context.Context, id string) (*model.EventRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &r, nil
}

func (s memRequests) Respond(_ context.Context, id, adminID, response, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.requests[id]
	if !ok {
		return repository.ErrNotFound
	}
	now := time.Now()
	r.AdminResponse, r.AdminID, r.Status, r.RespondedAt = &response, &adminID, status, &now
	s.requests[id] = r
	return nil
}

func (s memRequests) Stats(context.Context) (*model.RequestStats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stats := &model.RequestStats{CategoryStats: map[string]int{}, SentimentStats: map[string]int{}}
	for _, r := range s.requests {
		stats.TotalRequests++
		if r.Status == model.StatusPending {
			stats.PendingRequests++
		}
		stats.CategoryStats[r.CategoryDetected]++
		stats.SentimentStats[r.Sentiment]++
	}
	return stats, nil
}

func (s memRequests) CategoriesByUser(_ context.Context, userID string) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]int{}
	for _, r := range s.requests {
		if r.UserID != nil && *r.UserID == userID {
			out[r.CategoryDetected]++
		}
	}
	return out, nil
}

func (s memRequests) CategoryCountsSince(_ context.Context, since time.Time) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := map[string]int{}
	for _, r := range s.requests {
		if !r.CreatedAt.Before(since) {
			out[r.CategoryDetected]++
		}
	}
	return out, nil
}

type memWords struct{ *memDB }

func (s memWords) List(context.Context) ([]model.BannedWord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := append([]model.BannedWord(nil), s.words...)
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (s memWords) Words(context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, w := range s.words {
		out = append(out, w.Word)
	}
	return out, nil
}

func (s memWords) Create(_ context.Context, w *model.BannedWord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.words {
		if existing.Word == w.Word {
			return repository.ErrDuplicate
		}
	}
	s.words = append(s.words, *w)
	return nil
}

func (s memWords) Delete(_ context.Context, id string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.words {
		if w.ID == id {
			s.words = append(s.words[:i], s.words[i+1:]...)
			return w.Word, nil
		}
	}
	return "", repository.ErrNotFound
}
