package service

import (
	"context"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/stretchr/testify/mock"
)

type mockEvents struct{ mock.Mock }

func (m *mockEvents) Create(ctx context.Context, e *model.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEvents) List(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	args := m.Called(ctx, f)
	events, _ := args.Get(0).([]model.Event)
	return events, args.Error(1)
}

func (m *mockEvents) GetByID(ctx context.Context, id string) (*model.Event, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*model.Event)
	return e, args.Error(1)
}

func (m *mockEvents) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockEvents) SetExpired(ctx context.Context, id string, expired bool) error {
	return m.Called(ctx, id, expired).Error(0)
}

func (m *mockEvents) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockEvents) CategoryCounts(ctx context.Context, fromDate string) ([]model.CategoryCount, error) {
	args := m.Called(ctx, fromDate)
	counts, _ := args.Get(0).([]model.CategoryCount)
	return counts, args.Error(1)
}

type mockRegs struct{ mock.Mock }

func (m *mockRegs) Book(ctx context.Context, eventID, userID, email string) (int, error) {
	args := m.Called(ctx, eventID, userID, email)
	return args.Int(0), args.Error(1)
}

func (m *mockRegs) CountByEvent(ctx context.Context, eventID string) (int, error) {
	args := m.Called(ctx, eventID)
	return args.Int(0), args.Error(1)
}

func (m *mockRegs) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockRegs) CountByUser(ctx context.Context, userID, today string) (int, int, error) {
	args := m.Called(ctx, userID, today)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (m *mockRegs) ListByUser(ctx context.Context, userID string) ([]model.RegisteredEvent, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).([]model.RegisteredEvent)
	return out, args.Error(1)
}

func (m *mockRegs) EventIDsByUser(ctx context.Context, userID string) (map[string]bool, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).(map[string]bool)
	return out, args.Error(1)
}

type mockUsers struct{ mock.Mock }

func (m *mockUsers) Create(ctx context.Context, u *model.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUsers) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUsers) GetByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

type mockRequests struct{ mock.Mock }

func (m *mockRequests) Create(ctx context.Context, r *model.EventRequest) error {
	return m.Called(ctx, r).Error(0)
}

func (m *mockRequests) List(ctx context.Context, status string, since time.Time) ([]model.EventRequest, error) {
	args := m.Called(ctx, status, since)
	out, _ := args.Get(0).([]model.EventRequest)
	return out, args.Error(1)
}

func (m *mockRequests) Recent(ctx context.Context, since time.Time) ([]model.EventRequest, error) {
	args := m.Called(ctx, since)
	out, _ := args.Get(0).([]model.EventRequest)
	return out, args.Error(1)
}

func (m *mockRequests) GetByID(ctx context.Context, id string) (*model.EventRequest, error) {
	args := m.Called(ctx, id)
	r, _ := args.Get(0).(*model.EventRequest)
	return r, args.Error(1)
}

func (m *mockRequests) Respond(ctx context.Context, id, adminID, response, status string) error {
	return m.Called(ctx, id, adminID, response, status).Error(0)
}

func (m *mockRequests) Stats(ctx context.Context) (*model.RequestStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*model.RequestStats)
	return s, args.Error(1)
}

func (m *mockRequests) CategoriesByUser(ctx context.Context, userID string) (map[string]int, error) {
	args := m.Called(ctx, userID)
	out, _ := args.Get(0).(map[string]int)
	return out, args.Error(1)
}

func (m *mockRequests) CategoryCountsSince(ctx context.Context, since time.Time) (map[string]int, error) {
	args := m.Called(ctx, since)
	out, _ := args.Get(0).(map[string]int)
	return out, args.Error(1)
}

type mockWords struct{ mock.Mock }

func (m *mockWords) List(ctx context.Context) ([]model.BannedWord, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]model.BannedWord)
	return out, args.Error(1)
}

func (m *mockWords) Words(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	out, _ := args.Get(0).([]string)
	return out, args.Error(1)
}

func (m *mockWords) Create(ctx context.Context, w *model.BannedWord) error {
	return m.Called(ctx, w).Error(0)
}

func (m *mockWords) Delete(ctx context.Context, id string) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}

// memCache is an in-process Cache for tests.
type memCache struct {
	values map[string]any
	sets   int
}

func newMemCache() *memCache { return &memCache{values: map[string]any{}} }

func (c *memCache) Get(_ context.Context, key string, dest any) (bool, error) {
	v, ok := c.values[key]
	if !ok {
		return false, nil
	}
	switch d := dest.(type) {
	case *model.Stats:
		*d = *(v.(*model.Stats))
	default:
		return false, nil
	}
	return true, nil
}

func (c *memCache) Set(_ context.Context, key string, v any, _ time.Duration) error {
	c.values[key] = v
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(c.values, k)
	}
	return nil
}
