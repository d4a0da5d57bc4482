// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the repository layer.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

// Domain errors surfaced to handlers. Repository errors (ErrNotFound,
// ErrAlreadyRegistered) pass through unchanged.
var (
	ErrForbidden          = errors.New("insufficient permissions")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSecretKey   = errors.New("invalid secret key for this role")
	ErrPasswordRequired   = errors.New("event password required")
	ErrIncorrectPassword  = errors.New("incorrect event password")
)

// ValidationError is a rejected input. Its message is safe to show to users.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(msg string) error { return &ValidationError{Msg: msg} }

// BannedContentError reports the banned word that blocked an event.
type BannedContentError struct {
	Word string
}

func (e *BannedContentError) Error() string {
	return "event text contains banned word " + e.Word
}

// Cache is the subset of the response cache the services use. Cache failures
// are logged and never fail a request.
type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, v any, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// EventStore persists events.
type EventStore interface {
	Create(ctx context.Context, e *model.Event) error
	List(ctx context.Context, f model.EventFilter) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Delete(ctx context.Context, id string) (int64, error)
	SetExpired(ctx context.Context, id string, expired bool) error
	Count(ctx context.Context) (int, error)
	CategoryCounts(ctx context.Context, fromDate string) ([]model.CategoryCount, error)
}

// RegistrationStore persists registrations.
type RegistrationStore interface {
	Book(ctx context.Context, eventID, userID, email string) (int, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
	Count(ctx context.Context) (int, error)
	CountByUser(ctx context.Context, userID, today string) (int, int, error)
	ListByUser(ctx context.Context, userID string) ([]model.RegisteredEvent, error)
	EventIDsByUser(ctx context.Context, userID string) (map[string]bool, error)
}

// UserStore persists accounts.
type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// RequestStore persists assistant event requests.
type RequestStore interface {
	Create(ctx context.Context, r *model.EventRequest) error
	List(ctx context.Context, status string, since time.Time) ([]model.EventRequest, error)
	Recent(ctx context.Context, since time.Time) ([]model.EventRequest, error)
	GetByID(ctx context.Context, id string) (*model.EventRequest, error)
	Respond(ctx context.Context, id, adminID, response, status string) error
	Stats(ctx context.Context) (*model.RequestStats, error)
	CategoriesByUser(ctx context.Context, userID string) (map[string]int, error)
	CategoryCountsSince(ctx context.Context, since time.Time) (map[string]int, error)
}

// BannedWordStore persists the banned word list.
type BannedWordStore interface {
	List(ctx context.Context) ([]model.BannedWord, error)
	Words(ctx context.Context) ([]string, error)
	Create(ctx context.Context, w *model.BannedWord) error
	Delete(ctx context.Context, id string) (string, error)
}

// Clock supplies the current time in the campus timezone.
type Clock struct {
	Loc *time.Location
	Now func() time.Time
}

// NewClock returns a wall clock in loc.
func NewClock(loc *time.Location) Clock {
	if loc == nil {
		loc = time.UTC
	}
	return Clock{Loc: loc, Now: time.Now}
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now().In(c.location())
	}
	return c.Now().In(c.location())
}

func (c Clock) location() *time.Location {
	if c.Loc == nil {
		return time.UTC
	}
	return c.Loc
}

func (c Clock) today() string {
	return c.now().Format(dateLayout)
}

const dateLayout = "2006-01-02"

var timeLayouts = []string{"15:04", "15:04:05"}

// normalizeTime accepts HH:MM or HH:MM:SS and returns HH:MM.
func normalizeTime(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format("15:04"), true
		}
	}
	return "", false
}

// startsAt resolves an event's date and time in loc.
func startsAt(date, clock string, loc *time.Location) (time.Time, bool) {
	d, err := time.ParseInLocation(dateLayout, strings.TrimSpace(date), loc)
	if err != nil {
		return time.Time{}, false
	}
	hm, ok := normalizeTime(clock)
	if !ok {
		return time.Time{}, false
	}
	t, _ := time.Parse("15:04", hm)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, loc), true
}

func emptyIfNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
