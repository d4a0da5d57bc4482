// Package repository implements all database queries for the campus event service.
// It uses pgx directly (no ORM) for transparency and performance.
package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrAlreadyRegistered is returned when a user registers for the same event twice.
var ErrAlreadyRegistered = errors.New("already registered for this event")

// ErrDuplicate is returned when an insert violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// validID rejects ids that cannot be a UUID before they reach postgres.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// escapeLike makes s match literally inside a LIKE pattern, using
// postgres' default backslash escape.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// EventRepository handles persistence for events.
type EventRepository struct {
	db *pgxpool.Pool
}

// NewEventRepository constructs an EventRepository.
func NewEventRepository(db *pgxpool.Pool) *EventRepository {
	return &EventRepository{db: db}
}

const eventColumns = `e.id, e.title, e.description, e.category, e.date, e.time, e.venue,
	e.poster_url, e.registration_url, e.society, e.created_by, e.event_password_hash,
	e.is_locked, e.is_expired, e.location_id, e.location_lat, e.location_lng, e.location_address,
	(SELECT COUNT(*) FROM registrations r WHERE r.event_id = e.id), e.created_at`

func scanEvent(row pgx.Row, e *model.Event) error {
	return row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Category, &e.Date, &e.Time, &e.Venue,
		&e.PosterURL, &e.RegistrationURL, &e.Society, &e.CreatedBy, &e.PasswordHash,
		&e.IsLocked, &e.IsExpired, &e.LocationID, &e.LocationLat, &e.LocationLng, &e.LocationAddress,
		&e.RegistrationCount, &e.CreatedAt,
	)
}

// Create inserts a new event. The caller assigns the ID.
func (r *EventRepository) Create(ctx context.Context, e *model.Event) error {
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO events (id, title, description, category, date, time, venue, poster_url,
			registration_url, society, created_by, event_password_hash, is_locked, is_expired,
			location_id, location_lat, location_lng, location_address, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`,
		e.ID, e.Title, e.Description, e.Category, e.Date, e.Time, e.Venue, e.PosterURL,
		e.RegistrationURL, e.Society, e.CreatedBy, e.PasswordHash, e.IsLocked, e.IsExpired,
		e.LocationID, e.LocationLat, e.LocationLng, e.LocationAddress, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// List returns events matching f ordered by date and time.
func (r *EventRepository) List(ctx context.Context, f model.EventFilter) ([]model.Event, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if !f.ShowExpired {
		where = append(where, "NOT e.is_expired")
	}
	if f.Category != "" && f.Category != "all" {
		where = append(where, "e.category = "+arg(f.Category))
	}
	if f.Search != "" {
		p := arg("%" + escapeLike(f.Search) + "%")
		where = append(where, fmt.Sprintf("(e.title ILIKE %s OR e.description ILIKE %s)", p, p))
	}
	if f.From != "" {
		where = append(where, "e.date >= "+arg(f.From))
	}
	if f.To != "" {
		where = append(where, "e.date <= "+arg(f.To))
	}

	query := "SELECT " + eventColumns + " FROM events e"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY e.date, e.time"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

// GetByID returns a single event or ErrNotFound.
func (r *EventRepository) GetByID(ctx context.Context, id string) (*model.Event, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var e model.Event
	err := scanEvent(r.db.QueryRow(ctx, "SELECT "+eventColumns+" FROM events e WHERE e.id = $1", id), &e)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// Delete removes an event and its registrations in one transaction and
// reports how many registrations were removed.
func (r *EventRepository) Delete(ctx context.Context, id string) (int64, error) {
	if !validID(id) {
		return 0, ErrNotFound
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	regs, err := tx.Exec(ctx, `DELETE FROM registrations WHERE event_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete registrations: %w", err)
	}
	tag, err := tx.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, ErrNotFound
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return regs.RowsAffected(), nil
}

// SetExpired updates an event's expired flag.
func (r *EventRepository) SetExpired(ctx context.Context, id string, expired bool) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx, `UPDATE events SET is_expired = $2 WHERE id = $1`, id, expired)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ExpireBefore marks every event whose "date time" sorts before cutoff
// (formatted "2006-01-02 15:04") as expired.
func (r *EventRepository) ExpireBefore(ctx context.Context, cutoff string) (int64, error) {
	tag, err := r.db.Exec(ctx,
		`UPDATE events SET is_expired = TRUE
		 WHERE NOT is_expired AND (date || ' ' || time) < $1`,
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("expire events: %w", err)
	}
	return tag.RowsAffected(), nil
}

// Count returns the total number of events.
func (r *EventRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM events`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count events: %w", err)
	}
	return n, nil
}

// CategoryCounts groups events by category. A non-empty fromDate restricts the
// count to events on or after that date.
func (r *EventRepository) CategoryCounts(ctx context.Context, fromDate string) ([]model.CategoryCount, error) {
	rows, err := r.db.Query(ctx,
		`SELECT category, COUNT(*) FROM events
		 WHERE $1 = '' OR date >= $1
		 GROUP BY category ORDER BY COUNT(*) DESC, category`,
		fromDate,
	)
	if err != nil {
		return nil, fmt.Errorf("count categories: %w", err)
	}
	return collectCategoryCounts(rows)
}

func collectCategoryCounts(rows pgx.Rows) ([]model.CategoryCount, error) {
	defer rows.Close()
	var out []model.CategoryCount
	for rows.Next() {
		var c model.CategoryCount
		if err := rows.Scan(&c.Category, &c.Count); err != nil {
			return nil, fmt.Errorf("scan category count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
