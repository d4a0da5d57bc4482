package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RegistrationRepository handles persistence for registrations.
type RegistrationRepository struct {
	db *pgxpool.Pool
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *pgxpool.Pool) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Book registers userID for eventID inside one transaction and returns the
// event's new registration count.
//
// The event row is locked with SELECT ... FOR UPDATE so two concurrent
// attempts by the same user serialise: the second one sees the first one's
// registration and fails with ErrAlreadyRegistered instead of inserting a
// duplicate row. The unique (event_id, user_id) index backs this up.
func (r *RegistrationRepository) Book(ctx context.Context, eventID, userID, email string) (int, error) {
	if !validID(eventID) {
		return 0, ErrNotFound
	}
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var locked string
	err = tx.QueryRow(ctx, `SELECT id FROM events WHERE id = $1 FOR UPDATE`, eventID).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("lock event row: %w", err)
	}

	var exists bool
	err = tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM registrations WHERE event_id = $1 AND user_id = $2)`,
		eventID, userID,
	).Scan(&exists)
	if err != nil {
		return 0, fmt.Errorf("check duplicate: %w", err)
	}
	if exists {
		return 0, ErrAlreadyRegistered
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO registrations (id, event_id, user_id, user_email, registered_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		uuid.NewString(), eventID, userID, email, time.Now().UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, ErrAlreadyRegistered
		}
		return 0, fmt.Errorf("insert registration: %w", err)
	}

	var count int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}
	return count, nil
}

// CountByEvent returns the number of registrations for an event.
func (r *RegistrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	if !validID(eventID) {
		return 0, nil
	}
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM registrations WHERE event_id = $1`, eventID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

// Count returns the total number of registrations.
func (r *RegistrationRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM registrations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return n, nil
}

// CountByUser returns the user's total registrations and how many of them are
// for events dated on or after today.
func (r *RegistrationRepository) CountByUser(ctx context.Context, userID, today string) (total, upcoming int, err error) {
	err = r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE e.date >= $2)
		 FROM registrations r JOIN events e ON e.id = r.event_id
		 WHERE r.user_id = $1`,
		userID, today,
	).Scan(&total, &upcoming)
	if err != nil {
		return 0, 0, fmt.Errorf("count user registrations: %w", err)
	}
	return total, upcoming, nil
}

// ListByUser returns the events a user registered for, latest first.
func (r *RegistrationRepository) ListByUser(ctx context.Context, userID string) ([]model.RegisteredEvent, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+eventColumns+`, reg.registered_at, reg.user_email
		 FROM registrations reg
		 JOIN events e ON e.id = reg.event_id
		 WHERE reg.user_id = $1
		 ORDER BY e.date DESC, e.time DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list user events: %w", err)
	}
	defer rows.Close()

	var out []model.RegisteredEvent
	for rows.Next() {
		var re model.RegisteredEvent
		e := &re.Event
		err := rows.Scan(
			&e.ID, &e.Title, &e.Description, &e.Category, &e.Date, &e.Time, &e.Venue,
			&e.PosterURL, &e.RegistrationURL, &e.Society, &e.CreatedBy, &e.PasswordHash,
			&e.IsLocked, &e.IsExpired, &e.LocationID, &e.LocationLat, &e.LocationLng, &e.LocationAddress,
			&e.RegistrationCount, &e.CreatedAt, &re.RegisteredAt, &re.UserEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("scan user event: %w", err)
		}
		out = append(out, re)
	}
	return out, rows.Err()
}

// EventIDsByUser returns the set of events a user registered for.
func (r *RegistrationRepository) EventIDsByUser(ctx context.Context, userID string) (map[string]bool, error) {
	rows, err := r.db.Query(ctx, `SELECT event_id FROM registrations WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user registrations: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		ids[id] = true
	}
	return ids, rows.Err()
}
