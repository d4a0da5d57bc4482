package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// RecentRequestLimit caps the public recent-requests feed.
const RecentRequestLimit = 50

// RequestRepository handles persistence for assistant event requests.
type RequestRepository struct {
	db *pgxpool.Pool
}

// NewRequestRepository constructs a RequestRepository.
func NewRequestRepository(db *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{db: db}
}

const requestColumns = `er.id, er.user_id, er.user_email, u.name, er.request_text, er.category_detected,
	er.sentiment, er.auto_response, er.status, er.admin_response, er.admin_id, a.name,
	er.society_name, er.created_at, er.responded_at`

const requestFrom = ` FROM event_requests er
	LEFT JOIN users u ON u.id = er.user_id
	LEFT JOIN users a ON a.id = er.admin_id`

func scanRequest(row pgx.Row, r *model.EventRequest) error {
	return row.Scan(
		&r.ID, &r.UserID, &r.UserEmail, &r.UserName, &r.RequestText, &r.CategoryDetected,
		&r.Sentiment, &r.AutoResponse, &r.Status, &r.AdminResponse, &r.AdminID, &r.AdminName,
		&r.SocietyName, &r.CreatedAt, &r.RespondedAt,
	)
}

func collectRequests(rows pgx.Rows) ([]model.EventRequest, error) {
	defer rows.Close()
	var out []model.EventRequest
	for rows.Next() {
		var r model.EventRequest
		if err := scanRequest(rows, &r); err != nil {
			return nil, fmt.Errorf("scan request: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Create inserts a new request. The caller assigns the ID.
func (r *RequestRepository) Create(ctx context.Context, req *model.EventRequest) error {
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	if req.Status == "" {
		req.Status = model.StatusPending
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO event_requests (id, user_id, user_email, request_text, category_detected,
			sentiment, auto_response, status, society_name, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		req.ID, req.UserID, req.UserEmail, req.RequestText, req.CategoryDetected,
		req.Sentiment, req.AutoResponse, req.Status, req.SocietyName, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert request: %w", err)
	}
	return nil
}

// List returns requests newest first. An empty or "all" status matches every
// status; a zero since matches every creation time.
func (r *RequestRepository) List(ctx context.Context, status string, since time.Time) ([]model.EventRequest, error) {
	if status == "all" {
		status = ""
	}
	rows, err := r.db.Query(ctx,
		`SELECT `+requestColumns+requestFrom+`
		 WHERE ($1 = '' OR er.status = $1)
		   AND ($2::timestamptz IS NULL OR er.created_at >= $2)
		 ORDER BY er.created_at DESC`,
		status, nullTime(since),
	)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	return collectRequests(rows)
}

// Recent returns at most RecentRequestLimit requests created at or after since.
func (r *RequestRepository) Recent(ctx context.Context, since time.Time) ([]model.EventRequest, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+requestColumns+requestFrom+`
		 WHERE er.created_at >= $1
		 ORDER BY er.created_at DESC
		 LIMIT $2`,
		since, RecentRequestLimit,
	)
	if err != nil {
		return nil, fmt.Errorf("list recent requests: %w", err)
	}
	return collectRequests(rows)
}

// GetByID returns a single request or ErrNotFound.
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*model.EventRequest, error) {
	if !validID(id) {
		return nil, ErrNotFound
	}
	var req model.EventRequest
	err := scanRequest(r.db.QueryRow(ctx, `SELECT `+requestColumns+requestFrom+` WHERE er.id = $1`, id), &req)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get request: %w", err)
	}
	return &req, nil
}

// Respond stores an answer on a request.
func (r *RequestRepository) Respond(ctx context.Context, id, adminID, response, status string) error {
	if !validID(id) {
		return ErrNotFound
	}
	tag, err := r.db.Exec(ctx,
		`UPDATE event_requests
		 SET admin_response = $2, admin_id = $3, status = $4, responded_at = $5
		 WHERE id = $1`,
		id, response, adminID, status, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("respond to request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Stats aggregates all requests by status, category and sentiment.
func (r *RequestRepository) Stats(ctx context.Context) (*model.RequestStats, error) {
	stats := &model.RequestStats{
		CategoryStats:  make(map[string]int),
		SentimentStats: make(map[string]int),
	}
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'pending') FROM event_requests`,
	).Scan(&stats.TotalRequests, &stats.PendingRequests)
	if err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}

	if err := r.groupInto(ctx, `SELECT category_detected, COUNT(*) FROM event_requests GROUP BY category_detected`, stats.CategoryStats); err != nil {
		return nil, err
	}
	if err := r.groupInto(ctx, `SELECT sentiment, COUNT(*) FROM event_requests GROUP BY sentiment`, stats.SentimentStats); err != nil {
		return nil, err
	}
	return stats, nil
}

func (r *RequestRepository) groupInto(ctx context.Context, query string, into map[string]int, args ...any) error {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("group requests: %w", err)
	}
	counts, err := collectCategoryCounts(rows)
	if err != nil {
		return err
	}
	for _, c := range counts {
		into[c.Category] = c.Count
	}
	return nil
}

// CategoriesByUser counts the detected categories of a user's requests.
func (r *RequestRepository) CategoriesByUser(ctx context.Context, userID string) (map[string]int, error) {
	out := make(map[string]int)
	err := r.groupInto(ctx,
		`SELECT category_detected, COUNT(*) FROM event_requests
		 WHERE user_id = $1 GROUP BY category_detected`,
		out, userID,
	)
	return out, err
}

// CategoryCountsSince counts requests per detected category created at or
// after since.
func (r *RequestRepository) CategoryCountsSince(ctx context.Context, since time.Time) (map[string]int, error) {
	out := make(map[string]int)
	err := r.groupInto(ctx,
		`SELECT category_detected, COUNT(*) FROM event_requests
		 WHERE created_at >= $1 GROUP BY category_detected`,
		out, since,
	)
	return out, err
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
