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

// BannedWordRepository handles persistence for the banned word list.
type BannedWordRepository struct {
	db *pgxpool.Pool
}

// NewBannedWordRepository constructs a BannedWordRepository.
func NewBannedWordRepository(db *pgxpool.Pool) *BannedWordRepository {
	return &BannedWordRepository{db: db}
}

// List returns every banned word, newest first, with the adding user's email.
func (r *BannedWordRepository) List(ctx context.Context) ([]model.BannedWord, error) {
	rows, err := r.db.Query(ctx,
		`SELECT bw.id, bw.word, bw.reason, bw.added_by, u.email, bw.created_at
		 FROM banned_words bw
		 LEFT JOIN users u ON u.id = bw.added_by
		 ORDER BY bw.created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list banned words: %w", err)
	}
	defer rows.Close()

	var out []model.BannedWord
	for rows.Next() {
		var w model.BannedWord
		if err := rows.Scan(&w.ID, &w.Word, &w.Reason, &w.AddedBy, &w.AddedByEmail, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan banned word: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Words returns the bare words in insertion order.
func (r *BannedWordRepository) Words(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT word FROM banned_words ORDER BY created_at, word`)
	if err != nil {
		return nil, fmt.Errorf("list banned words: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var w string
		if err := rows.Scan(&w); err != nil {
			return nil, fmt.Errorf("scan banned word: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// Create inserts w. An existing word yields ErrDuplicate.
func (r *BannedWordRepository) Create(ctx context.Context, w *model.BannedWord) error {
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	_, err := r.db.Exec(ctx,
		`INSERT INTO banned_words (id, word, reason, added_by, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		w.ID, w.Word, w.Reason, w.AddedBy, w.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert banned word: %w", err)
	}
	return nil
}

// Delete removes a banned word and returns it, or ErrNotFound.
func (r *BannedWordRepository) Delete(ctx context.Context, id string) (string, error) {
	if !validID(id) {
		return "", ErrNotFound
	}
	var word string
	err := r.db.QueryRow(ctx, `DELETE FROM banned_words WHERE id = $1 RETURNING word`, id).Scan(&word)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("delete banned word: %w", err)
	}
	return word, nil
}
