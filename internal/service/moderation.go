package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/auth"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/moderation"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/repository"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ModerationService manages the banned word list.
type ModerationService struct {
	words BannedWordStore
	log   *zap.Logger
}

// NewModerationService constructs a ModerationService.
func NewModerationService(words BannedWordStore, log *zap.Logger) *ModerationService {
	return &ModerationService{words: words, log: log}
}

// List returns every banned word, newest first.
func (s *ModerationService) List(ctx context.Context) ([]model.BannedWord, error) {
	out, err := s.words.List(ctx)
	if err != nil {
		return nil, err
	}
	return emptyIfNil(out), nil
}

// Add bans a word. Words are stored lower-cased.
func (s *ModerationService) Add(ctx context.Context, who *auth.Claims, req model.BannedWordRequest) (*model.BannedWord, error) {
	word := moderation.Normalize(req.Word)
	if word == "" {
		return nil, invalid("Word is required")
	}
	uid := who.UserID
	email := who.Email
	w := &model.BannedWord{
		ID:           uuid.NewString(),
		Word:         word,
		Reason:       strings.TrimSpace(req.Reason),
		AddedBy:      &uid,
		AddedByEmail: &email,
	}
	if err := s.words.Create(ctx, w); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("Word already banned")
		}
		return nil, err
	}
	s.log.Info("banned word added", zap.String("word", word), zap.String("user_id", uid))
	return w, nil
}

// Remove lifts a ban and returns the word.
func (s *ModerationService) Remove(ctx context.Context, id string) (string, error) {
	word, err := s.words.Delete(ctx, id)
	if err != nil {
		return "", err
	}
	s.log.Info("banned word removed", zap.String("word", word))
	return word, nil
}
