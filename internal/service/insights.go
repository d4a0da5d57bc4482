package service

import (
	"context"
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/auth"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/cache"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/ml"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"go.uber.org/zap"
)

// SearchQuery is a keyword search over events.
type SearchQuery struct {
	Query    string
	Category string
	Date     string
	Limit    int
}

// InsightService wires the heuristic scorers to stored data.
type InsightService struct {
	events   EventStore
	regs     RegistrationStore
	requests RequestStore
	cache    Cache
	cacheTTL time.Duration
	clock    Clock
	log      *zap.Logger
}

// NewInsightService constructs an InsightService.
func NewInsightService(events EventStore, regs RegistrationStore, requests RequestStore, c Cache, cacheTTL time.Duration, clock Clock, log *zap.Logger) *InsightService {
	return &InsightService{
		events:   events,
		regs:     regs,
		requests: requests,
		cache:    c,
		cacheTTL: cacheTTL,
		clock:    clock,
		log:      log,
	}
}

// Recommend ranks upcoming events for who by the categories they asked for,
// skipping events they already registered for.
func (s *InsightService) Recommend(ctx context.Context, who *auth.Claims, limit int) ([]model.Recommendation, error) {
	events, err := s.events.List(ctx, model.EventFilter{From: s.clock.today()})
	if err != nil {
		return nil, err
	}
	requested, err := s.requests.CategoriesByUser(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	registered, err := s.regs.EventIDsByUser(ctx, who.UserID)
	if err != nil {
		return nil, err
	}
	return ml.Recommend(events, requested, registered, s.clock.now(), limit), nil
}

// Trending ranks categories by requests in the last days days and upcoming
// events.
func (s *InsightService) Trending(ctx context.Context, days int) ([]model.TrendingCategory, error) {
	if days <= 0 {
		days = ml.DefaultTrendingDays
	}
	key := cache.TrendingKey(days)
	var cached []model.TrendingCategory
	hit, err := s.cache.Get(ctx, key, &cached)
	if err != nil {
		s.log.Warn("read trending cache", zap.Error(err))
	}
	if hit {
		return emptyIfNil(cached), nil
	}

	since := s.clock.now().Add(-time.Duration(days) * 24 * time.Hour)
	requests, err := s.requests.CategoryCountsSince(ctx, since)
	if err != nil {
		return nil, err
	}
	counts, err := s.events.CategoryCounts(ctx, s.clock.today())
	if err != nil {
		return nil, err
	}
	events := make(map[string]int, len(counts))
	for _, c := range counts {
		events[c.Category] = c.Count
	}

	out := emptyIfNil(ml.Trending(requests, events))
	if err := s.cache.Set(ctx, key, out, s.cacheTTL); err != nil {
		s.log.Warn("write trending cache", zap.Error(err))
	}
	return out, nil
}

// Search scores events against a keyword query.
func (s *InsightService) Search(ctx context.Context, q SearchQuery) ([]model.SearchResult, error) {
	query := strings.TrimSpace(q.Query)
	if query == "" {
		return nil, invalid("Search query required")
	}
	events, err := s.events.List(ctx, model.EventFilter{
		Category:    q.Category,
		From:        strings.TrimSpace(q.Date),
		ShowExpired: true,
	})
	if err != nil {
		return nil, err
	}
	return ml.Search(query, events, q.Limit), nil
}

// PredictPopularity scores a draft event's likely turnout.
func (s *InsightService) PredictPopularity(d model.EventDraft) model.Popularity {
	return ml.PredictPopularity(d)
}

// AnalyzeDescription grades a draft event's description.
func (s *InsightService) AnalyzeDescription(d model.EventDraft) model.DescriptionAnalysis {
	return ml.AnalyzeDescription(d.Description, d.Title, d.Category, d.Date, d.Venue)
}

// PredictSuccess forecasts a draft event's success. The description is
// graded first when the draft has one.
func (s *InsightService) PredictSuccess(d model.EventDraft) model.SuccessPrediction {
	var desc *model.DescriptionAnalysis
	if d.Description != "" {
		a := s.AnalyzeDescription(d)
		desc = &a
	}
	return ml.PredictSuccess(d, desc, s.clock.now())
}
