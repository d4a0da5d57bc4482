package service

import (
	"context"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/auth"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
)

// UserService serves profile pages.
type UserService struct {
	users UserStore
	regs  RegistrationStore
	clock Clock
}

// NewUserService constructs a UserService.
func NewUserService(users UserStore, regs RegistrationStore, clock Clock) *UserService {
	return &UserService{users: users, regs: regs, clock: clock}
}

func canView(who *auth.Claims, userID string) bool {
	return who.UserID == userID || who.Role.IsAdminTier()
}

// Profile returns a user's account and registration counts. Events dated
// today count as upcoming.
func (s *UserService) Profile(ctx context.Context, who *auth.Claims, userID string) (*model.Profile, error) {
	if !canView(who, userID) {
		return nil, ErrForbidden
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	total, upcoming, err := s.regs.CountByUser(ctx, userID, s.clock.today())
	if err != nil {
		return nil, err
	}
	return &model.Profile{
		User: *user,
		Stats: model.ProfileStats{
			TotalRegistrations: total,
			UpcomingEvents:     upcoming,
			PastEvents:         total - upcoming,
		},
	}, nil
}

// Events returns the events a user registered for. An event whose date or
// time cannot be parsed is treated as upcoming.
func (s *UserService) Events(ctx context.Context, who *auth.Claims, userID string) (*model.UserEvents, error) {
	if !canView(who, userID) {
		return nil, ErrForbidden
	}
	events, err := s.regs.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.clock.now()
	out := &model.UserEvents{
		Upcoming: []model.RegisteredEvent{},
		Past:     []model.RegisteredEvent{},
		Total:    len(events),
	}
	for _, e := range events {
		at, ok := startsAt(e.Date, e.Time, s.clock.location())
		if ok && at.Before(now) {
			out.Past = append(out.Past, e)
			continue
		}
		out.Upcoming = append(out.Upcoming, e)
	}
	return out, nil
}
