package service

import (
	"context"
	"errors"
	"strings"

	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/auth"
	"github.com/Shivanand-hulikatti/campus-event-navigator/internal/repository"
	"github.com/Shivanand-hulikatti/campus-event-navigator/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// MinPasswordLength is the shortest accepted account password.
const MinPasswordLength = 6

// AuthService handles sign-up, login and the current-user lookup.
type AuthService struct {
	users   UserStore
	tokens  *auth.TokenIssuer
	domains []string
	secrets map[string]string
	log     *zap.Logger
}

// NewAuthService constructs an AuthService. secrets maps each privileged role
// to the key required to claim it at sign-up.
func NewAuthService(users UserStore, tokens *auth.TokenIssuer, domains []string, secrets map[string]string, log *zap.Logger) *AuthService {
	return &AuthService{
		users:   users,
		tokens:  tokens,
		domains: domains,
		secrets: secrets,
		log:     log,
	}
}

// Register creates an account and signs it in.
func (s *AuthService) Register(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, invalid("Email and password required")
	}
	if !auth.SchoolEmail(email, s.domains) {
		return nil, invalid("Only school email addresses are allowed. Allowed domains: " + strings.Join(s.domains, ", "))
	}
	if len(req.Password) < MinPasswordLength {
		return nil, invalid("Password must be at least 6 characters")
	}

	role := req.Role
	if role == "" {
		role = model.RoleStudent
	}
	var society *string
	if role != model.RoleStudent {
		key, ok := s.secrets[string(role)]
		if !ok || !role.Valid() {
			return nil, invalid("Invalid role")
		}
		if req.SecretKey != key {
			return nil, ErrInvalidSecretKey
		}
		if role == model.RoleSocietyPresident {
			name := strings.TrimSpace(req.SocietyName)
			if name == "" {
				return nil, invalid("Society name required for society president")
			}
			society = &name
		}
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		name = email[:strings.Index(email, "@")]
	}
	user := &model.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		SocietyName:  society,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, invalid("Email already registered")
		}
		return nil, err
	}
	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(role)))
	return s.signIn(user, "Registration successful")
}

// Login verifies credentials and issues a token.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return nil, invalid("Email and password required")
	}
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}
	return s.signIn(user, "Login successful")
}

// Me returns the account behind who.
func (s *AuthService) Me(ctx context.Context, who *auth.Claims) (*model.User, error) {
	return s.users.GetByID(ctx, who.UserID)
}

func (s *AuthService) signIn(user *model.User, message string) (*model.AuthResponse, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &model.AuthResponse{Message: message, Token: token, User: *user}, nil
}
