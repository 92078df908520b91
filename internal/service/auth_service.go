package service

import (
	"context"
	"fmt"
	"log/slog"

	"messmate/internal/auth"
	"messmate/internal/models"
	"messmate/internal/storage"
)

// AuthService handles registration, login and current-user lookup.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	store         storage.Store
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, store storage.Store, logger *slog.Logger) *AuthService {
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		store:         store,
		logger:        logger,
	}
}

// Session is the result of a successful registration or login.
type Session struct {
	User  *models.User
	Token string
}

// Register creates a new account and bootstraps the user's default
// mess: the user becomes its super admin and gets a member row, so the
// dashboard works immediately after signup.
func (s *AuthService) Register(ctx context.Context, email, displayName, password string) (*Session, error) {
	s.logger.Info("register request", "email", email)

	if email == "" || displayName == "" {
		return nil, fmt.Errorf("%w: email and display name required", ErrInvalidInput)
	}

	user, err := s.authenticator.Register(ctx, email, displayName, password)
	if err != nil {
		s.logger.Warn("registration failed", "email", email, "error", err)
		return nil, err
	}

	mess := &models.Mess{
		Name:             fmt.Sprintf("%s's Mess", displayName),
		OwnerID:          user.ID,
		Currency:         models.DefaultCurrency,
		IncludeBreakfast: true,
		BreakfastWeight:  models.DefaultBreakfastWeight,
	}
	if err := s.store.CreateMess(ctx, mess); err != nil {
		return nil, fmt.Errorf("failed to bootstrap mess: %w", err)
	}

	membership := &models.Membership{
		MessID: mess.ID,
		UserID: user.ID,
		Role:   models.RoleSuperAdmin,
	}
	if err := s.store.CreateMembership(ctx, membership); err != nil {
		return nil, fmt.Errorf("failed to bootstrap membership: %w", err)
	}

	member := &models.Member{
		MessID: mess.ID,
		UserID: user.ID,
		Name:   displayName,
		Active: true,
	}
	if err := s.store.CreateMember(ctx, member); err != nil {
		return nil, fmt.Errorf("failed to bootstrap member: %w", err)
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "mess_id", mess.ID)
	return &Session{User: user, Token: token}, nil
}

// Login authenticates a user and returns a fresh token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, auth.ErrInvalidCredentials
	}

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		s.logger.Warn("login failed", "email", email)
		return nil, err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &Session{User: user, Token: token}, nil
}

// CurrentUser returns the account and role behind an authenticated
// user ID.
func (s *AuthService) CurrentUser(ctx context.Context, userID string) (*models.User, *models.Membership, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, auth.ErrInvalidToken
	}

	membership, err := s.store.GetMembershipForUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}

	return user, membership, nil
}
