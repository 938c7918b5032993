package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/google/uuid"
	"github.com/layer-3/zetafrog/core"
	"github.com/layer-3/zetafrog/ports"
)

// AuthService issues and validates access tokens for the local control API
type AuthService struct {
	tokenizer ports.Tokenizer
	store     ports.TokenStore
	logger    watermill.LoggerAdapter

	accessTTL time.Duration
}

// NewAuthService creates a new authentication service
func NewAuthService(
	tokenizer ports.Tokenizer,
	store ports.TokenStore,
	accessTTL time.Duration,
	logger watermill.LoggerAdapter,
) *AuthService {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	if accessTTL <= 0 {
		accessTTL = 24 * time.Hour
	}
	return &AuthService{
		tokenizer: tokenizer,
		store:     store,
		logger:    logger,
		accessTTL: accessTTL,
	}
}

// IssueSession creates a fresh session and returns its access token
func (s *AuthService) IssueSession() (string, *core.Session, error) {
	now := time.Now()
	session := &core.Session{
		ID:        uuid.New().String(),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.accessTTL),
	}

	token, err := s.tokenizer.SessionToAccessToken(session)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create access token: %w", err)
	}

	return token, session, nil
}

// ValidateAccessToken parses the token and rejects expired or invalidated sessions
func (s *AuthService) ValidateAccessToken(ctx context.Context, accessToken string) (*core.Session, error) {
	session, err := s.tokenizer.AccessTokenToSession(accessToken)
	if err != nil {
		return nil, fmt.Errorf("invalid access token: %w", err)
	}

	// Check if the token has expired
	if time.Now().After(session.ExpiresAt) {
		return nil, core.ErrTokenExpired
	}

	invalidated, err := s.store.IsTokenInvalidated(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to check token invalidation: %w", err)
	}
	if invalidated {
		return nil, core.ErrTokenInvalidated
	}

	return session, nil
}

// Logout invalidates an access token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, accessToken string) error {
	session, err := s.tokenizer.AccessTokenToSession(accessToken)
	if err != nil {
		return fmt.Errorf("invalid access token: %w", err)
	}

	// Expired tokens still get a short record so clock skew cannot revive them
	remainingTime := time.Until(session.ExpiresAt)
	if remainingTime <= 0 {
		remainingTime = time.Hour
	}

	if err := s.store.InvalidateToken(ctx, session.ID, remainingTime); err != nil {
		return fmt.Errorf("failed to invalidate token: %w", err)
	}

	s.logger.Info("Session closed", watermill.LogFields{"session_id": session.ID})
	return nil
}

// Rotate invalidates a valid token and issues its replacement
func (s *AuthService) Rotate(ctx context.Context, accessToken string) (string, error) {
	session, err := s.ValidateAccessToken(ctx, accessToken)
	if err != nil {
		return "", err
	}

	if err := s.store.InvalidateToken(ctx, session.ID, time.Until(session.ExpiresAt)); err != nil {
		return "", fmt.Errorf("failed to invalidate old token: %w", err)
	}

	token, next, err := s.IssueSession()
	if err != nil {
		return "", err
	}

	s.logger.Info("Session rotated", watermill.LogFields{"previous": session.ID, "session_id": next.ID})
	return token, nil
}

// IsSessionError reports whether err means the caller must re-authenticate
func IsSessionError(err error) bool {
	return errors.Is(err, core.ErrInvalidToken) ||
		errors.Is(err, core.ErrTokenExpired) ||
		errors.Is(err, core.ErrTokenInvalidated)
}
