package services

import (
	"errors"
	"log/slog"
	"strings"

	"spendtrack/internal/config"
	"spendtrack/internal/dto"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// authService authenticates the single configured ledger owner. There is no
// user table; the owner email and password hash come from configuration.
type authService struct {
	cfg             config.AuthConfig
	tokenService    TokenServiceInterface
	passwordService PasswordServiceInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAuthService creates an owner authentication service
func NewAuthService(
	cfg config.AuthConfig,
	tokenService TokenServiceInterface,
	passwordService PasswordServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &authService{
		cfg:             cfg,
		tokenService:    tokenService,
		passwordService: passwordService,
		metrics:         metrics,
		logger:          logger,
	}
}

// Login verifies the owner credentials and issues an access token. Email
// comparison is case-insensitive; credential failures are indistinguishable
// to the caller.
func (s *authService) Login(email, password string) (*dto.TokenResponse, error) {
	if s.cfg.OwnerEmail == "" || s.cfg.OwnerPasswordHash == "" {
		s.logger.Error("owner credentials not configured")
		return nil, ErrInvalidCredentials
	}

	if !strings.EqualFold(email, s.cfg.OwnerEmail) {
		s.metrics.RecordAuthenticationEvent("login", "failure")
		return nil, ErrInvalidCredentials
	}

	if err := s.passwordService.VerifyPassword(s.cfg.OwnerPasswordHash, password); err != nil {
		s.metrics.RecordAuthenticationEvent("login", "failure")
		s.logger.Warn("owner login failed", "email", email)
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenService.GenerateAccessToken(s.cfg.OwnerEmail)
	if err != nil {
		s.metrics.RecordAuthenticationEvent("login", "error")
		return nil, err
	}

	s.metrics.RecordAuthenticationEvent("login", "success")
	s.logger.Info("owner logged in", "email", s.cfg.OwnerEmail)
	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
	}, nil
}
