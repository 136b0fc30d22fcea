package services

import (
	"fmt"
	"log/slog"
	"time"
	"vaultcast/auth"
	"vaultcast/errors"
)

type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// AuthService checks the single configured uploader account and issues tokens.
type AuthService struct {
	username     string
	passwordHash string
	issuer       *auth.TokenIssuer
	log          *slog.Logger
}

func NewAuthService(username, passwordHash string, issuer *auth.TokenIssuer, log *slog.Logger) *AuthService {
	return &AuthService{username: username, passwordHash: passwordHash, issuer: issuer, log: log}
}

func (s *AuthService) Login(username, password string) (Token, error) {
	if err := auth.ValidateLogin(auth.LoginRequest{Username: username, Password: password}); err != nil {
		return Token{}, fmt.Errorf("%w: %v", errors.ErrInvalidCredentials, err)
	}

	// hash even on unknown users so timing does not reveal the account name
	match, err := auth.ComparePassword(password, s.passwordHash)
	if err != nil {
		s.log.Error("Configured password hash is unusable", "error", err)
		return Token{}, errors.ErrInvalidCredentials
	}
	if !match || username != s.username {
		s.log.Debug("Login rejected", "username", username)
		return Token{}, errors.ErrInvalidCredentials
	}

	token, expiresAt, err := s.issuer.Generate(username, []string{"upload"})
	if err != nil {
		return Token{}, fmt.Errorf("%w: %v", errors.ErrTokenGeneration, err)
	}
	return Token{AccessToken: token, ExpiresAt: expiresAt}, nil
}
