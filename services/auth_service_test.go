package services

import (
	"log/slog"
	"testing"
	"time"
	"vaultcast/auth"
	"vaultcast/errors"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Login(t *testing.T) {
	hash, err := auth.HashPassword("ComplexPass123!")
	require.NoError(t, err)
	issuer := auth.NewTokenIssuer("a-long-enough-test-secret", time.Hour)
	svc := NewAuthService("uploader", hash, issuer, logs.GetLoggerFromLevel(slog.LevelDebug))

	t.Run("should login successfully with correct credentials", func(t *testing.T) {
		req := require.New(t)
		token, err := svc.Login("uploader", "ComplexPass123!")
		req.NoError(err)
		req.NotEmpty(token.AccessToken)
		req.True(token.ExpiresAt.After(time.Now()))

		claims, err := issuer.Validate(token.AccessToken)
		req.NoError(err)
		req.Equal("uploader", claims.Subject)
	})

	t.Run("should fail with wrong password", func(t *testing.T) {
		_, err := svc.Login("uploader", "WrongPass123!")
		require.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})

	t.Run("should fail with unknown user", func(t *testing.T) {
		_, err := svc.Login("someone", "ComplexPass123!")
		require.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})

	t.Run("should fail on empty input", func(t *testing.T) {
		_, err := svc.Login("", "")
		require.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})

	t.Run("should fail when configured hash is broken", func(t *testing.T) {
		broken := NewAuthService("uploader", "not-a-hash", issuer, logs.GetLoggerFromLevel(slog.LevelDebug))
		_, err := broken.Login("uploader", "ComplexPass123!")
		require.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})
}
