package auth

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	req := require.New(t)
	password := "MonMotDePasseTr0pSûr!"

	hash, err := HashPassword(password)
	req.NoError(err)
	req.True(strings.HasPrefix(hash, "$argon2id$"))

	match, err := ComparePassword(password, hash)
	req.NoError(err)
	req.True(match)

	match, err = ComparePassword("wrong", hash)
	req.NoError(err)
	req.False(match)

	_, err = ComparePassword(password, "$argon2id$garbage")
	req.Error(err)
	_, err = ComparePassword(password, "$bcrypt$v=19$m=1,t=1,p=1$c2FsdA$aGFzaA")
	req.Error(err)
}

func TestValidateLogin(t *testing.T) {
	require.NoError(t, ValidateLogin(LoginRequest{Username: "uploader", Password: "secret"}))
	require.Error(t, ValidateLogin(LoginRequest{Username: "", Password: "secret"}))
	require.Error(t, ValidateLogin(LoginRequest{Username: "uploader", Password: strings.Repeat("a", 73)}))
}

func TestTokenIssuer(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("a-long-enough-test-secret", time.Hour)

	token, expiresAt, err := issuer.Generate("uploader", []string{"upload"})
	req.NoError(err)
	req.WithinDuration(time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	claims, err := issuer.Validate(token)
	req.NoError(err)
	req.Equal("uploader", claims.Subject)
	req.Equal([]string{"upload"}, claims.Roles)

	_, err = NewTokenIssuer("another-secret", time.Hour).Validate(token)
	req.Error(err)

	expired := NewTokenIssuer("a-long-enough-test-secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Generate("uploader", nil)
	req.NoError(err)
	_, err = issuer.Validate(old)
	req.Error(err)
}

func TestRequireBearer(t *testing.T) {
	issuer := NewTokenIssuer("a-long-enough-test-secret", time.Hour)
	token, _, err := issuer.Generate("uploader", nil)
	require.NoError(t, err)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFromContext(r.Context())
		require.True(t, ok)
		require.Equal(t, "uploader", claims.Subject)
		w.WriteHeader(http.StatusNoContent)
	})
	handler := RequireBearer(issuer, logs.GetLoggerFromLevel(slog.LevelDebug))(next)

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid token", "Bearer " + token, http.StatusNoContent},
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + token, http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/upload/chunk", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, r)
			require.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusUnauthorized {
				require.Contains(t, w.Body.String(), `"reason":"UNAUTHORIZED"`)
			}
		})
	}
}
