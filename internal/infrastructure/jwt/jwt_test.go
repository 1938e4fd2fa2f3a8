package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate_Success(t *testing.T) {
	s := New("super-secret")
	userID := "u-123"

	tok, err := s.GenerateJWT(userID, time.Hour)
	require.NoError(t, err, "GenerateJWT should not error")
	require.NotEmpty(t, tok, "token must not be empty")

	claims, err := s.ValidateToken(tok)
	require.NoError(t, err, "ValidateToken should not error for fresh token")
	require.NotNil(t, claims)

	assert.Equal(t, userID, claims.UserID)
	require.NotNil(t, claims.ExpiresAt)
	assert.True(t, claims.ExpiresAt.Time.After(time.Now().Add(-1*time.Second)))
}

func TestValidateToken_Table(t *testing.T) {
	makeToken := func(secret string, exp time.Duration) string {
		s := New(secret)
		tok, err := s.GenerateJWT("user-42", exp)
		require.NoError(t, err)
		return tok
	}

	tests := []struct {
		name   string
		secret string
		token  string
		wantOK bool
	}{
		{
			name:   "valid token",
			secret: "k1",
			token:  makeToken("k1", 5*time.Minute),
			wantOK: true,
		},
		{
			name:   "wrong secret",
			secret: "k2",
			token:  makeToken("k1", 5*time.Minute),
			wantOK: false,
		},
		{
			name:   "expired token",
			secret: "k1",
			token:  makeToken("k1", -1*time.Minute),
			wantOK: false,
		},
		{
			name:   "malformed token",
			secret: "k1",
			token:  "not.a.jwt",
			wantOK: false,
		},
		{
			name:   "empty token",
			secret: "k1",
			token:  "",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.secret)
			claims, err := s.ValidateToken(tt.token)
			if tt.wantOK {
				require.NoError(t, err)
				require.NotNil(t, claims)
				assert.Equal(t, "user-42", claims.UserID)
				return
			}
			require.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
