package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaker_GenerateAndParseToken_ValidCases(t *testing.T) {
	secretKey := "test_secret_key_1234567890"
	maker := NewMaker(secretKey, 15*time.Minute, 7*24*time.Hour)

	tests := []struct {
		name      string
		userUID   string
		generate  func(userUID string) (string, error)
		wantType  string
		wantedTTL time.Duration
	}{
		{
			name:      "access-токен",
			userUID:   "c6c7ff1c-32bb-4b91-b1f3-bc012fa2e70e",
			generate:  maker.GenerateAccessToken,
			wantType:  TokenTypeAccess,
			wantedTTL: 15 * time.Minute,
		},
		{
			name:      "refresh-токен",
			userUID:   "7d4f6e84-03e5-4a77-a1b0-29ee0af53a8a",
			generate:  maker.GenerateRefreshToken,
			wantType:  TokenTypeRefresh,
			wantedTTL: 7 * 24 * time.Hour,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := tt.generate(tt.userUID)
			require.NoError(t, err)
			assert.NotEmpty(t, token)

			claims, err := maker.ParseToken(token)
			require.NoError(t, err)

			assert.Equal(t, tt.userUID, claims.UserUID)
			assert.Equal(t, tt.wantType, claims.TokenType)
			assert.Equal(t, tt.userUID, claims.Subject)
			assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Second)
			assert.WithinDuration(t, time.Now().Add(tt.wantedTTL), claims.ExpiresAt.Time, time.Second)
		})
	}
}

func TestMaker_ParseToken_InvalidTokens(t *testing.T) {
	maker := NewMaker("test_secret_key_1234567890", 15*time.Minute, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "пустой токен",
			token: "",
		},
		{
			name:  "поврежденный токен",
			token: "invalid.token.here",
		},
		{
			name: "токен подписан другим ключом",
			token: func() string {
				other := NewMaker("another_secret_key", 15*time.Minute, time.Hour)
				tok, _ := other.GenerateAccessToken("some-user")
				return tok
			}(),
		},
		{
			name: "просроченный токен",
			token: func() string {
				expired := NewMaker("test_secret_key_1234567890", -time.Minute, time.Hour)
				tok, _ := expired.GenerateAccessToken("some-user")
				return tok
			}(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := maker.ParseToken(tt.token)
			assert.Error(t, err)
			assert.Nil(t, claims)
		})
	}
}
