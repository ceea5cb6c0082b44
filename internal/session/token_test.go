package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/haythbl004/uni-console/pkg/errors"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	tokens := NewTokenManager("test_secret", time.Hour)

	signed, err := tokens.Issue("sess-42")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	sessionID, err := tokens.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "sess-42", sessionID)
}

func TestTokenManagerRejectsWrongSecret(t *testing.T) {
	signed, err := NewTokenManager("secret_a", time.Hour).Issue("sess-42")
	require.NoError(t, err)

	_, err = NewTokenManager("secret_b", time.Hour).Parse(signed)
	require.Error(t, err)
	assert.True(t, appErrors.IsSessionExpired(err))
}

func TestTokenManagerRejectsGarbage(t *testing.T) {
	tokens := NewTokenManager("test_secret", time.Hour)

	_, err := tokens.Parse("not-a-token")
	require.Error(t, err)
	assert.True(t, appErrors.IsSessionExpired(err))
}

func TestTokenManagerRejectsExpired(t *testing.T) {
	tokens := NewTokenManager("test_secret", -time.Minute)

	signed, err := tokens.Issue("sess-42")
	require.NoError(t, err)

	_, err = tokens.Parse(signed)
	require.Error(t, err)
	assert.True(t, appErrors.IsSessionExpired(err))
}
