package tokenizer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"testing"
	"time"

	"github.com/layer-3/zetafrog/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(t *testing.T) *ecdsa.PrivateKey {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	return key
}

func TestAccessTokenRoundTrip(t *testing.T) {
	tok := NewJWTTokenizer(newKey(t))

	now := time.Now().Truncate(time.Second)
	session := &core.Session{ID: "session-1", IssuedAt: now, ExpiresAt: now.Add(time.Hour)}

	token, err := tok.SessionToAccessToken(session)
	require.NoError(t, err)

	parsed, err := tok.AccessTokenToSession(token)
	require.NoError(t, err)
	assert.Equal(t, "session-1", parsed.ID)
	assert.True(t, parsed.ExpiresAt.Equal(session.ExpiresAt))
}

func TestAccessTokenExpired(t *testing.T) {
	tok := NewJWTTokenizer(newKey(t))

	now := time.Now().Add(-2 * time.Hour)
	token, err := tok.SessionToAccessToken(&core.Session{ID: "old", IssuedAt: now, ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)

	_, err = tok.AccessTokenToSession(token)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestAccessTokenForeignKey(t *testing.T) {
	issuer := NewJWTTokenizer(newKey(t))
	verifier := NewJWTTokenizer(newKey(t))

	now := time.Now()
	token, err := issuer.SessionToAccessToken(&core.Session{ID: "x", IssuedAt: now, ExpiresAt: now.Add(time.Hour)})
	require.NoError(t, err)

	_, err = verifier.AccessTokenToSession(token)
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}

func TestAccessTokenGarbage(t *testing.T) {
	tok := NewJWTTokenizer(newKey(t))
	_, err := tok.AccessTokenToSession("not-a-token")
	assert.ErrorIs(t, err, core.ErrInvalidToken)
}
