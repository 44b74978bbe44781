package token

import (
	"testing"
	"time"

	"petcare/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager() *Manager {
	return NewManager(config.JWTConfig{
		Secret:     "test-secret",
		Issuer:     "petcare",
		AccessTTL:  time.Hour,
		RefreshTTL: 24 * time.Hour,
	})
}

func TestIssueAndParseAccess(t *testing.T) {
	m := newManager()
	pair, err := m.Issue(KindUser, "u1")
	require.NoError(t, err)

	claims, err := m.ParseAccess(pair.AccessToken, KindUser)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.AccountID)
	assert.Equal(t, KindUser, claims.Kind)

	_, err = m.ParseAccess(pair.AccessToken, KindAdmin)
	assert.ErrorIs(t, err, ErrWrongSubject, "a user token cannot reach admin routes")

	_, err = m.ParseAccess(pair.RefreshToken, KindUser)
	assert.ErrorIs(t, err, ErrWrongSubject, "refresh tokens are not access tokens")
}

func TestParse_RejectsTamperedAndForeignTokens(t *testing.T) {
	m := newManager()
	pair, err := m.Issue(KindAdmin, "a1")
	require.NoError(t, err)

	_, err = m.Parse(pair.AccessToken + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	other := NewManager(config.JWTConfig{Secret: "other", Issuer: "petcare"})
	_, err = other.Parse(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	wrongIssuer := NewManager(config.JWTConfig{Secret: "test-secret", Issuer: "someone-else"})
	_, err = wrongIssuer.Parse(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	m := newManager()
	issued := time.Now().Add(-2 * time.Hour)
	m.now = func() time.Time { return issued }
	pair, err := m.Issue(KindUser, "u1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.ParseAccess(pair.AccessToken, KindUser)
	assert.ErrorIs(t, err, ErrInvalidToken)

	// the refresh token outlives the access token
	claims, _, err := m.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.AccountID)
}

func TestRefresh(t *testing.T) {
	m := newManager()
	pair, err := m.Issue(KindAdmin, "a1")
	require.NoError(t, err)

	_, _, err = m.Refresh(pair.AccessToken)
	assert.ErrorIs(t, err, ErrWrongSubject)

	claims, next, err := m.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, KindAdmin, claims.Kind)

	fresh, err := m.ParseAccess(next.AccessToken, KindAdmin)
	require.NoError(t, err)
	assert.Equal(t, "a1", fresh.AccountID)
}
