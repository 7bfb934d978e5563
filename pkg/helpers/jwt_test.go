package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

func TestSessionRoundTrip(t *testing.T) {
	m := NewSessionManager("secret", 0)
	assert.Equal(t, DefaultSessionTTL, m.TTL)

	token, exp, err := m.Issue(42, "Jane Doe", "jane", "jane@example.com")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), exp, time.Minute)

	claims := m.Verify(token)
	require.NotNil(t, claims)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "Jane Doe", claims.Name)
	assert.Equal(t, "jane", claims.Username)
	assert.Equal(t, "jane@example.com", claims.Email)
}

func TestSessionExpired(t *testing.T) {
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	m := NewSessionManager("secret", time.Hour)
	m.now = fixedClock(issued)

	token, _, err := m.Issue(1, "Jane", "jane", "jane@example.com")
	require.NoError(t, err)

	m.now = fixedClock(issued.Add(59 * time.Minute))
	assert.NotNil(t, m.Verify(token))

	m.now = fixedClock(issued.Add(61 * time.Minute))
	assert.Nil(t, m.Verify(token))
}

func TestSessionRejectsForgedAndGarbage(t *testing.T) {
	m := NewSessionManager("secret", time.Hour)
	other := NewSessionManager("other-secret", time.Hour)

	token, _, err := other.Issue(1, "Jane", "jane", "jane@example.com")
	require.NoError(t, err)

	assert.Nil(t, m.Verify(token))
	assert.Nil(t, m.Verify(""))
	assert.Nil(t, m.Verify("not.a.token"))
	assert.Nil(t, m.Verify(token+"x"))
}
