package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kittipatv/shopdesk/internal/session"
)

func TestManager_Login(t *testing.T) {
	m := session.NewManager("test-secret", "1234", time.Hour)

	t.Run("correct password", func(t *testing.T) {
		token, err := m.Login("1234")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.True(t, m.Valid(token))
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := m.Login("4321")
		assert.ErrorIs(t, err, session.ErrBadPassword)
	})
}

func TestManager_Valid(t *testing.T) {
	m := session.NewManager("test-secret", "1234", time.Hour)

	t.Run("empty token", func(t *testing.T) {
		assert.False(t, m.Valid(""))
	})

	t.Run("garbage token", func(t *testing.T) {
		assert.False(t, m.Valid("not.a.token"))
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		other := session.NewManager("other-secret", "1234", time.Hour)

		token, err := other.Login("1234")
		require.NoError(t, err)

		assert.False(t, m.Valid(token))
	})

	t.Run("expired token", func(t *testing.T) {
		short := session.NewManager("test-secret", "1234", -time.Minute)

		token, err := short.Login("1234")
		require.NoError(t, err)

		assert.False(t, short.Valid(token))
	})
}
