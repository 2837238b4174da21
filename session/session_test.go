package session_test

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/ludmilpaulo/rayleneimmigration.co.za/session"
)

func TestSession_ExpiresAt(t *testing.T) {
	t.Run("reads exp from a JWT without verifying", func(t *testing.T) {
		expiry := time.Now().Add(5 * time.Minute).Truncate(time.Second)
		token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
			"user_id": "user-1",
			"exp":     expiry.Unix(),
		}).SignedString([]byte("a-key-this-client-never-knows"))
		require.NoError(t, err)

		sess := &session.Session{AccessToken: token}
		got, ok := sess.ExpiresAt()
		require.True(t, ok)
		require.True(t, got.Equal(expiry))
	})

	t.Run("opaque token has no expiry", func(t *testing.T) {
		sess := &session.Session{AccessToken: "not-a-jwt"}
		_, ok := sess.ExpiresAt()
		require.False(t, ok)
	})

	t.Run("missing exp claim", func(t *testing.T) {
		token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, jwtlib.MapClaims{
			"user_id": "user-1",
		}).SignedString([]byte("key"))
		require.NoError(t, err)

		sess := &session.Session{AccessToken: token}
		_, ok := sess.ExpiresAt()
		require.False(t, ok)
	})

	t.Run("nil and empty sessions", func(t *testing.T) {
		var nilSession *session.Session
		_, ok := nilSession.ExpiresAt()
		require.False(t, ok)

		_, ok = (&session.Session{}).ExpiresAt()
		require.False(t, ok)
	})
}
