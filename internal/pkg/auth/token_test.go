package auth

import (
	"net/http"
	"testing"
	"time"

	"foodcourt/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTokenManager(t *testing.T) {
	t.Run("rejects empty secret", func(t *testing.T) {
		_, err := NewTokenManager("", time.Hour)
		assert.Error(t, err)
	})

	t.Run("rejects non-positive ttl", func(t *testing.T) {
		_, err := NewTokenManager("secret", 0)
		assert.Error(t, err)
	})
}

func TestTokenManager_SignAndVerify(t *testing.T) {
	manager, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	principal := Principal{
		ID:   kernel.NewUUID(),
		Role: RoleRestaurant,
		Name: "Pizzaria",
	}

	t.Run("round trip preserves the principal", func(t *testing.T) {
		token, err := manager.Sign(principal)
		require.NoError(t, err)

		verified, err := manager.Verify(token)
		require.NoError(t, err)
		assert.True(t, verified.ID.IsEqual(principal.ID))
		assert.Equal(t, RoleRestaurant, verified.Role)
		assert.Equal(t, "Pizzaria", verified.Name)
		assert.True(t, verified.IsRole(RoleRestaurant))
		assert.False(t, verified.IsRole(RoleDriver))
	})

	t.Run("rejects unknown role at signing", func(t *testing.T) {
		_, err := manager.Sign(Principal{ID: kernel.NewUUID(), Role: "SUPERUSER"})
		assert.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other, err := NewTokenManager("other-secret", time.Hour)
		require.NoError(t, err)

		token, err := other.Sign(principal)
		require.NoError(t, err)

		_, err = manager.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		short, err := NewTokenManager("test-secret", time.Millisecond)
		require.NoError(t, err)

		token, err := short.Sign(principal)
		require.NoError(t, err)

		time.Sleep(10 * time.Millisecond)

		_, err = manager.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := manager.Verify("not-a-token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestSessionCookies(t *testing.T) {
	manager, err := NewTokenManager("test-secret", time.Hour)
	require.NoError(t, err)

	cookie := manager.NewSessionCookie("token-value")
	assert.Equal(t, CookieName, cookie.Name)
	assert.Equal(t, "token-value", cookie.Value)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 3600, cookie.MaxAge)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)

	cleared := ClearSessionCookie()
	assert.Equal(t, CookieName, cleared.Name)
	assert.Equal(t, -1, cleared.MaxAge)
}
