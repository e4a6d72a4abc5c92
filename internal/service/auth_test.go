package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/foodordering/food-server-go/internal/errors"
	"github.com/foodordering/food-server-go/internal/model"
	"github.com/foodordering/food-server-go/internal/util"
)

func TestAuthService_Login(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.signup(t, "9876543210", "asha@example.com")

	t.Run("round trip succeeds", func(t *testing.T) {
		result, err := env.auth.Login(ctx, "9876543210", "Secret@123")
		require.NoError(t, err)

		assert.NotEmpty(t, result.AccessToken)
		assert.Equal(t, customer.UUID, result.Customer.UUID)
		assert.Equal(t, env.clock.now, result.Session.LoginAt)
		assert.Equal(t, env.clock.now.Add(8*time.Hour), result.Session.ExpiresAt)
		assert.Nil(t, result.Session.LogoutAt)

		stored, ok := env.store.Session(util.HashToken(result.AccessToken))
		require.True(t, ok)
		assert.NotEqual(t, result.AccessToken, stored.AccessTokenHash)
	})

	t.Run("wrong case password fails", func(t *testing.T) {
		_, err := env.auth.Login(ctx, "9876543210", "secret@123")
		assert.Equal(t, apperrors.ErrCodeInvalidCredentials, apperrors.GetCode(err))
	})

	t.Run("unknown contact fails", func(t *testing.T) {
		_, err := env.auth.Login(ctx, "1111111111", "Secret@123")
		assert.Equal(t, apperrors.ErrCodeNotRegistered, apperrors.GetCode(err))
	})

	t.Run("empty fields fail with format error", func(t *testing.T) {
		_, err := env.auth.Login(ctx, "", "Secret@123")
		assert.Equal(t, apperrors.ErrCodeBadCredentialFormat, apperrors.GetCode(err))

		_, err = env.auth.Login(ctx, "9876543210", "")
		assert.Equal(t, apperrors.ErrCodeBadCredentialFormat, apperrors.GetCode(err))
	})

	t.Run("store failure is a database error", func(t *testing.T) {
		env.store.FailWith(errors.New("connection reset"))
		defer env.store.FailWith(nil)

		_, err := env.auth.Login(ctx, "9876543210", "Secret@123")
		assert.Equal(t, apperrors.ErrCodeDatabase, apperrors.GetCode(err))
	})
}

func TestAuthService_Resolve(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.signup(t, "9876543210", "asha@example.com")
	login := env.login(t, "9876543210")

	t.Run("active session resolves to its customer", func(t *testing.T) {
		authed, err := env.auth.Resolve(ctx, login.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, customer.ID, authed.Customer.ID)
		assert.Equal(t, login.Session.ID, authed.Session.ID)
	})

	t.Run("empty token is not logged in", func(t *testing.T) {
		_, err := env.auth.Resolve(ctx, "")
		assert.Equal(t, apperrors.ErrCodeNotLoggedIn, apperrors.GetCode(err))
	})

	t.Run("unknown token is not logged in", func(t *testing.T) {
		_, err := env.auth.Resolve(ctx, "not-a-token")
		assert.Equal(t, apperrors.ErrCodeNotLoggedIn, apperrors.GetCode(err))
	})
}

func TestAuthService_ExpiryBoundary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "9876543210", "asha@example.com")
	login := env.login(t, "9876543210")
	hash := util.HashToken(login.AccessToken)

	setExpiry := func(t *testing.T, expiresAt time.Time) {
		t.Helper()
		stored, ok := env.store.Session(hash)
		require.True(t, ok)
		stored.ExpiresAt = expiresAt
		env.store.UpdateSession(stored)
	}

	t.Run("expired one millisecond ago", func(t *testing.T) {
		setExpiry(t, env.clock.now.Add(-time.Millisecond))
		_, err := env.auth.Resolve(ctx, login.AccessToken)
		assert.Equal(t, apperrors.ErrCodeSessionExpired, apperrors.GetCode(err))
	})

	t.Run("expires in one millisecond", func(t *testing.T) {
		setExpiry(t, env.clock.now.Add(time.Millisecond))
		_, err := env.auth.Resolve(ctx, login.AccessToken)
		assert.NoError(t, err)
	})

	t.Run("expires exactly now", func(t *testing.T) {
		setExpiry(t, env.clock.now)
		_, err := env.auth.Resolve(ctx, login.AccessToken)
		assert.NoError(t, err)
	})

	t.Run("remaining longer than the session window", func(t *testing.T) {
		setExpiry(t, env.clock.now.Add(8*time.Hour+time.Second))
		_, err := env.auth.Resolve(ctx, login.AccessToken)
		assert.Equal(t, apperrors.ErrCodeSessionExpired, apperrors.GetCode(err))
	})

	t.Run("clock passing the window expires the session", func(t *testing.T) {
		setExpiry(t, env.clock.now.Add(8*time.Hour))
		env.clock.Advance(8*time.Hour + time.Millisecond)
		_, err := env.auth.Resolve(ctx, login.AccessToken)
		assert.Equal(t, apperrors.ErrCodeSessionExpired, apperrors.GetCode(err))
	})
}

func TestAuthService_Logout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	customer := env.signup(t, "9876543210", "asha@example.com")
	login := env.login(t, "9876543210")

	out, err := env.auth.Logout(ctx, login.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, customer.UUID, out.Customer.UUID)
	require.NotNil(t, out.Session.LogoutAt)
	firstLogout := *out.Session.LogoutAt

	t.Run("resolve after logout fails", func(t *testing.T) {
		_, err := env.auth.Resolve(ctx, login.AccessToken)
		assert.Equal(t, apperrors.ErrCodeAlreadyLoggedOut, apperrors.GetCode(err))
	})

	t.Run("second logout fails and keeps the first timestamp", func(t *testing.T) {
		env.clock.Advance(time.Minute)

		_, err := env.auth.Logout(ctx, login.AccessToken)
		assert.Equal(t, apperrors.ErrCodeAlreadyLoggedOut, apperrors.GetCode(err))

		stored, ok := env.store.Session(util.HashToken(login.AccessToken))
		require.True(t, ok)
		require.NotNil(t, stored.LogoutAt)
		assert.Equal(t, firstLogout, *stored.LogoutAt)
	})

	t.Run("unknown token", func(t *testing.T) {
		_, err := env.auth.Logout(ctx, "unknown")
		assert.Equal(t, apperrors.ErrCodeNotLoggedIn, apperrors.GetCode(err))
	})

	t.Run("empty token", func(t *testing.T) {
		_, err := env.auth.Logout(ctx, "")
		assert.Equal(t, apperrors.ErrCodeNotLoggedIn, apperrors.GetCode(err))
	})

	t.Run("expired session cannot log out", func(t *testing.T) {
		other := env.login(t, "9876543210")
		env.clock.Advance(9 * time.Hour)

		_, err := env.auth.Logout(ctx, other.AccessToken)
		assert.Equal(t, apperrors.ErrCodeSessionExpired, apperrors.GetCode(err))
	})
}

func TestAuthService_IndependentSessions(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.signup(t, "9876543210", "asha@example.com")

	first := env.login(t, "9876543210")
	second := env.login(t, "9876543210")
	require.NotEqual(t, first.AccessToken, second.AccessToken)

	_, err := env.auth.Resolve(ctx, first.AccessToken)
	require.NoError(t, err)
	_, err = env.auth.Resolve(ctx, second.AccessToken)
	require.NoError(t, err)

	_, err = env.auth.Logout(ctx, first.AccessToken)
	require.NoError(t, err)

	_, err = env.auth.Resolve(ctx, first.AccessToken)
	assert.Equal(t, apperrors.ErrCodeAlreadyLoggedOut, apperrors.GetCode(err))

	_, err = env.auth.Resolve(ctx, second.AccessToken)
	assert.NoError(t, err)

	_, err = env.auth.Logout(ctx, second.AccessToken)
	assert.NoError(t, err)
}

func TestCheckSession(t *testing.T) {
	now := time.Now()
	logout := now.Add(-time.Minute)

	tests := []struct {
		name     string
		expires  time.Time
		logoutAt *time.Time
		code     apperrors.ErrorCode
	}{
		{"active", now.Add(time.Hour), nil, ""},
		{"logged out wins over expiry", now.Add(-time.Hour), &logout, apperrors.ErrCodeAlreadyLoggedOut},
		{"expired", now.Add(-time.Nanosecond), nil, apperrors.ErrCodeSessionExpired},
		{"full window", now.Add(8 * time.Hour), nil, ""},
		{"beyond window", now.Add(8*time.Hour + time.Nanosecond), nil, apperrors.ErrCodeSessionExpired},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			session := &model.CustomerAuth{ExpiresAt: tc.expires, LogoutAt: tc.logoutAt}
			err := checkSession(session, now)
			if tc.code == "" {
				assert.NoError(t, err)
				return
			}
			assert.Equal(t, tc.code, apperrors.GetCode(err))
		})
	}
}
