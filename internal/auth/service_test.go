package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/wordbook/internal/storage"
)

func TestService_Register(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{"valid", "hanako", testPassword, nil},
		{"with hyphen and underscore", "tanaka_taro-1", testPassword, nil},
		{"empty username", "", testPassword, ErrUsernameRequired},
		{"empty password", "hanako", "", ErrPasswordRequired},
		{"username too short", "ab", testPassword, ErrUsernameInvalid},
		{"username with spaces", "han ako", testPassword, ErrUsernameInvalid},
		{"password too short", "hanako", "short", ErrPasswordTooShort},
		{"password over 72 bytes", "hanako", strings.Repeat("a", 73), ErrPasswordTooLong},
		{"password at 72 bytes", "hanako", strings.Repeat("a", 72), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(storage.NewMemoryStore(), testAuthConfig())

			user, err := svc.Register(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, IsValidationError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.username, user.Username)
			assert.NotEqual(t, tt.password, user.PasswordHash)
			assert.NoError(t, CheckPassword(tt.password, user.PasswordHash))
		})
	}
}

func TestService_Register_MinPasswordLength(t *testing.T) {
	t.Run("defaults to twelve characters", func(t *testing.T) {
		svc := NewService(storage.NewMemoryStore(), testAuthConfig())

		_, err := svc.Register(context.Background(), "hanako", "elevenchars")
		assert.ErrorIs(t, err, ErrPasswordTooShort)
		assert.Contains(t, err.Error(), "at least 12 characters")

		_, err = svc.Register(context.Background(), "hanako", "twelve-chars")
		assert.NoError(t, err)
	})

	t.Run("counts characters not bytes", func(t *testing.T) {
		svc := NewService(storage.NewMemoryStore(), testAuthConfig())

		_, err := svc.Register(context.Background(), "hanako", "みずみずしいことばをおぼえる")
		assert.NoError(t, err)
	})

	t.Run("uses the configured minimum", func(t *testing.T) {
		cfg := testAuthConfig()
		cfg.MinPasswordLength = 30
		svc := NewService(storage.NewMemoryStore(), cfg)

		_, err := svc.Register(context.Background(), "hanako", testPassword)
		assert.ErrorIs(t, err, ErrPasswordTooShort)
		assert.True(t, IsValidationError(err))
	})
}

func TestService_Register_Duplicate(t *testing.T) {
	svc := NewService(storage.NewMemoryStore(), testAuthConfig())

	_, err := svc.Register(context.Background(), "hanako", testPassword)
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "hanako", testPassword)
	assert.ErrorIs(t, err, ErrUserExists)
	assert.False(t, IsValidationError(err))
}

func TestService_Authenticate(t *testing.T) {
	svc := NewService(storage.NewMemoryStore(), testAuthConfig())
	registered, err := svc.Register(context.Background(), "hanako", testPassword)
	require.NoError(t, err)

	t.Run("correct password", func(t *testing.T) {
		user, err := svc.Authenticate(context.Background(), "hanako", testPassword)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "hanako", "wrong-password-123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.Authenticate(context.Background(), "nobody", testPassword)
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestService_GetUserByID(t *testing.T) {
	svc := NewService(storage.NewMemoryStore(), testAuthConfig())
	registered, err := svc.Register(context.Background(), "hanako", testPassword)
	require.NoError(t, err)

	user, err := svc.GetUserByID(context.Background(), registered.ID)
	require.NoError(t, err)
	assert.Equal(t, "hanako", user.Username)

	_, err = svc.GetUserByID(context.Background(), 999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
