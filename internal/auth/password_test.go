package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		cost     int
		wantCost int
	}{
		{"configured cost", 4, 4},
		{"zero cost falls back to default", 0, bcrypt.DefaultCost},
		{"cost above maximum falls back to default", bcrypt.MaxCost + 1, bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantCost == bcrypt.DefaultCost && testing.Short() {
				t.Skip("default cost is slow")
			}

			hash, err := HashPassword(testPassword, tt.cost)
			require.NoError(t, err)

			cost, err := bcrypt.Cost([]byte(hash))
			require.NoError(t, err)
			assert.Equal(t, tt.wantCost, cost)
		})
	}
}

func TestCheckPassword(t *testing.T) {
	hash, err := HashPassword(testPassword, 4)
	require.NoError(t, err)

	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"correct password", testPassword, nil},
		{"incorrect password", "wrong-horse-battery", ErrInvalidPassword},
		{"empty password", "", ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckPassword(tt.password, hash)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCheckPassword_MalformedHash(t *testing.T) {
	err := CheckPassword(testPassword, "not-a-bcrypt-hash")

	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidPassword)
}
