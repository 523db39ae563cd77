package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/praneswara/polygreen/pkg/token"
)

func TestManager_GenerateAndParse(t *testing.T) {
	manager := token.NewManager(token.Config{Secret: "test-secret", TTL: time.Hour})

	t.Run("round-trips the claims", func(t *testing.T) {
		signed, err := manager.Generate("PG000007", "9876543210", "Asha")
		assert.NoError(t, err)
		assert.NotEmpty(t, signed)

		claims, err := manager.Parse(signed)
		assert.NoError(t, err)
		assert.Equal(t, "PG000007", claims.Subject)
		assert.Equal(t, "9876543210", claims.Mobile)
		assert.Equal(t, "Asha", claims.Name)
	})

	t.Run("rejects token signed with another secret", func(t *testing.T) {
		other := token.NewManager(token.Config{Secret: "other-secret", TTL: time.Hour})

		signed, err := other.Generate("PG000007", "9876543210", "Asha")
		assert.NoError(t, err)

		_, err = manager.Parse(signed)
		assert.ErrorIs(t, err, token.ErrTokenInvalid)
	})

	t.Run("rejects expired token", func(t *testing.T) {
		expired := token.NewManager(token.Config{Secret: "test-secret", TTL: -time.Minute})

		signed, err := expired.Generate("PG000007", "9876543210", "Asha")
		assert.NoError(t, err)

		_, err = manager.Parse(signed)
		assert.ErrorIs(t, err, token.ErrTokenExpired)
	})

	t.Run("rejects garbage input", func(t *testing.T) {
		_, err := manager.Parse("not-a-token")
		assert.ErrorIs(t, err, token.ErrTokenInvalid)
	})
}
