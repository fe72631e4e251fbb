package utils

import (
	"testing"
	"time"

	"servana/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorFromToken(t *testing.T) {
	actor := models.Actor{ID: "client-1", Role: models.RoleClient}

	t.Run("round trip", func(t *testing.T) {
		token, err := GenerateToken(actor, time.Hour)
		require.NoError(t, err)

		got, err := ActorFromToken(token)
		require.NoError(t, err)
		assert.Equal(t, actor, got)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := GenerateToken(actor, -time.Minute)
		require.NoError(t, err)

		_, err = ActorFromToken(token)
		assert.Error(t, err)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := ActorFromToken("not-a-token")
		assert.Error(t, err)
	})
}
