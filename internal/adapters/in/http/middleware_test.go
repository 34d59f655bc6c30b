package http_test

import (
	"testing"
	"time"

	httpadapter "freightops/internal/adapters/in/http"
	"freightops/internal/core/domain/model/access"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseActor(t *testing.T) {
	t.Run("capabilities become the actor", func(t *testing.T) {
		token, err := httpadapter.IssueToken(testSecret, "dispatcher-7", time.Hour, access.Dispatcher, access.Ops)
		require.NoError(t, err)

		actor, err := httpadapter.ParseActor(token, testSecret)

		require.NoError(t, err)
		assert.Equal(t, "dispatcher-7", actor.ID())
		assert.True(t, actor.HasAny(access.Dispatcher))
		assert.False(t, actor.HasAny(access.Admin))
	})

	t.Run("expired", func(t *testing.T) {
		token, err := httpadapter.IssueToken(testSecret, "dispatcher-7", -time.Minute, access.Dispatcher)
		require.NoError(t, err)

		_, err = httpadapter.ParseActor(token, testSecret)

		require.ErrorIs(t, err, jwt.ErrTokenExpired)
	})

	t.Run("unknown capability", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, httpadapter.ActorClaims{
			Capabilities: []string{"PILOT"},
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}).SignedString(testSecret)
		require.NoError(t, err)

		_, err = httpadapter.ParseActor(token, testSecret)

		require.Error(t, err)
	})

	t.Run("other signing method", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, httpadapter.ActorClaims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
		}).SignedString(testSecret)
		require.NoError(t, err)

		_, err = httpadapter.ParseActor(token, testSecret)

		require.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, err := httpadapter.IssueToken(testSecret, "", time.Hour, access.Ops)
		require.NoError(t, err)

		_, err = httpadapter.ParseActor(token, testSecret)

		require.Error(t, err)
	})
}

func TestLoadOpenAPI(t *testing.T) {
	doc, err := httpadapter.LoadOpenAPI()

	require.NoError(t, err)
	assert.NotNil(t, doc.Paths.Value("/api/v1/shipments/{shipmentId}/dispatch"))
	assert.NotNil(t, doc.Paths.Value("/api/v1/drivers/available"))
}
