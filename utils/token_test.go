package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	models "github.com/cybersecclub/club-site-go/models"
)

func testUser() *models.User {
	return &models.User{
		ID:   primitive.NewObjectID(),
		Name: "Asha",
		Role: models.RoleAdmin,
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	user := testUser()

	token, err := GenerateAccessToken(user, "secret")
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID.Hex(), claims.Subject)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.False(t, claims.Refresh)
	assert.NotEmpty(t, claims.ID)
}

func TestRefreshTokenIsMarked(t *testing.T) {
	token, err := GenerateRefreshToken(testUser(), "secret")
	require.NoError(t, err)

	claims, err := ParseToken(token, "secret")
	require.NoError(t, err)
	assert.True(t, claims.Refresh)
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := GenerateAccessToken(testUser(), "secret")
	require.NoError(t, err)

	_, err = ParseToken(token, "other-secret")
	assert.Error(t, err)
}

func TestParseTokenGarbage(t *testing.T) {
	_, err := ParseToken("not-a-token", "secret")
	assert.Error(t, err)
}

func TestGenerateETag(t *testing.T) {
	id := primitive.NewObjectID()
	at := time.Now()

	etag := GenerateETag(id, at)
	assert.Equal(t, etag, GenerateETag(id, at))
	assert.NotEqual(t, etag, GenerateETag(id, at.Add(time.Second)))
	assert.NotEqual(t, etag, GenerateETag(primitive.NewObjectID(), at))
}
