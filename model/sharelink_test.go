package model

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handboekai/handboek-api/common/config"
)

func TestShareLinkLifecycle(t *testing.T) {
	setupTestDatabase(t)
	config.ShareLinkSecret = "test-secret-0123456789abcdef"

	handbook := &Handbook{OwnerKey: "owner-eeeeeeeeeeeeeeee", Title: "Aardrijkskunde"}
	require.NoError(t, handbook.Insert())

	link, err := CreateShareLink(handbook.Id, 24)
	require.NoError(t, err)
	assert.Len(t, link.Slug, 16)
	assert.NotEmpty(t, link.Token)
	assert.Greater(t, link.ExpiredTime, time.Now().Unix())

	t.Run("resolves to the handbook", func(t *testing.T) {
		id, err := ResolveShareLink(link.Slug)
		require.NoError(t, err)
		assert.Equal(t, handbook.Id, id)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := ResolveShareLink("geen-echte-slug")
		assert.ErrorIs(t, err, ErrShareLinkNotFound)
	})

	t.Run("empty slug", func(t *testing.T) {
		_, err := ResolveShareLink("")
		assert.ErrorIs(t, err, ErrShareLinkNotFound)
	})

	t.Run("revoked link stops resolving", func(t *testing.T) {
		revokable, err := CreateShareLink(handbook.Id, 24)
		require.NoError(t, err)
		require.NoError(t, RevokeShareLinks(handbook.Id))

		_, err = ResolveShareLink(revokable.Slug)
		assert.ErrorIs(t, err, ErrShareLinkNotFound)
	})

	t.Run("expired token reports expiry", func(t *testing.T) {
		expired, err := CreateShareLink(handbook.Id, 24)
		require.NoError(t, err)

		claims := shareClaims{
			HandbookId: handbook.Id,
			RegisteredClaims: jwt.RegisteredClaims{
				IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
			SignedString([]byte(config.ShareLinkSecret))
		require.NoError(t, err)
		require.NoError(t, DB.Model(expired).Updates(map[string]any{"token": token, "revoked": false}).Error)

		_, err = ResolveShareLink(expired.Slug)
		assert.ErrorIs(t, err, ErrShareLinkExpired)
	})

	t.Run("secret rotation invalidates outstanding links", func(t *testing.T) {
		rotated, err := CreateShareLink(handbook.Id, 24)
		require.NoError(t, err)

		old := config.ShareLinkSecret
		config.ShareLinkSecret = "a-completely-different-secret"
		defer func() { config.ShareLinkSecret = old }()

		_, err = ResolveShareLink(rotated.Slug)
		assert.ErrorIs(t, err, ErrShareLinkNotFound)
	})

	t.Run("default ttl applies when not positive", func(t *testing.T) {
		link, err := CreateShareLink(handbook.Id, 0)
		require.NoError(t, err)
		wantMin := time.Now().Add(time.Duration(config.ShareLinkTTLHours-1) * time.Hour).Unix()
		assert.Greater(t, link.ExpiredTime, wantMin)
	})
}
