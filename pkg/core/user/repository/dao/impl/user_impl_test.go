package dao

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mini-blog/pkg/common/errors"
	"mini-blog/pkg/core/user/model"
	"mini-blog/pkg/internal/testdb"
)

func TestGormUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewGormUserRepository(testdb.Open(t))

	alice := model.User{Email: "alice@example.com", PasswordHash: "hash-a"}
	require.NoError(t, repo.CreateUser(ctx, &alice))
	require.NotZero(t, alice.ID)

	bob := model.User{Email: "bob@example.com", PasswordHash: "hash-b"}
	require.NoError(t, repo.CreateUser(ctx, &bob))

	t.Run("query by id hides password", func(t *testing.T) {
		got, err := repo.QueryByID(ctx, alice.ID)
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", got.Email)
		assert.Empty(t, got.PasswordHash)
		assert.Nil(t, got.Token)
	})

	t.Run("query by email loads password", func(t *testing.T) {
		got, err := repo.QueryByEmail(ctx, "bob@example.com")
		require.NoError(t, err)
		assert.Equal(t, "hash-b", got.PasswordHash)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.QueryByID(ctx, 999)
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
		_, err = repo.QueryByEmail(ctx, "nobody@example.com")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		dup := model.User{Email: "alice@example.com", PasswordHash: "x"}
		assert.ErrorIs(t, repo.CreateUser(ctx, &dup), apperrors.ErrConflict)
	})

	t.Run("email exists excludes self", func(t *testing.T) {
		exists, err := repo.IsEmailExists(ctx, "alice@example.com", 0)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = repo.IsEmailExists(ctx, "alice@example.com", alice.ID)
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("update email", func(t *testing.T) {
		require.NoError(t, repo.UpdateEmail(ctx, bob.ID, "robert@example.com"))
		got, err := repo.QueryByID(ctx, bob.ID)
		require.NoError(t, err)
		assert.Equal(t, "robert@example.com", got.Email)

		assert.ErrorIs(t, repo.UpdateEmail(ctx, bob.ID, "alice@example.com"), apperrors.ErrConflict)
		assert.ErrorIs(t, repo.UpdateEmail(ctx, 999, "x@example.com"), apperrors.ErrNotFound)
	})

	t.Run("token round trip", func(t *testing.T) {
		issued := time.Now().UTC().Truncate(time.Second)
		require.NoError(t, repo.UpdateToken(ctx, alice.ID, "tok-alice", issued))

		got, err := repo.QueryByToken(ctx, "tok-alice")
		require.NoError(t, err)
		assert.Equal(t, alice.ID, got.ID)
		require.NotNil(t, got.TokenIssuedAt)
		assert.True(t, got.TokenIssuedAt.Equal(issued))

		_, err = repo.QueryByToken(ctx, "unknown")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		users, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, users, 2)
		assert.Equal(t, alice.ID, users[0].ID)
		assert.Empty(t, users[0].PasswordHash)
	})
}
