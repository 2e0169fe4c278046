package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "mini-blog/pkg/common/errors"
	dao "mini-blog/pkg/core/post/repository/dao/impl"
	usermodel "mini-blog/pkg/core/user/model"
	"mini-blog/pkg/internal/testdb"
)

func setup(t *testing.T) (*PostService, *gorm.DB) {
	t.Helper()
	db := testdb.Open(t)
	return NewPostService(dao.NewGormPostRepository(db)), db
}

func createUser(t *testing.T, db *gorm.DB, email string) int64 {
	t.Helper()
	u := usermodel.User{Email: email, PasswordHash: "x"}
	require.NoError(t, db.Create(&u).Error)
	return u.ID
}

func ptr(s string) *string { return &s }

func TestCreatePost(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	alice := createUser(t, db, "alice@example.com")

	post, err := svc.Create(ctx, alice, CreateInput{Title: "hello", Text: "world"})
	require.NoError(t, err)
	assert.Equal(t, alice, post.UserID)
	assert.Equal(t, "hello", post.Title)
	assert.False(t, post.CreatedAt.IsZero())

	_, err = svc.Create(ctx, alice, CreateInput{Text: "no title"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, apperrors.Fields(err), "title")

	_, err = svc.Create(ctx, alice, CreateInput{Title: "no text"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, apperrors.Fields(err), "text")

	_, err = svc.Create(ctx, 0, CreateInput{Title: "t", Text: "x"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestListAndGetAreScoped(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")

	post, err := svc.Create(ctx, alice, CreateInput{Title: "t", Text: "x"})
	require.NoError(t, err)

	posts, err := svc.List(ctx, alice)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, post.ID, posts[0].ID)

	posts, err = svc.List(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, posts)

	_, err = svc.Get(ctx, bob, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	got, err := svc.Get(ctx, alice, post.ID)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)
}

func TestUpdatePost(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	post, err := svc.Create(ctx, alice, CreateInput{Title: "t", Text: "x"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, bob, post.ID, UpdateInput{Title: ptr("mine now")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Update(ctx, 0, post.ID, UpdateInput{Title: ptr("anon")})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	_, err = svc.Update(ctx, alice, 999, UpdateInput{Title: ptr("ghost")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Update(ctx, alice, post.ID, UpdateInput{Title: ptr("  ")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	updated, err := svc.Update(ctx, alice, post.ID, UpdateInput{Text: ptr("edited")})
	require.NoError(t, err)
	assert.Equal(t, "t", updated.Title)
	assert.Equal(t, "edited", updated.Text)

	got, err := svc.Get(ctx, alice, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", got.Text)

	unchanged, err := svc.Update(ctx, alice, post.ID, UpdateInput{})
	require.NoError(t, err)
	assert.Equal(t, "edited", unchanged.Text)
}

func TestDeletePost(t *testing.T) {
	ctx := context.Background()
	svc, db := setup(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	post, err := svc.Create(ctx, alice, CreateInput{Title: "t", Text: "x"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.Delete(ctx, bob, post.ID), apperrors.ErrForbidden)
	assert.ErrorIs(t, svc.Delete(ctx, alice, 999), apperrors.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, alice, post.ID))
	_, err = svc.Get(ctx, alice, post.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
