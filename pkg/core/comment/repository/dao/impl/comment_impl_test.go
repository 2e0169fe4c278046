package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "mini-blog/pkg/common/errors"
	"mini-blog/pkg/core/comment/model"
	"mini-blog/pkg/core/internal/scope"
	postmodel "mini-blog/pkg/core/post/model"
	usermodel "mini-blog/pkg/core/user/model"
	"mini-blog/pkg/internal/testdb"
)

func TestGormCommentRepository(t *testing.T) {
	ctx := context.Background()
	db := testdb.Open(t)
	repo := NewGormCommentRepository(db)

	alice := usermodel.User{Email: "alice@example.com", PasswordHash: "x"}
	bob := usermodel.User{Email: "bob@example.com", PasswordHash: "x"}
	require.NoError(t, db.Create(&alice).Error)
	require.NoError(t, db.Create(&bob).Error)
	p1 := postmodel.Post{UserID: alice.ID, Title: "1", Text: "x"}
	p2 := postmodel.Post{UserID: alice.ID, Title: "2", Text: "x"}
	require.NoError(t, db.Create(&p1).Error)
	require.NoError(t, db.Create(&p2).Error)

	a1 := model.Comment{PostID: p1.ID, UserID: alice.ID, Text: "a1"}
	a2 := model.Comment{PostID: p2.ID, UserID: alice.ID, Text: "a2"}
	b1 := model.Comment{PostID: p1.ID, UserID: bob.ID, Text: "b1"}
	for _, c := range []*model.Comment{&a1, &a2, &b1} {
		require.NoError(t, repo.Create(ctx, c))
	}

	got, err := repo.List(ctx, scope.As(alice.ID), model.Filter{PostID: p1.ID})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, a1.ID, got[0].ID)

	got, err = repo.List(ctx, scope.As(alice.ID), model.Filter{})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = repo.List(ctx, scope.Anonymous(), model.Filter{PostID: p1.ID})
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = repo.QueryByID(ctx, scope.As(alice.ID), b1.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	assert.ErrorIs(t, repo.UpdateText(ctx, scope.As(alice.ID), b1.ID, "x"), apperrors.ErrNotFound)
	require.NoError(t, repo.UpdateText(ctx, scope.As(bob.ID), b1.ID, "edited"))
	c, err := repo.QueryByID(ctx, scope.System(), b1.ID)
	require.NoError(t, err)
	assert.Equal(t, "edited", c.Text)

	assert.ErrorIs(t, repo.Delete(ctx, scope.As(alice.ID), b1.ID), apperrors.ErrNotFound)
	require.NoError(t, repo.Delete(ctx, scope.As(bob.ID), b1.ID))

	err = repo.Create(ctx, &model.Comment{PostID: 999, UserID: alice.ID, Text: "orphan"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
