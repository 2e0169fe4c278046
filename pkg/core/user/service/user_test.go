package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "mini-blog/pkg/common/errors"
	dao "mini-blog/pkg/core/user/repository/dao/impl"
	"mini-blog/pkg/internal/testdb"
)

func newTestService(t *testing.T, ttl time.Duration) *UserService {
	t.Helper()
	repo := dao.NewGormUserRepository(testdb.Open(t))
	return NewUserService(repo, Options{TokenTTL: ttl, BcryptCost: bcrypt.MinCost})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 0)

	user, err := svc.Create(ctx, SignupInput{Email: " a@x.com ", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.Nil(t, user.Token)

	_, err = svc.Create(ctx, SignupInput{Email: "a@x.com", Password: "other"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	_, err = svc.Create(ctx, SignupInput{Email: "broken", Password: "p"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Create(ctx, SignupInput{Email: "b@x.com"})
	require.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, apperrors.Fields(err), "password")
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 0)
	user, err := svc.Create(ctx, SignupInput{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	first, err := svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, first.ID)
	assert.Len(t, first.Token, 64)

	second, err := svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token, "each login rotates the token")

	resolved, err := svc.ResolveToken(ctx, second.Token)
	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, user.ID, resolved.ID)

	stale, err := svc.ResolveToken(ctx, first.Token)
	require.NoError(t, err)
	assert.Nil(t, stale)

	_, err = svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@x.com", Password: "p"})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Login(ctx, LoginInput{Email: "a@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestResolveTokenExpiry(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, time.Hour)
	_, err := svc.Create(ctx, SignupInput{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	now := time.Now()
	svc.now = func() time.Time { return now }
	res, err := svc.Login(ctx, LoginInput{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)

	user, err := svc.ResolveToken(ctx, res.Token)
	require.NoError(t, err)
	assert.NotNil(t, user)

	svc.now = func() time.Time { return now.Add(2 * time.Hour) }
	user, err = svc.ResolveToken(ctx, res.Token)
	require.NoError(t, err)
	assert.Nil(t, user)

	user, err = svc.ResolveToken(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUpdate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t, 0)
	a, err := svc.Create(ctx, SignupInput{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	b, err := svc.Create(ctx, SignupInput{Email: "b@x.com", Password: "p"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, a.ID, a.ID, UpdateInput{Email: "new@x.com"})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", updated.Email)

	got, err := svc.Get(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", got.Email)

	// Same email again is fine.
	_, err = svc.Update(ctx, a.ID, a.ID, UpdateInput{Email: "new@x.com"})
	assert.NoError(t, err)

	_, err = svc.Update(ctx, b.ID, a.ID, UpdateInput{Email: "c@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Update(ctx, 0, a.ID, UpdateInput{Email: "c@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)

	_, err = svc.Update(ctx, a.ID, a.ID, UpdateInput{Email: ""})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Update(ctx, a.ID, a.ID, UpdateInput{Email: "b@x.com"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)
}
