package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/carson-networks/pocket-ledger/internal/ledger"
)

func newTestUsers() *UserService {
	return NewUserService(bcrypt.MinCost, nil)
}

func TestEnsureDefaultUser(t *testing.T) {
	users := newTestUsers()
	ctx := context.Background()

	user, err := users.EnsureDefaultUser(ctx, "demo", "password")
	require.NoError(t, err)
	assert.Equal(t, ledger.DefaultUserID, user.ID)
	assert.NotEqual(t, []byte("password"), user.PasswordHash)

	again, err := users.EnsureDefaultUser(ctx, "demo", "other")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)
}

func TestCreateUser_Sequential(t *testing.T) {
	users := newTestUsers()
	ctx := context.Background()

	a, err := users.CreateUser(ctx, "alice", "secret")
	require.NoError(t, err)
	b, err := users.CreateUser(ctx, "bob", "secret")
	require.NoError(t, err)
	assert.Equal(t, 1, a.ID)
	assert.Equal(t, 2, b.ID)

	got, err := users.GetUser(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "bob", got.Username)
}

func TestCreateUser_Duplicate(t *testing.T) {
	users := newTestUsers()
	ctx := context.Background()

	_, err := users.CreateUser(ctx, "alice", "secret")
	require.NoError(t, err)
	_, err = users.CreateUser(ctx, "alice", "other")
	requireValidationField(t, err, "username")
}

func TestGetUser_NotFound(t *testing.T) {
	_, err := newTestUsers().GetUser(context.Background(), 3)
	var notFound *ledger.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}

func TestVerifyPassword(t *testing.T) {
	users := newTestUsers()
	ctx := context.Background()
	_, err := users.CreateUser(ctx, "alice", "secret")
	require.NoError(t, err)

	user, err := users.VerifyPassword(ctx, "alice", "secret")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = users.VerifyPassword(ctx, "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = users.VerifyPassword(ctx, "mallory", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
