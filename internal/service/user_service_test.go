package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopstack/auth-platform/internal/auth"
)

func newTestUserService(t *testing.T) (*UserService, *fakeUserRepo) {
	t.Helper()
	users := newFakeUserRepo()
	svc := NewUserService(testAuthConfig(), users, nil, nil)
	return svc, users
}

func TestRegister_Success(t *testing.T) {
	svc, _ := newTestUserService(t)

	user, err := svc.Register(context.Background(), "Alice", "alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "alice@example.com", user.Email)

	// password is stored hashed, never verbatim
	assert.NotEqual(t, "s3cret", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "s3cret"))
}

func TestRegister_MissingFields(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Register(context.Background(), "Alice", "", "s3cret")
	assert.Equal(t, "MISSING_CREDENTIALS", errCode(t, err))

	_, err = svc.Register(context.Background(), "Alice", "alice@example.com", "")
	assert.Equal(t, "MISSING_CREDENTIALS", errCode(t, err))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, users := newTestUserService(t)
	seedUser(t, users, "Alice", "alice@example.com", "s3cret")

	_, err := svc.Register(context.Background(), "Other Alice", "alice@example.com", "another")
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", errCode(t, err))
}

func TestProfile_NotFound(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Profile(context.Background(), 404)
	require.Error(t, err)
	assert.Equal(t, "PRINCIPAL_NOT_FOUND", errCode(t, err))
}

func TestUpdateProfile_ChangesName(t *testing.T) {
	svc, users := newTestUserService(t)
	alice := seedUser(t, users, "Alice", "alice@example.com", "s3cret")

	updated, err := svc.UpdateProfile(context.Background(), alice.ID, "Alice Cooper")
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", updated.Name)

	reloaded, err := svc.Profile(context.Background(), alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Cooper", reloaded.Name)
}
