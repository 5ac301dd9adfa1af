package user

import (
	"context"
	"testing"
	"time"

	"github.com/kharcha/kharcha/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*UserServiceImpl, *utils.MockClock) {
	clock := &utils.MockClock{FixedNow: time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)}
	return NewUserService(NewStubUserRepo(), clock), clock
}

func TestUserService_Register(t *testing.T) {
	t.Run("should register a new user with hashed password", func(t *testing.T) {
		// given
		service, _ := newTestService()

		// when
		created, err := service.Register(context.Background(), "asha", "asha@example.com", "Asha", "s3cret-pass")

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.NotEmpty(t, created.Uid)
		assert.Equal(t, "asha", created.Username)
		assert.NotEqual(t, "s3cret-pass", created.PasswordHash)
	})

	t.Run("should reject duplicate username", func(t *testing.T) {
		// given
		service, _ := newTestService()
		_, err := service.Register(context.Background(), "asha", "", "", "s3cret-pass")
		require.NoError(t, err)

		// when
		_, err = service.Register(context.Background(), "asha", "", "", "other-pass")

		// then
		require.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("should reject short password", func(t *testing.T) {
		service, _ := newTestService()
		_, err := service.Register(context.Background(), "asha", "", "", "short")
		require.ErrorIs(t, err, ErrWeakPassword)
	})

	t.Run("should reject blank username", func(t *testing.T) {
		service, _ := newTestService()
		_, err := service.Register(context.Background(), "   ", "", "", "s3cret-pass")
		require.Error(t, err)
	})
}

func TestUserService_Authenticate(t *testing.T) {
	t.Run("should authenticate with correct password", func(t *testing.T) {
		// given
		service, _ := newTestService()
		created, err := service.Register(context.Background(), "asha", "", "", "s3cret-pass")
		require.NoError(t, err)

		// when
		authenticated, err := service.Authenticate(context.Background(), "asha", "s3cret-pass")

		// then
		require.NoError(t, err)
		assert.Equal(t, created.Id, authenticated.Id)
	})

	t.Run("should reject wrong password", func(t *testing.T) {
		service, _ := newTestService()
		_, err := service.Register(context.Background(), "asha", "", "", "s3cret-pass")
		require.NoError(t, err)

		_, err = service.Authenticate(context.Background(), "asha", "wrong-pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("should reject unknown user", func(t *testing.T) {
		service, _ := newTestService()
		_, err := service.Authenticate(context.Background(), "ghost", "whatever-pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestUserService_ChangePassword(t *testing.T) {
	t.Run("should change password after verifying the current one", func(t *testing.T) {
		// given
		service, _ := newTestService()
		created, err := service.Register(context.Background(), "asha", "", "", "s3cret-pass")
		require.NoError(t, err)
		ctx := WithUser(context.Background(), created)

		// when
		err = service.ChangePassword(ctx, "s3cret-pass", "new-s3cret-pass")

		// then
		require.NoError(t, err)
		_, err = service.Authenticate(ctx, "asha", "new-s3cret-pass")
		require.NoError(t, err)
	})

	t.Run("should reject wrong current password", func(t *testing.T) {
		service, _ := newTestService()
		created, err := service.Register(context.Background(), "asha", "", "", "s3cret-pass")
		require.NoError(t, err)
		ctx := WithUser(context.Background(), created)

		err = service.ChangePassword(ctx, "wrong-pass", "new-s3cret-pass")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
