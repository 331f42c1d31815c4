package auth

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/lensframe/studio-core/internal/database"
	"github.com/lensframe/studio-core/internal/models"
	"github.com/lensframe/studio-core/internal/pkg/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return NewService(db), db
}

func register(t *testing.T, svc *Service) *models.UserModel {
	t.Helper()
	user, err := svc.Register(&RegisterDTO{Username: "owner", Password: "correct-horse-1", Name: "Studio Owner"})
	require.NoError(t, err)
	return user
}

func TestRegisterOnlyOnce(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc)

	_, err := svc.Register(&RegisterDTO{Username: "second", Password: "password-123"})
	assert.ErrorIs(t, err, ErrOwnerExists)
}

func TestRegisterHashesPassword(t *testing.T) {
	svc, _ := newTestService(t)
	user := register(t, svc)
	assert.NotEqual(t, "correct-horse-1", user.Password)
}

func TestLoginAndRefresh(t *testing.T) {
	svc, db := newTestService(t)
	register(t, svc)

	result, sess, err := svc.Login(&LoginDTO{Username: "owner", Password: "correct-horse-1"}, "127.0.0.1", "go-test")
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "owner", result.Username)

	token, err := svc.Refresh(sess.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	var stored models.UserModel
	require.NoError(t, db.First(&stored, "username = ?", "owner").Error)
	assert.NotNil(t, stored.LastLoginTime)
	assert.Equal(t, "127.0.0.1", stored.LastLoginIP)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _ := newTestService(t)
	register(t, svc)

	_, _, err := svc.Login(&LoginDTO{Username: "owner", Password: "wrong"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(&LoginDTO{Username: "ghost", Password: "whatever"}, "", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, _ := newTestService(t)
	user := register(t, svc)

	_, sess, err := svc.Login(&LoginDTO{Username: "owner", Password: "correct-horse-1"}, "", "")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(user.ID, sess.ID))

	_, err = svc.Refresh(sess.ID)
	assert.ErrorIs(t, err, ErrSessionInvalid)
}

func TestChangePasswordRevokesOtherSessions(t *testing.T) {
	svc, db := newTestService(t)
	user := register(t, svc)

	_, keep, err := svc.Login(&LoginDTO{Username: "owner", Password: "correct-horse-1"}, "", "")
	require.NoError(t, err)
	_, other, err := svc.Login(&LoginDTO{Username: "owner", Password: "correct-horse-1"}, "", "")
	require.NoError(t, err)

	err = svc.ChangePassword(user.ID, keep.ID, &ChangePasswordDTO{
		OldPassword: "correct-horse-1",
		NewPassword: "battery-staple-2",
	})
	require.NoError(t, err)

	active, err := session.IsActive(db, user.ID, keep.ID)
	require.NoError(t, err)
	assert.True(t, active, "the session that changed the password stays alive")

	active, err = session.IsActive(db, user.ID, other.ID)
	require.NoError(t, err)
	assert.False(t, active)

	_, _, err = svc.Login(&LoginDTO{Username: "owner", Password: "battery-staple-2"}, "", "")
	assert.NoError(t, err)
}

func TestChangePasswordChecksOldPassword(t *testing.T) {
	svc, _ := newTestService(t)
	user := register(t, svc)

	err := svc.ChangePassword(user.ID, "", &ChangePasswordDTO{
		OldPassword: "wrong",
		NewPassword: "battery-staple-2",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
