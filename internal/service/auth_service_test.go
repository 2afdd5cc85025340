package service

import (
	"post_place_backend/internal/config"
	"post_place_backend/internal/model"
	"post_place_backend/internal/repository"
	"post_place_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour

	return NewAuthService(repository.NewUserRepository(db), cfg), db
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService(t)

	user, token, err := svc.Register("alice", "alice@example.com", "secreto123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEqual(t, "secreto123", user.Password)

	// 令牌可以解析回同一个用户
	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)

	logged, loginToken, err := svc.Login("alice@example.com", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, logged.ID)
	assert.NotEmpty(t, loginToken)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Register("alice", "alice@example.com", "secreto123")
	require.NoError(t, err)

	_, _, err = svc.Register("otra", "alice@example.com", "secreto456")
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, _, err := svc.Register("alice", "alice@example.com", "secreto123")
	require.NoError(t, err)

	_, _, err = svc.Login("alice@example.com", "equivocada")
	require.Error(t, err)

	// 不存在的邮箱返回相同的错误信息
	_, _, err2 := svc.Login("nadie@example.com", "secreto123")
	require.Error(t, err2)
	assert.Equal(t, err.Error(), err2.Error())
}

func TestParseJWTWrongSecret(t *testing.T) {
	svc, _ := newAuthService(t)

	_, token, err := svc.Register("alice", "alice@example.com", "secreto123")
	require.NoError(t, err)

	_, err = util.ParseJWT(token, "otro-secreto")
	assert.Error(t, err)
}

func TestGetCurrentUserMissing(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.GetCurrentUser(42)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}
