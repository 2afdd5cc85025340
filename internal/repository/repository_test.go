package repository

import (
	"fmt"
	"post_place_backend/internal/model"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.Comment{},
		&model.Friendship{},
		&model.FriendRequest{},
		&model.Group{},
		&model.GroupMember{},
		&model.Interest{},
		&model.UserInterest{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, name string) *model.User {
	t.Helper()

	user := &model.User{
		Name:     name,
		Email:    fmt.Sprintf("%s@example.com", name),
		Password: "hashed",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// makeFriends 直接建立双向好友关系
func makeFriends(t *testing.T, db *gorm.DB, a, b uint) {
	t.Helper()
	require.NoError(t, db.Create(&model.Friendship{UserID: a, FriendID: b}).Error)
	require.NoError(t, db.Create(&model.Friendship{UserID: b, FriendID: a}).Error)
}
