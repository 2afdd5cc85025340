package repository

import (
	"post_place_backend/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("email = ?", email).First(&user).Error
	return &user, err
}

func (r *UserRepository) Update(user *model.User) error {
	return r.DB.Save(user).Error
}

// Delete 删除账号并级联清理其全部数据：
// 帖子及帖子下的评论、本人发出的评论、好友边、待处理申请、
// 群组成员关系、本人创建的群组、兴趣关系
func (r *UserRepository) Delete(userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		postIDs := tx.Model(&model.Post{}).Select("id").Where("user_id = ?", userID)
		if err := tx.Where("post_id IN (?)", postIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.Post{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ? OR friend_id = ?", userID, userID).Delete(&model.Friendship{}).Error; err != nil {
			return err
		}
		if err := tx.Where("sender_id = ? OR receiver_id = ?", userID, userID).Delete(&model.FriendRequest{}).Error; err != nil {
			return err
		}

		groupIDs := tx.Model(&model.Group{}).Select("id").Where("creator_id = ?", userID)
		if err := tx.Where("group_id IN (?)", groupIDs).Delete(&model.GroupMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("creator_id = ?", userID).Delete(&model.Group{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&model.GroupMember{}).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&model.UserInterest{}).Error; err != nil {
			return err
		}

		return tx.Delete(&model.User{}, userID).Error
	})
}

// GetCommentedPosts 用户评论过的帖子，最新在前
func (r *UserRepository) GetCommentedPosts(userID uint) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.
		Distinct("posts.*").
		Joins("JOIN comments ON comments.post_id = posts.id").
		Where("comments.user_id = ?", userID).
		Order("posts.created_at DESC").
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		Find(&posts).Error
	return posts, err
}
