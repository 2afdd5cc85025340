package repository

import (
	"errors"
	"post_place_backend/internal/model"
	"post_place_backend/internal/util"

	"gorm.io/gorm"
)

type CommentRepository struct {
	DB *gorm.DB
}

func NewCommentRepository(db *gorm.DB) *CommentRepository {
	return &CommentRepository{DB: db}
}

// Create 创建评论，父帖子必须存在
func (r *CommentRepository) Create(comment *model.Comment) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&model.Post{}).Where("id = ?", comment.PostID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return util.ErrPostNotFound
		}
		return tx.Create(comment).Error
	})
	if err != nil {
		return err
	}
	return r.DB.Preload("Author").First(comment, "id = ?", comment.ID).Error
}

// Update 更新评论内容，仅作者可操作
func (r *CommentRepository) Update(commentID string, userID uint, content string) (*model.Comment, error) {
	var comment model.Comment
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&comment, "id = ?", commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrCommentNotFound
			}
			return err
		}
		if comment.UserID != userID {
			return util.ErrPermissionDenied
		}
		return tx.Model(&comment).Update("content", content).Error
	})
	if err != nil {
		return nil, err
	}
	err = r.DB.Preload("Author").First(&comment, "id = ?", commentID).Error
	return &comment, err
}

// Delete 删除评论，仅作者可操作
func (r *CommentRepository) Delete(commentID string, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		var comment model.Comment
		if err := tx.First(&comment, "id = ?", commentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrCommentNotFound
			}
			return err
		}
		if comment.UserID != userID {
			return util.ErrPermissionDenied
		}
		return tx.Delete(&comment).Error
	})
}
