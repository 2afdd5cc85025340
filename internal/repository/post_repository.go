package repository

import (
	"errors"
	"post_place_backend/internal/model"
	"post_place_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
	return &PostRepository{DB: db}
}

func (r *PostRepository) Create(post *model.Post) error {
	if err := r.DB.Create(post).Error; err != nil {
		return err
	}
	return r.DB.Preload("Author").First(post, "id = ?", post.ID).Error
}

// FindAll 全部帖子，最新在前，带作者和评论
func (r *PostRepository) FindAll() ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.
		Order("created_at DESC").
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) FindByUser(userID uint) ([]model.Post, error) {
	var posts []model.Post
	err := r.DB.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		Find(&posts).Error
	return posts, err
}

// Search 按关键词搜索帖子，标题或正文命中（不区分大小写），最新在前
func (r *PostRepository) Search(term string) ([]model.Post, error) {
	pattern := "%" + strings.ToLower(term) + "%"

	var posts []model.Post
	err := r.DB.
		Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		Find(&posts).Error
	return posts, err
}

func (r *PostRepository) FindByID(id string) (*model.Post, error) {
	var post model.Post
	err := r.DB.
		Preload("Author").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at ASC")
		}).
		Preload("Comments.Author").
		First(&post, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.ErrPostNotFound
	}
	return &post, err
}

// Update 更新帖子内容，仅作者可操作
func (r *PostRepository) Update(postID string, userID uint, content string) (*model.Post, error) {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrPostNotFound
			}
			return err
		}
		if post.UserID != userID {
			return util.ErrPermissionDenied
		}
		return tx.Model(&post).Update("content", content).Error
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(postID)
}

// Delete 删除帖子及其全部评论，仅作者可操作，返回被删帖子的图片地址
func (r *PostRepository) Delete(postID string, userID uint) (string, error) {
	var imageURL string
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var post model.Post
		if err := tx.First(&post, "id = ?", postID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrPostNotFound
			}
			return err
		}
		if post.UserID != userID {
			return util.ErrPermissionDenied
		}
		imageURL = post.ImageURL

		if err := tx.Where("post_id = ?", postID).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&post).Error
	})
	return imageURL, err
}
