package service

import (
	"context"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"post_place_backend/internal/model"
	"post_place_backend/internal/repository"
	"post_place_backend/internal/util"
	"post_place_backend/pkg/logger"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxImageSize = 5 << 20 // 5MB

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
}

// PostService 帖子和评论，帖子可携带一张图片
type PostService struct {
	PostRepo    *repository.PostRepository
	CommentRepo *repository.CommentRepository
	Storage     *StorageService
}

func NewPostService(postRepo *repository.PostRepository, commentRepo *repository.CommentRepository, storage *StorageService) *PostService {
	return &PostService{
		PostRepo:    postRepo,
		CommentRepo: commentRepo,
		Storage:     storage,
	}
}

// CreatePost 发布帖子，image 可以为 nil
func (s *PostService) CreatePost(ctx context.Context, userID uint, title, content string, image *multipart.FileHeader) (*model.Post, error) {
	post := &model.Post{
		UserID:  userID,
		Title:   title,
		Content: content,
	}

	if image != nil {
		url, err := s.uploadImage(ctx, image)
		if err != nil {
			return nil, err
		}
		post.ImageURL = url
	}

	if err := s.PostRepo.Create(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) uploadImage(ctx context.Context, image *multipart.FileHeader) (string, error) {
	if image.Size > maxImageSize {
		return "", util.ErrImageTooLarge
	}

	ext := strings.ToLower(filepath.Ext(image.Filename))
	if !allowedImageExts[ext] {
		return "", util.ErrUnsupportedImage
	}

	src, err := image.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	filename := fmt.Sprintf("posts/%s%s", uuid.New().String(), ext)
	contentType := image.Header.Get("Content-Type")
	return s.Storage.Upload(ctx, filename, src, image.Size, contentType)
}

// ListPosts 全部帖子，最新在前
func (s *PostService) ListPosts() ([]model.Post, error) {
	return s.PostRepo.FindAll()
}

// ListUserPosts 指定用户的帖子
func (s *PostService) ListUserPosts(userID uint) ([]model.Post, error) {
	return s.PostRepo.FindByUser(userID)
}

// SearchPosts 按关键词搜索帖子
func (s *PostService) SearchPosts(term string) ([]model.Post, error) {
	return s.PostRepo.Search(term)
}

// GetPost 帖子详情
func (s *PostService) GetPost(postID string) (*model.Post, error) {
	return s.PostRepo.FindByID(postID)
}

// UpdatePost 更新帖子内容，仅作者可操作
func (s *PostService) UpdatePost(postID string, userID uint, content string) (*model.Post, error) {
	return s.PostRepo.Update(postID, userID, content)
}

// DeletePost 删除帖子及其评论，图片文件尽力清理
func (s *PostService) DeletePost(ctx context.Context, postID string, userID uint) error {
	imageURL, err := s.PostRepo.Delete(postID, userID)
	if err != nil {
		return err
	}

	if imageURL != "" {
		filename := strings.TrimPrefix(imageURL, "/uploads/")
		if err := s.Storage.Delete(ctx, filename); err != nil {
			logger.Log.Warn("Post image cleanup failed",
				zap.Error(err),
				zap.String("postId", postID),
				zap.String("imageUrl", imageURL))
		}
	}
	return nil
}

// AddComment 给帖子添加评论
func (s *PostService) AddComment(postID string, userID uint, content string) (*model.Comment, error) {
	comment := &model.Comment{
		PostID:  postID,
		UserID:  userID,
		Content: content,
	}
	if err := s.CommentRepo.Create(comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// UpdateComment 更新评论，仅作者可操作
func (s *PostService) UpdateComment(commentID string, userID uint, content string) (*model.Comment, error) {
	return s.CommentRepo.Update(commentID, userID, content)
}

// DeleteComment 删除评论，仅作者可操作
func (s *PostService) DeleteComment(commentID string, userID uint) error {
	return s.CommentRepo.Delete(commentID, userID)
}
