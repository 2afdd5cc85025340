package service

import (
	"errors"
	"post_place_backend/internal/model"
	"post_place_backend/internal/repository"
	"post_place_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService 用户资料维护和账号注销
type UserService struct {
	UserRepo *repository.UserRepository
}

func NewUserService(userRepo *repository.UserRepository) *UserService {
	return &UserService{UserRepo: userRepo}
}

// UpdateProfileInput 可更新的资料字段，空值表示不修改
type UpdateProfileInput struct {
	Name     string
	Avatar   string
	Password string
}

// UpdateProfile 更新用户资料，新密码重新散列
func (s *UserService) UpdateProfile(userID uint, input UpdateProfileInput) (*model.User, error) {
	user, err := s.UserRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}

	if input.Name != "" {
		user.Name = input.Name
	}
	if input.Avatar != "" {
		user.Avatar = input.Avatar
	}
	if input.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.UserRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteAccount 注销账号并级联清理其全部数据
func (s *UserService) DeleteAccount(userID uint) error {
	if _, err := s.UserRepo.FindByID(userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrUserNotFound
		}
		return err
	}
	return s.UserRepo.Delete(userID)
}

// GetCommentedPosts 用户评论过的帖子
func (s *UserService) GetCommentedPosts(userID uint) ([]model.Post, error) {
	return s.UserRepo.GetCommentedPosts(userID)
}
