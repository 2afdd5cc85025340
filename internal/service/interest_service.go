package service

import (
	"post_place_backend/internal/model"
	"post_place_backend/internal/repository"
)

// InterestService 兴趣目录和基于兴趣的好友推荐
type InterestService struct {
	InterestRepo *repository.InterestRepository
}

func NewInterestService(interestRepo *repository.InterestRepository) *InterestService {
	return &InterestService{InterestRepo: interestRepo}
}

// ListCatalog 全部兴趣目录
func (s *InterestService) ListCatalog() ([]model.Interest, error) {
	return s.InterestRepo.ListAll()
}

// ListUserInterests 用户持有的兴趣
func (s *InterestService) ListUserInterests(userID uint) ([]model.Interest, error) {
	return s.InterestRepo.ListUser(userID)
}

// AddInterest 为当前用户添加兴趣
func (s *InterestService) AddInterest(userID uint, name string) (*model.Interest, error) {
	return s.InterestRepo.Add(userID, name)
}

// RemoveInterest 移除当前用户的兴趣
func (s *InterestService) RemoveInterest(userID uint, name string) error {
	return s.InterestRepo.Remove(userID, name)
}

// GetStats 兴趣统计
func (s *InterestService) GetStats(userID uint) (*repository.InterestStats, error) {
	return s.InterestRepo.Stats(userID)
}

// Recommend 按共同兴趣推荐好友
func (s *InterestService) Recommend(userID uint, limit int) ([]repository.Recommendation, error) {
	return s.InterestRepo.Recommend(userID, limit)
}
