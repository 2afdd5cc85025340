package service

import (
	"post_place_backend/internal/model"
	"post_place_backend/internal/repository"
)

// FriendshipService 好友申请和好友关系
type FriendshipService struct {
	FriendshipRepo *repository.FriendshipRepository
	UserRepo       *repository.UserRepository
}

func NewFriendshipService(friendshipRepo *repository.FriendshipRepository, userRepo *repository.UserRepository) *FriendshipService {
	return &FriendshipService{
		FriendshipRepo: friendshipRepo,
		UserRepo:       userRepo,
	}
}

// SendRequest 发送好友申请，返回带申请人信息的申请记录
func (s *FriendshipService) SendRequest(senderID, receiverID uint, message string) (*model.FriendRequest, error) {
	req, err := s.FriendshipRepo.SendRequest(senderID, receiverID, message)
	if err != nil {
		return nil, err
	}

	sender, err := s.UserRepo.FindByID(senderID)
	if err != nil {
		return nil, err
	}
	req.Sender = *sender
	return req, nil
}

// AcceptRequest 接受好友申请，返回新好友的用户信息
func (s *FriendshipService) AcceptRequest(receiverID, senderID uint) (*model.User, error) {
	return s.FriendshipRepo.AcceptRequest(receiverID, senderID)
}

// RejectRequest 拒绝收到的好友申请
func (s *FriendshipService) RejectRequest(receiverID, senderID uint) error {
	return s.FriendshipRepo.RejectRequest(receiverID, senderID)
}

// CancelRequest 取消自己发出的好友申请
func (s *FriendshipService) CancelRequest(senderID, receiverID uint) error {
	return s.FriendshipRepo.CancelRequest(senderID, receiverID)
}

// RemoveFriend 删除好友关系
func (s *FriendshipService) RemoveFriend(userID, friendID uint) error {
	return s.FriendshipRepo.RemoveFriend(userID, friendID)
}

// GetFriends 好友列表
func (s *FriendshipService) GetFriends(userID uint) ([]model.User, error) {
	return s.FriendshipRepo.GetFriends(userID)
}

// GetPendingRequests 收到的待处理申请
func (s *FriendshipService) GetPendingRequests(userID uint) ([]model.FriendRequest, error) {
	return s.FriendshipRepo.GetPendingRequests(userID)
}

// GetSentRequests 发出的待处理申请
func (s *FriendshipService) GetSentRequests(userID uint) ([]model.FriendRequest, error) {
	return s.FriendshipRepo.GetSentRequests(userID)
}

// GetStatus 与指定用户的关系状态
func (s *FriendshipService) GetStatus(userID, otherID uint) (model.FriendshipStatus, error) {
	return s.FriendshipRepo.GetStatus(userID, otherID)
}

// GetStats 好友关系统计
func (s *FriendshipService) GetStats(userID uint) (*repository.FriendshipStats, error) {
	return s.FriendshipRepo.GetStats(userID)
}

// SearchUsers 搜索可添加为好友的用户
func (s *FriendshipService) SearchUsers(userID uint, term string, limit int) ([]model.User, error) {
	return s.FriendshipRepo.SearchUsers(userID, term, limit)
}
