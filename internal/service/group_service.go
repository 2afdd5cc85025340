package service

import (
	"post_place_backend/internal/model"
	"post_place_backend/internal/repository"
)

// GroupService 群组和成员管理
type GroupService struct {
	GroupRepo *repository.GroupRepository
}

func NewGroupService(groupRepo *repository.GroupRepository) *GroupService {
	return &GroupService{GroupRepo: groupRepo}
}

// CreateGroup 创建群组，创建者自动成为管理员成员
func (s *GroupService) CreateGroup(creatorID uint, name, description string, isPrivate bool) (*model.Group, error) {
	group := &model.Group{
		Name:        name,
		Description: description,
		IsPrivate:   isPrivate,
		CreatorID:   creatorID,
	}
	if err := s.GroupRepo.Create(group); err != nil {
		return nil, err
	}

	// 返回带创建者和成员的完整数据
	created, _, err := s.GroupRepo.GetByID(group.ID, creatorID)
	return created, err
}

// GetUserGroups 当前用户所在的群组
func (s *GroupService) GetUserGroups(userID uint) ([]repository.GroupSummary, error) {
	return s.GroupRepo.GetUserGroups(userID)
}

// GetGroup 群组详情和请求者在群内的角色
func (s *GroupService) GetGroup(groupID string, userID uint) (*model.Group, model.GroupRole, error) {
	return s.GroupRepo.GetByID(groupID, userID)
}

// AddMember 添加好友为群组成员
func (s *GroupService) AddMember(groupID string, actorID, newMemberID uint) (*model.User, error) {
	return s.GroupRepo.AddMember(groupID, actorID, newMemberID)
}

// RemoveMember 移除群组成员
func (s *GroupService) RemoveMember(groupID string, actorID, memberID uint) error {
	return s.GroupRepo.RemoveMember(groupID, actorID, memberID)
}

// LeaveGroup 退出群组
func (s *GroupService) LeaveGroup(groupID string, userID uint) error {
	return s.GroupRepo.Leave(groupID, userID)
}

// DeleteGroup 删除群组
func (s *GroupService) DeleteGroup(groupID string, userID uint) error {
	return s.GroupRepo.Delete(groupID, userID)
}

// GetAvailableFriends 可邀请进群的好友
func (s *GroupService) GetAvailableFriends(groupID string, userID uint) ([]model.User, error) {
	return s.GroupRepo.GetAvailableFriends(groupID, userID)
}
