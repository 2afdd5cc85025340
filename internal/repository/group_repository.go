package repository

import (
	"errors"
	"post_place_backend/internal/model"
	"post_place_backend/internal/util"

	"gorm.io/gorm"
)

type GroupRepository struct {
	DB *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{DB: db}
}

// GroupSummary 群组列表条目，附带成员数量和当前用户角色
type GroupSummary struct {
	model.Group
	MyRole      model.GroupRole `gorm:"column:my_role" json:"myRole"`
	MemberCount int64           `gorm:"column:member_count" json:"memberCount"`
}

// Create 创建群组，同一事务内写入创建者的管理员成员关系
func (r *GroupRepository) Create(group *model.Group) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(group).Error; err != nil {
			return err
		}
		return tx.Create(&model.GroupMember{
			GroupID: group.ID,
			UserID:  group.CreatorID,
			Role:    model.RoleAdmin,
		}).Error
	})
}

// GetUserGroups 当前用户所在的群组，按创建时间倒序
func (r *GroupRepository) GetUserGroups(userID uint) ([]GroupSummary, error) {
	var groups []GroupSummary
	err := r.DB.Model(&model.Group{}).
		Select("groups.*, gm.role AS my_role, (SELECT COUNT(*) FROM group_members WHERE group_members.group_id = groups.id) AS member_count").
		Joins("JOIN group_members gm ON gm.group_id = groups.id AND gm.user_id = ?", userID).
		Order("groups.created_at DESC").
		Find(&groups).Error
	return groups, err
}

// GetByID 群组详情，带成员列表和请求者自己的角色（非成员时为空）
func (r *GroupRepository) GetByID(groupID string, userID uint) (*model.Group, model.GroupRole, error) {
	var group model.Group
	err := r.DB.
		Preload("Creator").
		Preload("Members.User").
		First(&group, "id = ?", groupID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", util.ErrGroupNotFound
	}
	if err != nil {
		return nil, "", err
	}

	var myRole model.GroupRole
	for _, m := range group.Members {
		if m.UserID == userID {
			myRole = m.Role
			break
		}
	}
	return &group, myRole, nil
}

// AddMember 添加成员：操作者必须是管理员且与候选人是好友，候选人不能已在群中
// 全部检查与写入在同一事务内
func (r *GroupRepository) AddMember(groupID string, actorID, newMemberID uint) (*model.User, error) {
	var added model.User

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := requireGroup(tx, groupID); err != nil {
			return err
		}

		if err := requireAdmin(tx, groupID, actorID); err != nil {
			return err
		}

		var friends int64
		if err := tx.Model(&model.Friendship{}).
			Where("user_id = ? AND friend_id = ?", actorID, newMemberID).
			Count(&friends).Error; err != nil {
			return err
		}
		if friends == 0 {
			return util.ErrMemberNotFriend
		}

		var members int64
		if err := tx.Model(&model.GroupMember{}).
			Where("group_id = ? AND user_id = ?", groupID, newMemberID).
			Count(&members).Error; err != nil {
			return err
		}
		if members > 0 {
			return util.ErrAlreadyGroupMember
		}

		if err := tx.First(&added, newMemberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrUserNotFound
			}
			return err
		}

		return tx.Create(&model.GroupMember{
			GroupID: groupID,
			UserID:  newMemberID,
			Role:    model.RoleMember,
		}).Error
	})
	if err != nil {
		return nil, err
	}
	return &added, nil
}

// RemoveMember 移除成员：操作者必须是管理员，创建者不可被移除
func (r *GroupRepository) RemoveMember(groupID string, actorID, memberID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		group, err := findGroup(tx, groupID)
		if err != nil {
			return err
		}

		if err := requireAdmin(tx, groupID, actorID); err != nil {
			return err
		}

		if group.CreatorID == memberID {
			return util.ErrCannotRemoveCreator
		}

		res := tx.Where("group_id = ? AND user_id = ?", groupID, memberID).
			Delete(&model.GroupMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrNotGroupMember
		}
		return nil
	})
}

// Leave 退出群组：创建者不能退出，只能删除群组
func (r *GroupRepository) Leave(groupID string, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		group, err := findGroup(tx, groupID)
		if err != nil {
			return err
		}

		if group.CreatorID == userID {
			return util.ErrCreatorCannotLeave
		}

		res := tx.Where("group_id = ? AND user_id = ?", groupID, userID).
			Delete(&model.GroupMember{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrNotGroupMember
		}
		return nil
	})
}

// Delete 删除群组：仅创建者可操作，级联删除全部成员关系
func (r *GroupRepository) Delete(groupID string, userID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		group, err := findGroup(tx, groupID)
		if err != nil {
			return err
		}

		if group.CreatorID != userID {
			return util.ErrOnlyCreatorCanDelete
		}

		if err := tx.Where("group_id = ?", groupID).Delete(&model.GroupMember{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Group{}, "id = ?", groupID).Error
	})
}

// GetAvailableFriends 用户的好友中尚未加入该群组的人
func (r *GroupRepository) GetAvailableFriends(groupID string, userID uint) ([]model.User, error) {
	memberIDs := r.DB.Model(&model.GroupMember{}).Select("user_id").Where("group_id = ?", groupID)

	var friends []model.User
	err := r.DB.
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).
		Where("users.id NOT IN (?)", memberIDs).
		Order("users.name ASC").
		Find(&friends).Error
	return friends, err
}

func findGroup(tx *gorm.DB, groupID string) (*model.Group, error) {
	var group model.Group
	if err := tx.First(&group, "id = ?", groupID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrGroupNotFound
		}
		return nil, err
	}
	return &group, nil
}

func requireGroup(tx *gorm.DB, groupID string) error {
	_, err := findGroup(tx, groupID)
	return err
}

func requireAdmin(tx *gorm.DB, groupID string, userID uint) error {
	var count int64
	if err := tx.Model(&model.GroupMember{}).
		Where("group_id = ? AND user_id = ? AND role = ?", groupID, userID, model.RoleAdmin).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return util.ErrNotGroupAdmin
	}
	return nil
}
