package repository

import (
	"context"
	"errors"
	"fmt"
	"post_place_backend/internal/model"
	"post_place_backend/internal/util"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

type FriendshipRepository struct {
	DB    *gorm.DB
	Redis *redis.Client
	ctx   context.Context
}

func NewFriendshipRepository(db *gorm.DB, rdb *redis.Client) *FriendshipRepository {
	return &FriendshipRepository{
		DB:    db,
		Redis: rdb,
		ctx:   context.Background(),
	}
}

// FriendshipStats 好友关系统计
type FriendshipStats struct {
	TotalFriends    int64 `json:"totalFriends"`
	PendingRequests int64 `json:"pendingRequests"`
	SentRequests    int64 `json:"sentRequests"`
}

// SendRequest 发送好友申请
// 状态检查和写入在同一事务内完成，并发的双向申请不会留下不一致状态
func (r *FriendshipRepository) SendRequest(senderID, receiverID uint, message string) (*model.FriendRequest, error) {
	if senderID == receiverID {
		return nil, util.ErrSelfFriendRequest
	}

	req := &model.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Message:    message,
	}

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var users int64
		if err := tx.Model(&model.User{}).Where("id IN ?", []uint{senderID, receiverID}).Count(&users).Error; err != nil {
			return err
		}
		if users != 2 {
			return util.ErrUserNotFound
		}

		var friends int64
		if err := tx.Model(&model.Friendship{}).
			Where("user_id = ? AND friend_id = ?", senderID, receiverID).
			Count(&friends).Error; err != nil {
			return err
		}
		if friends > 0 {
			return util.ErrAlreadyFriends
		}

		var pending model.FriendRequest
		err := tx.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).First(&pending).Error
		if err == nil {
			return util.ErrRequestAlreadySent
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		err = tx.Where("sender_id = ? AND receiver_id = ?", receiverID, senderID).First(&pending).Error
		if err == nil {
			return util.ErrReciprocalRequest
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		return tx.Create(req).Error
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// AcceptRequest 接受好友申请：删除待处理申请并建立双向好友关系
func (r *FriendshipRepository) AcceptRequest(receiverID, senderID uint) (*model.User, error) {
	var friend model.User

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var req model.FriendRequest
		if err := tx.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
			First(&req).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrRequestNotFound
			}
			return err
		}

		// 并发双向发送可能让两个方向的申请同时成立，接受时一起清掉，
		// 保证成为好友后任一方向都不再有待处理申请
		if err := tx.Where(
			"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			senderID, receiverID, receiverID, senderID).
			Delete(&model.FriendRequest{}).Error; err != nil {
			return err
		}

		if err := tx.Create(&model.Friendship{UserID: senderID, FriendID: receiverID}).Error; err != nil {
			return err
		}
		if err := tx.Create(&model.Friendship{UserID: receiverID, FriendID: senderID}).Error; err != nil {
			return err
		}

		return tx.First(&friend, senderID).Error
	})
	if err != nil {
		return nil, err
	}

	r.invalidateFriendCache(senderID, receiverID)
	return &friend, nil
}

// RejectRequest 拒绝收到的好友申请
func (r *FriendshipRepository) RejectRequest(receiverID, senderID uint) error {
	return r.deletePending(senderID, receiverID)
}

// CancelRequest 取消自己发出的好友申请
func (r *FriendshipRepository) CancelRequest(senderID, receiverID uint) error {
	return r.deletePending(senderID, receiverID)
}

func (r *FriendshipRepository) deletePending(senderID, receiverID uint) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).
			Delete(&model.FriendRequest{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrRequestNotFound
		}
		return nil
	})
}

// RemoveFriend 删除好友关系（两个方向一起删）
func (r *FriendshipRepository) RemoveFriend(userID, friendID uint) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("user_id = ? AND friend_id = ?", userID, friendID).
			Delete(&model.Friendship{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return util.ErrNotFriends
		}
		return tx.Where("user_id = ? AND friend_id = ?", friendID, userID).
			Delete(&model.Friendship{}).Error
	})

	if err == nil {
		r.invalidateFriendCache(userID, friendID)
	}
	return err
}

// GetFriends 获取好友列表，按名称排序
func (r *FriendshipRepository) GetFriends(userID uint) ([]model.User, error) {
	var friends []model.User
	err := r.DB.
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ?", userID).
		Order("users.name ASC").
		Find(&friends).Error
	return friends, err
}

// GetPendingRequests 收到的待处理申请，最新在前
func (r *FriendshipRepository) GetPendingRequests(userID uint) ([]model.FriendRequest, error) {
	var reqs []model.FriendRequest
	err := r.DB.Preload("Sender").
		Where("receiver_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// GetSentRequests 发出的待处理申请，最新在前
func (r *FriendshipRepository) GetSentRequests(userID uint) ([]model.FriendRequest, error) {
	var reqs []model.FriendRequest
	err := r.DB.Preload("Receiver").
		Where("sender_id = ?", userID).
		Order("created_at DESC").
		Find(&reqs).Error
	return reqs, err
}

// GetStatus 计算一对用户当前的关系状态
func (r *FriendshipRepository) GetStatus(userID, otherID uint) (model.FriendshipStatus, error) {
	var count int64
	if err := r.DB.Model(&model.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, otherID).
		Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return model.StatusFriends, nil
	}

	if err := r.DB.Model(&model.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ?", userID, otherID).
		Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return model.StatusRequestSent, nil
	}

	if err := r.DB.Model(&model.FriendRequest{}).
		Where("sender_id = ? AND receiver_id = ?", otherID, userID).
		Count(&count).Error; err != nil {
		return "", err
	}
	if count > 0 {
		return model.StatusRequestReceived, nil
	}

	return model.StatusUnrelated, nil
}

// GetStats 好友数量、收到/发出的待处理申请数量
func (r *FriendshipRepository) GetStats(userID uint) (*FriendshipStats, error) {
	stats := &FriendshipStats{}

	if err := r.DB.Model(&model.Friendship{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalFriends).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.FriendRequest{}).
		Where("receiver_id = ?", userID).
		Count(&stats.PendingRequests).Error; err != nil {
		return nil, err
	}
	if err := r.DB.Model(&model.FriendRequest{}).
		Where("sender_id = ?", userID).
		Count(&stats.SentRequests).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

// SearchUsers 按名称/邮箱模糊搜索可添加的用户
// 排除自己、已是好友的用户以及任一方向存在待处理申请的用户
func (r *FriendshipRepository) SearchUsers(userID uint, term string, limit int) ([]model.User, error) {
	if limit <= 0 {
		limit = 20
	}
	pattern := "%" + strings.ToLower(term) + "%"

	friendIDs := r.DB.Model(&model.Friendship{}).Select("friend_id").Where("user_id = ?", userID)
	sentIDs := r.DB.Model(&model.FriendRequest{}).Select("receiver_id").Where("sender_id = ?", userID)
	receivedIDs := r.DB.Model(&model.FriendRequest{}).Select("sender_id").Where("receiver_id = ?", userID)

	var users []model.User
	err := r.DB.
		Where("(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)", pattern, pattern).
		Where("id <> ?", userID).
		Where("id NOT IN (?)", friendIDs).
		Where("id NOT IN (?)", sentIDs).
		Where("id NOT IN (?)", receivedIDs).
		Order("name ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

// GetFriendIDs 只获取好友的 ID 列表
func (r *FriendshipRepository) GetFriendIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.DB.Model(&model.Friendship{}).
		Where("user_id = ?", userID).
		Pluck("friend_id", &ids).Error
	return ids, err
}

// GetFriendIDsCached 获取好友 ID 列表 (带缓存)
func (r *FriendshipRepository) GetFriendIDsCached(userID uint) ([]uint, error) {
	if r.Redis == nil {
		return r.GetFriendIDs(userID)
	}

	key := friendCacheKey(userID)
	cached, err := r.Redis.SMembers(r.ctx, key).Result()
	if err == nil && len(cached) > 0 {
		var ids []uint
		for _, s := range cached {
			var id uint
			fmt.Sscanf(s, "%d", &id)
			if id > 0 {
				ids = append(ids, id)
			}
		}
		return ids, nil
	}

	// 缓存失效，回源数据库
	ids, err := r.GetFriendIDs(userID)
	if err == nil && len(ids) > 0 {
		pipe := r.Redis.Pipeline()
		for _, id := range ids {
			pipe.SAdd(r.ctx, key, id)
		}
		pipe.Expire(r.ctx, key, 24*time.Hour)
		pipe.Exec(r.ctx)
	} else if err == nil {
		// 防止缓存穿透
		r.Redis.SAdd(r.ctx, key, 0)
		r.Redis.Expire(r.ctx, key, 5*time.Minute)
	}
	return ids, err
}

func (r *FriendshipRepository) invalidateFriendCache(userIDs ...uint) {
	if r.Redis == nil {
		return
	}
	for _, id := range userIDs {
		r.Redis.Del(r.ctx, friendCacheKey(id))
	}
}

func friendCacheKey(userID uint) string {
	return fmt.Sprintf("social:relation:friends:%d", userID)
}
