package repository

import (
	"errors"
	"post_place_backend/internal/model"
	"post_place_backend/internal/util"

	"gorm.io/gorm"
)

type InterestRepository struct {
	DB *gorm.DB
}

func NewInterestRepository(db *gorm.DB) *InterestRepository {
	return &InterestRepository{DB: db}
}

// InterestStats 用户兴趣统计
type InterestStats struct {
	TotalInterests  int64    `json:"totalInterests"`
	Categories      []string `json:"categories"`
	TotalCategories int      `json:"totalCategories"`
}

// Recommendation 基于共同兴趣的好友推荐
type Recommendation struct {
	UserID          uint     `json:"userId"`
	Name            string   `json:"name"`
	Email           string   `json:"email"`
	SharedInterests []string `json:"sharedInterests"`
	Score           int      `json:"score"`
}

// ListAll 全部兴趣目录，按分类、名称排序
func (r *InterestRepository) ListAll() ([]model.Interest, error) {
	var interests []model.Interest
	err := r.DB.Order("category ASC, name ASC").Find(&interests).Error
	return interests, err
}

// ListUser 用户持有的兴趣，按分类、名称排序
func (r *InterestRepository) ListUser(userID uint) ([]model.Interest, error) {
	var interests []model.Interest
	err := r.DB.
		Joins("JOIN user_interests ON user_interests.interest_name = interests.name").
		Where("user_interests.user_id = ?", userID).
		Order("interests.category ASC, interests.name ASC").
		Find(&interests).Error
	return interests, err
}

// Add 为用户添加兴趣：目录中必须存在且尚未持有，检查与写入同一事务
func (r *InterestRepository) Add(userID uint, interestName string) (*model.Interest, error) {
	var interest model.Interest

	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&interest, "name = ?", interestName).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrInterestNotFound
			}
			return err
		}

		var held int64
		if err := tx.Model(&model.UserInterest{}).
			Where("user_id = ? AND interest_name = ?", userID, interestName).
			Count(&held).Error; err != nil {
			return err
		}
		if held > 0 {
			return util.ErrInterestHeld
		}

		return tx.Create(&model.UserInterest{UserID: userID, InterestName: interestName}).Error
	})
	if err != nil {
		return nil, err
	}
	return &interest, nil
}

// Remove 移除用户兴趣，未持有时返回对应错误
func (r *InterestRepository) Remove(userID uint, interestName string) error {
	res := r.DB.Where("user_id = ? AND interest_name = ?", userID, interestName).
		Delete(&model.UserInterest{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.ErrInterestNotHeld
	}
	return nil
}

// Stats 兴趣数量和涉及的分类
func (r *InterestRepository) Stats(userID uint) (*InterestStats, error) {
	stats := &InterestStats{Categories: []string{}}

	if err := r.DB.Model(&model.UserInterest{}).
		Where("user_id = ?", userID).
		Count(&stats.TotalInterests).Error; err != nil {
		return nil, err
	}

	err := r.DB.Model(&model.Interest{}).
		Distinct("interests.category").
		Joins("JOIN user_interests ON user_interests.interest_name = interests.name").
		Where("user_interests.user_id = ?", userID).
		Order("interests.category ASC").
		Pluck("interests.category", &stats.Categories).Error
	if err != nil {
		return nil, err
	}

	stats.TotalCategories = len(stats.Categories)
	return stats, nil
}

// Recommend 按共同兴趣数量推荐用户
// 排除已是好友和任一方向存在待处理申请的用户；得分高在前，同分按名称排序
func (r *InterestRepository) Recommend(userID uint, limit int) ([]Recommendation, error) {
	if limit <= 0 {
		limit = 20
	}

	friendIDs := r.DB.Model(&model.Friendship{}).Select("friend_id").Where("user_id = ?", userID)
	sentIDs := r.DB.Model(&model.FriendRequest{}).Select("receiver_id").Where("sender_id = ?", userID)
	receivedIDs := r.DB.Model(&model.FriendRequest{}).Select("sender_id").Where("receiver_id = ?", userID)
	myInterests := r.DB.Model(&model.UserInterest{}).Select("interest_name").Where("user_id = ?", userID)

	var recs []Recommendation
	err := r.DB.Table("user_interests").
		Select("users.id AS user_id, users.name AS name, users.email AS email, COUNT(DISTINCT user_interests.interest_name) AS score").
		Joins("JOIN users ON users.id = user_interests.user_id").
		Where("user_interests.interest_name IN (?)", myInterests).
		Where("user_interests.user_id <> ?", userID).
		Where("user_interests.user_id NOT IN (?)", friendIDs).
		Where("user_interests.user_id NOT IN (?)", sentIDs).
		Where("user_interests.user_id NOT IN (?)", receivedIDs).
		Group("users.id, users.name, users.email").
		Order("score DESC, users.name ASC").
		Limit(limit).
		Scan(&recs).Error
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return []Recommendation{}, nil
	}

	candidateIDs := make([]uint, len(recs))
	for i, rec := range recs {
		candidateIDs[i] = rec.UserID
	}

	// 每个候选人与当前用户的共同兴趣名称
	type sharedRow struct {
		UserID       uint
		InterestName string
	}
	var rows []sharedRow
	err = r.DB.Model(&model.UserInterest{}).
		Select("user_id, interest_name").
		Where("user_id IN ?", candidateIDs).
		Where("interest_name IN (?)", myInterests).
		Order("interest_name ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	shared := make(map[uint][]string, len(recs))
	for _, row := range rows {
		shared[row.UserID] = append(shared[row.UserID], row.InterestName)
	}
	for i := range recs {
		recs[i].SharedInterests = shared[recs[i].UserID]
	}
	return recs, nil
}
