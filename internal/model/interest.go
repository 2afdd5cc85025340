package model

import "time"

// Interest 兴趣目录条目，名称全局唯一
type Interest struct {
	Name     string `gorm:"primaryKey;size:100" json:"name"`
	Category string `gorm:"size:100;index;not null" json:"category"`
	Emoji    string `gorm:"size:16" json:"emoji"`
}

func (Interest) TableName() string {
	return "interests"
}

// UserInterest 用户-兴趣关系，同一兴趣每人至多持有一次
type UserInterest struct {
	UserID       uint      `gorm:"primaryKey" json:"userId"`
	InterestName string    `gorm:"primaryKey;size:100" json:"interestName"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (UserInterest) TableName() string {
	return "user_interests"
}
