package model

import "time"

// Friendship 好友关系边，两个方向各存一行，始终在同一事务中成对写入
type Friendship struct {
	UserID    uint      `gorm:"primaryKey" json:"userId"`
	FriendID  uint      `gorm:"primaryKey" json:"friendId"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (Friendship) TableName() string {
	return "friendships"
}

// FriendRequest 待处理好友申请
// 行存在即表示待处理：接受/拒绝/取消都会删除该行，
// 因此"是好友则无待处理申请"这一不变量可以在单个事务中保证
type FriendRequest struct {
	UUIDBase
	SenderID   uint   `gorm:"uniqueIndex:idx_sender_receiver;not null" json:"senderId"`
	Sender     User   `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	ReceiverID uint   `gorm:"uniqueIndex:idx_sender_receiver;not null" json:"receiverId"`
	Receiver   User   `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
	Message    string `gorm:"size:255" json:"message"`
}

func (FriendRequest) TableName() string {
	return "friend_requests"
}

// FriendshipStatus 一对用户之间的关系状态
type FriendshipStatus string

const (
	StatusFriends         FriendshipStatus = "friends"
	StatusRequestSent     FriendshipStatus = "request_pending_sent"
	StatusRequestReceived FriendshipStatus = "request_pending_received"
	StatusUnrelated       FriendshipStatus = "unrelated"
)
