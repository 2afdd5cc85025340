package model

import "time"

type GroupRole string

const (
	RoleAdmin  GroupRole = "admin"
	RoleMember GroupRole = "member"
)

// Group 群组，创建者永远持有管理员成员关系
type Group struct {
	UUIDBase
	Name        string        `gorm:"size:100;not null" json:"name"`
	Description string        `gorm:"size:500" json:"description"`
	IsPrivate   bool          `gorm:"default:false" json:"isPrivate"`
	CreatorID   uint          `gorm:"index;not null" json:"creatorId"`
	Creator     User          `gorm:"foreignKey:CreatorID" json:"creator,omitempty"`
	Members     []GroupMember `gorm:"foreignKey:GroupID" json:"members,omitempty"`
}

func (Group) TableName() string {
	return "groups"
}

// GroupMember 群组成员关系，带角色和加入时间
type GroupMember struct {
	GroupID  string    `gorm:"primaryKey;type:varchar(36)" json:"groupId"`
	UserID   uint      `gorm:"primaryKey" json:"userId"`
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Role     GroupRole `gorm:"size:20;default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joinedAt"`
}

func (GroupMember) TableName() string {
	return "group_members"
}
