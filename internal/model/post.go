package model

// Post 用户发布的帖子，图片可选
type Post struct {
	UUIDBase
	UserID   uint      `gorm:"index;not null" json:"userId"`
	Author   User      `gorm:"foreignKey:UserID" json:"author,omitempty"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	ImageURL string    `gorm:"size:255" json:"imageUrl,omitempty"`
	Comments []Comment `gorm:"foreignKey:PostID" json:"comments"`
}

func (Post) TableName() string {
	return "posts"
}

// Comment 帖子评论，随帖子删除级联删除
type Comment struct {
	UUIDBase
	PostID  string `gorm:"index;type:varchar(36);not null" json:"postId"`
	UserID  uint   `gorm:"index;not null" json:"userId"`
	Author  User   `gorm:"foreignKey:UserID" json:"author,omitempty"`
	Content string `gorm:"type:text;not null" json:"content"`
}

func (Comment) TableName() string {
	return "comments"
}
