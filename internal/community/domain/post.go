package domain

import "time"

// Post 球迷社群貼文
type Post struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	AuthorID   string `gorm:"index" json:"authorId"`
	AuthorName string `json:"authorName"`
	TeamTag    string `gorm:"index" json:"teamTag"`
	Content    string `json:"content"`
	MediaURL   string `json:"mediaUrl"`
	LikeCount  int64  `gorm:"-" json:"likeCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// Comment 貼文留言
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	PostID     uint      `gorm:"index" json:"postId"`
	AuthorID   string    `json:"authorId"`
	AuthorName string    `json:"authorName"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Like 按讚記錄，同一人對同一貼文只會有一筆
type Like struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	PostID uint   `gorm:"index:idx_like_post_fan,unique" json:"postId"`
	FanID  string `gorm:"index:idx_like_post_fan,unique" json:"fanId"`
}
