package models

import "time"

// Comment represents a comment on a post
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Post      Post      `json:"post" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User      User      `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content   string    `json:"content" gorm:"type:text" validate:"required,min=1"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}
