package models

import "time"

// Share represents a reshare of a post, with an optional message.
// Unlike likes there is no uniqueness constraint; the same user may
// share the same post any number of times.
type Share struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Post      Post      `json:"post" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User      User      `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Message   *string   `json:"message,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
