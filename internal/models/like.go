package models

import "time"

// Like represents a like on a post. The composite unique index allows
// at most one like per user per post; a concurrent duplicate attempt
// loses to the constraint rather than to application-level locking.
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_post_user_like"`
	Post      Post      `json:"post" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
	User      User      `json:"user" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `json:"created_at"`
}
