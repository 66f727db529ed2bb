package models

import "time"

// Post is a feed entry owned by exactly one author. ImageURL is the
// plain-URL attachment variant; uploads are resolved to a URL before
// the post is persisted.
type Post struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index"`
	Author    User      `json:"author" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Content   string    `json:"content" gorm:"type:text"`
	ImageURL  *string   `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
	UpdatedAt time.Time `json:"updated_at"`
}
