package models

import "time"

// Follow represents a directed follower -> following edge between users.
// The composite unique index guarantees at most one edge per ordered pair.
type Follow struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	FollowerID  uint      `json:"follower_id" gorm:"index;uniqueIndex:idx_follower_following"`
	FollowingID uint      `json:"following_id" gorm:"index;uniqueIndex:idx_follower_following"`
	Follower    User      `json:"follower" gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE"`
	Following   User      `json:"following" gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time `json:"created_at"`
}
