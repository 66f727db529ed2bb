package repositories

import (
	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	GetOrCreateFollow(followerID, followingID uint) (*models.Follow, bool, error)
	DeleteFollow(followerID, followingID uint) (bool, error)
	GetFollowers(userID uint) ([]models.User, error)
	GetFollowing(userID uint) ([]models.User, error)
	GetFollowingIDs(userID uint) ([]uint, error)
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

// GetOrCreateFollow creates the follow edge if absent and reports whether
// it was created. A concurrent duplicate insert loses to the unique index
// and is reported as not created.
func (r *PostgresFollowRepository) GetOrCreateFollow(followerID, followingID uint) (*models.Follow, bool, error) {
	follow := models.Follow{FollowerID: followerID, FollowingID: followingID}
	res := r.db.Where(models.Follow{FollowerID: followerID, FollowingID: followingID}).FirstOrCreate(&follow)
	if res.Error != nil {
		// Race loser on the unique constraint: the edge now exists.
		var existing models.Follow
		if lookupErr := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).
			First(&existing).Error; lookupErr == nil {
			return &existing, false, nil
		}
		return nil, false, res.Error
	}
	return &follow, res.RowsAffected > 0, nil
}

// DeleteFollow removes the edge and reports whether one existed
func (r *PostgresFollowRepository) DeleteFollow(followerID, followingID uint) (bool, error) {
	res := r.db.Where("follower_id = ? AND following_id = ?", followerID, followingID).Delete(&models.Follow{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetFollowers returns the users following userID
func (r *PostgresFollowRepository) GetFollowers(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("follower_id").Where("following_id = ?", userID),
	).Find(&users).Error
	return users, err
}

// GetFollowing returns the users userID follows
func (r *PostgresFollowRepository) GetFollowing(userID uint) ([]models.User, error) {
	var users []models.User
	err := r.db.Where("id IN (?)",
		r.db.Table("follows").Select("following_id").Where("follower_id = ?", userID),
	).Find(&users).Error
	return users, err
}

// GetFollowingIDs returns the IDs of users userID follows
func (r *PostgresFollowRepository) GetFollowingIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Follow{}).Where("follower_id = ?", userID).Pluck("following_id", &ids).Error
	return ids, err
}
