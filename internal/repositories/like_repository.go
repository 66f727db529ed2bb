package repositories

import (
	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations
type LikeRepository interface {
	GetOrCreateLike(postID, userID uint) (*models.Like, bool, error)
	DeleteLike(postID, userID uint) (bool, error)
	GetLikes(postID *uint) ([]models.Like, error)
	GetLikesCountByPostID(postID uint) (int64, error)
}

// PostgresLikeRepository implements LikeRepository for PostgreSQL
type PostgresLikeRepository struct {
	db *gorm.DB
}

// NewPostgresLikeRepository creates a new PostgresLikeRepository
func NewPostgresLikeRepository(db *gorm.DB) *PostgresLikeRepository {
	return &PostgresLikeRepository{db: db}
}

// GetOrCreateLike creates a (user, post) like if absent and reports
// whether it was created. A concurrent duplicate insert loses to the
// unique index and is reported as not created.
func (r *PostgresLikeRepository) GetOrCreateLike(postID, userID uint) (*models.Like, bool, error) {
	like := models.Like{PostID: postID, UserID: userID}
	res := r.db.Where(models.Like{PostID: postID, UserID: userID}).FirstOrCreate(&like)
	if res.Error != nil {
		var existing models.Like
		if lookupErr := r.db.Where("post_id = ? AND user_id = ?", postID, userID).
			First(&existing).Error; lookupErr == nil {
			return &existing, false, nil
		}
		return nil, false, res.Error
	}
	return &like, res.RowsAffected > 0, nil
}

// DeleteLike removes the caller's like for a post and reports whether
// one existed
func (r *PostgresLikeRepository) DeleteLike(postID, userID uint) (bool, error) {
	res := r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Like{})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// GetLikes retrieves likes, optionally filtered by post
func (r *PostgresLikeRepository) GetLikes(postID *uint) ([]models.Like, error) {
	var likes []models.Like
	q := r.db.Preload("User").Preload("Post").Preload("Post.Author")
	if postID != nil {
		q = q.Where("post_id = ?", *postID)
	}
	if err := q.Find(&likes).Error; err != nil {
		return nil, err
	}
	return likes, nil
}

// GetLikesCountByPostID retrieves the count of likes for a specific post
func (r *PostgresLikeRepository) GetLikesCountByPostID(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
