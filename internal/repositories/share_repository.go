package repositories

import (
	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"gorm.io/gorm"
)

// ShareRepository defines the interface for share data operations
type ShareRepository interface {
	CreateShare(share *models.Share) error
	GetShares(postID *uint) ([]models.Share, error)
	GetSharesCountByPostID(postID uint) (int64, error)
	CountShares() (int64, error)
}

// PostgresShareRepository implements ShareRepository for PostgreSQL
type PostgresShareRepository struct {
	db *gorm.DB
}

// NewPostgresShareRepository creates a new PostgresShareRepository
func NewPostgresShareRepository(db *gorm.DB) *PostgresShareRepository {
	return &PostgresShareRepository{db: db}
}

// CreateShare creates a new share
func (r *PostgresShareRepository) CreateShare(share *models.Share) error {
	return r.db.Create(share).Error
}

// GetShares retrieves shares, optionally filtered by post
func (r *PostgresShareRepository) GetShares(postID *uint) ([]models.Share, error) {
	var shares []models.Share
	q := r.db.Preload("User").Preload("Post").Preload("Post.Author")
	if postID != nil {
		q = q.Where("post_id = ?", *postID)
	}
	if err := q.Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

// GetSharesCountByPostID retrieves the count of shares for a specific post
func (r *PostgresShareRepository) GetSharesCountByPostID(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Share{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountShares returns the total number of shares
func (r *PostgresShareRepository) CountShares() (int64, error) {
	var count int64
	err := r.db.Model(&models.Share{}).Count(&count).Error
	return count, err
}
