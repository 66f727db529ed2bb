package repositories

import (
	"time"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(comment *models.Comment) error
	GetCommentsByPostID(postID uint) ([]models.Comment, error)
	GetCommentForAuthor(id, authorID uint) (*models.Comment, error)
	DeleteComment(id uint) error
	GetCommentsCountByPostID(postID uint) (int64, error)
	DeleteCommentsOlderThan(cutoff time.Time) (int64, error)
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

// GetCommentsByPostID retrieves all comments for a post, newest first
func (r *PostgresCommentRepository) GetCommentsByPostID(postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.Preload("User").Preload("Post").Preload("Post.Author").
		Where("post_id = ?", postID).Order("created_at DESC").Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

// GetCommentForAuthor retrieves a comment filtered by id AND author, so
// a missing row does not reveal whether the comment exists at all
func (r *PostgresCommentRepository) GetCommentForAuthor(id, authorID uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.Where("id = ? AND user_id = ?", id, authorID).First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// DeleteComment deletes a comment by ID
func (r *PostgresCommentRepository) DeleteComment(id uint) error {
	return r.db.Delete(&models.Comment{}, id).Error
}

// GetCommentsCountByPostID retrieves the count of comments for a post
func (r *PostgresCommentRepository) GetCommentsCountByPostID(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// DeleteCommentsOlderThan removes comments created before the cutoff and
// returns the number removed
func (r *PostgresCommentRepository) DeleteCommentsOlderThan(cutoff time.Time) (int64, error) {
	res := r.db.Where("created_at < ?", cutoff).Delete(&models.Comment{})
	return res.RowsAffected, res.Error
}
