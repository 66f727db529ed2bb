package repositories

import (
	"time"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(post *models.Post) error
	GetPostByID(id uint) (*models.Post, error)
	GetPostForAuthor(id, authorID uint) (*models.Post, error)
	GetAllPosts() ([]models.Post, error)
	GetFeed(authorIDs []uint) ([]models.Post, error)
	UpdatePost(post *models.Post) error
	DeletePost(id uint) error
	CountPosts() (int64, error)
	DeletePostsOlderThan(cutoff time.Time) (int64, error)
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost creates a new post
func (r *PostgresPostRepository) CreatePost(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetPostByID retrieves a post with its author by ID
func (r *PostgresPostRepository) GetPostByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPostForAuthor retrieves a post filtered by id AND author. A missing
// row means the post either does not exist or belongs to someone else;
// callers deliberately cannot tell which.
func (r *PostgresPostRepository) GetPostForAuthor(id, authorID uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.Preload("Author").Where("id = ? AND user_id = ?", id, authorID).First(&post).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetAllPosts retrieves all posts, newest first
func (r *PostgresPostRepository) GetAllPosts() ([]models.Post, error) {
	var posts []models.Post
	if err := r.db.Preload("Author").Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// GetFeed retrieves posts authored by any of the given users, newest first
func (r *PostgresPostRepository) GetFeed(authorIDs []uint) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	var posts []models.Post
	if err := r.db.Preload("Author").Where("user_id IN ?", authorIDs).Order("created_at DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost updates an existing post
func (r *PostgresPostRepository) UpdatePost(post *models.Post) error {
	return r.db.Save(post).Error
}

// DeletePost deletes a post and all of its likes, comments and shares
// in one transaction
func (r *PostgresPostRepository) DeletePost(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&models.Share{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Post{}, id).Error
	})
}

// CountPosts returns the total number of posts
func (r *PostgresPostRepository) CountPosts() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// DeletePostsOlderThan removes posts created before the cutoff, cascading
// to their likes, comments and shares. Returns the number of posts removed.
func (r *PostgresPostRepository) DeletePostsOlderThan(cutoff time.Time) (int64, error) {
	var deleted int64
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var ids []uint
		if err := tx.Model(&models.Post{}).Where("created_at < ?", cutoff).Pluck("id", &ids).Error; err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}
		if err := tx.Where("post_id IN ?", ids).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN ?", ids).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN ?", ids).Delete(&models.Share{}).Error; err != nil {
			return err
		}
		res := tx.Where("id IN ?", ids).Delete(&models.Post{})
		deleted = res.RowsAffected
		return res.Error
	})
	return deleted, err
}
