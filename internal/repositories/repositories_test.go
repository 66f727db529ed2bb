package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
		&models.Share{},
	))
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createPost(t *testing.T, db *gorm.DB, author *models.User, content string) *models.Post {
	t.Helper()
	post := &models.Post{UserID: author.ID, Content: content}
	require.NoError(t, db.Create(post).Error)
	return post
}

func TestGetOrCreateLikeIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresLikeRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice, "Hello world")

	like, created, err := repo.GetOrCreateLike(post.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, created)
	require.NotZero(t, like.ID)

	again, created, err := repo.GetOrCreateLike(post.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, created)
	require.Equal(t, like.ID, again.ID)

	var count int64
	require.NoError(t, db.Model(&models.Like{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestDeleteLikeReportsMissingRow(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresLikeRepository(db)

	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "Hello world")

	deleted, err := repo.DeleteLike(post.ID, alice.ID)
	require.NoError(t, err)
	require.False(t, deleted)

	_, _, err = repo.GetOrCreateLike(post.ID, alice.ID)
	require.NoError(t, err)
	deleted, err = repo.DeleteLike(post.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, deleted)
}

func TestDeletePostCascades(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostgresPostRepository(db)
	likes := NewPostgresLikeRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice, "Hello world")
	other := createPost(t, db, alice, "Another one")

	_, _, err := likes.GetOrCreateLike(post.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Comment{PostID: post.ID, UserID: bob.ID, Content: "nice"}).Error)
	require.NoError(t, db.Create(&models.Share{PostID: post.ID, UserID: bob.ID}).Error)
	_, _, err = likes.GetOrCreateLike(other.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, posts.DeletePost(post.ID))

	var likeCount, commentCount, shareCount int64
	require.NoError(t, db.Model(&models.Like{}).Where("post_id = ?", post.ID).Count(&likeCount).Error)
	require.NoError(t, db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&commentCount).Error)
	require.NoError(t, db.Model(&models.Share{}).Where("post_id = ?", post.ID).Count(&shareCount).Error)
	require.Zero(t, likeCount)
	require.Zero(t, commentCount)
	require.Zero(t, shareCount)

	// Interactions on other posts are untouched
	var remaining int64
	require.NoError(t, db.Model(&models.Like{}).Count(&remaining).Error)
	require.EqualValues(t, 1, remaining)
}

func TestGetPostForAuthorHidesForeignPosts(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice, "mine")

	_, err := repo.GetPostForAuthor(post.ID, bob.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.GetPostForAuthor(post.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, post.ID, found.ID)
	require.Equal(t, "alice", found.Author.Username)
}

func TestGetFeedOrdersNewestFirst(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostgresPostRepository(db)
	follows := NewPostgresFollowRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	_, _, err := follows.GetOrCreateFollow(alice.ID, bob.ID)
	require.NoError(t, err)

	now := time.Now()
	old := &models.Post{UserID: bob.ID, Content: "old", CreatedAt: now.Add(-2 * time.Hour)}
	recent := &models.Post{UserID: bob.ID, Content: "recent", CreatedAt: now}
	foreign := &models.Post{UserID: carol.ID, Content: "not followed", CreatedAt: now}
	require.NoError(t, db.Create(old).Error)
	require.NoError(t, db.Create(recent).Error)
	require.NoError(t, db.Create(foreign).Error)

	ids, err := follows.GetFollowingIDs(alice.ID)
	require.NoError(t, err)

	feed, err := posts.GetFeed(ids)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	require.Equal(t, "recent", feed[0].Content)
	require.Equal(t, "old", feed[1].Content)
}

func TestGetFeedEmptyWhenFollowingNobody(t *testing.T) {
	db := newTestDB(t)
	posts := NewPostgresPostRepository(db)

	alice := createUser(t, db, "alice")
	createPost(t, db, alice, "Hello world")

	feed, err := posts.GetFeed(nil)
	require.NoError(t, err)
	require.Empty(t, feed)
}

func TestFollowEdgeUniqueness(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresFollowRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, created, err := repo.GetOrCreateFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	require.True(t, created)

	_, created, err = repo.GetOrCreateFollow(alice.ID, bob.ID)
	require.NoError(t, err)
	require.False(t, created)

	// Reverse direction is a distinct edge
	_, created, err = repo.GetOrCreateFollow(bob.ID, alice.ID)
	require.NoError(t, err)
	require.True(t, created)

	followers, err := repo.GetFollowers(bob.ID)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	require.Equal(t, "alice", followers[0].Username)

	following, err := repo.GetFollowing(alice.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	require.Equal(t, "bob", following[0].Username)
}

func TestCommentsNewestFirstAndOwnershipFilter(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	post := createPost(t, db, alice, "Hello world")

	now := time.Now()
	first := &models.Comment{PostID: post.ID, UserID: bob.ID, Content: "first", CreatedAt: now.Add(-time.Minute)}
	second := &models.Comment{PostID: post.ID, UserID: bob.ID, Content: "second", CreatedAt: now}
	require.NoError(t, db.Create(first).Error)
	require.NoError(t, db.Create(second).Error)

	comments, err := repo.GetCommentsByPostID(post.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	require.Equal(t, "second", comments[0].Content)

	_, err = repo.GetCommentForAuthor(first.ID, alice.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	found, err := repo.GetCommentForAuthor(first.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, first.ID, found.ID)
}

func TestDeleteCommentsOlderThan(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresCommentRepository(db)

	alice := createUser(t, db, "alice")
	post := createPost(t, db, alice, "Hello world")

	now := time.Now()
	stale := &models.Comment{PostID: post.ID, UserID: alice.ID, Content: "stale", CreatedAt: now.AddDate(0, 0, -60)}
	fresh := &models.Comment{PostID: post.ID, UserID: alice.ID, Content: "fresh", CreatedAt: now}
	require.NoError(t, db.Create(stale).Error)
	require.NoError(t, db.Create(fresh).Error)

	deleted, err := repo.DeleteCommentsOlderThan(now.AddDate(0, 0, -30))
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	var remaining []models.Comment
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, "fresh", remaining[0].Content)
}

func TestDeletePostsOlderThanCascades(t *testing.T) {
	db := newTestDB(t)
	repo := NewPostgresPostRepository(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	now := time.Now()
	stale := &models.Post{UserID: alice.ID, Content: "stale", CreatedAt: now.AddDate(-2, 0, 0)}
	fresh := &models.Post{UserID: alice.ID, Content: "fresh", CreatedAt: now}
	require.NoError(t, db.Create(stale).Error)
	require.NoError(t, db.Create(fresh).Error)
	require.NoError(t, db.Create(&models.Like{PostID: stale.ID, UserID: bob.ID}).Error)

	deleted, err := repo.DeletePostsOlderThan(now.AddDate(-1, 0, 0))
	require.NoError(t, err)
	require.EqualValues(t, 1, deleted)

	var likeCount int64
	require.NoError(t, db.Model(&models.Like{}).Count(&likeCount).Error)
	require.Zero(t, likeCount)

	count, err := repo.CountPosts()
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}
