package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/repositories"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type sentMail struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	sent []sentMail
	err  error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject, Body: body})
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTaskDB(t *testing.T) *gorm.DB {
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

func newTestProcessor(t *testing.T, db *gorm.DB, mailer *fakeMailer) *Processor {
	t.Helper()
	return NewProcessor(
		mailer,
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresShareRepository(db),
		repositories.NewPostgresFollowRepository(db),
		quietLogger(),
	)
}

func TestHandleLikeNotification(t *testing.T) {
	mailer := &fakeMailer{}
	p := newTestProcessor(t, newTaskDB(t), mailer)

	task, err := NewLikeNotificationTask(LikeNotificationPayload{
		LikerUsername: "bob",
		AuthorEmail:   "alice@example.com",
		PostExcerpt:   "Hello world",
	})
	require.NoError(t, err)

	require.NoError(t, p.HandleLikeNotification(context.Background(), task))
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "alice@example.com", mailer.sent[0].To)
	require.Equal(t, "New Like on Your Post", mailer.sent[0].Subject)
	require.Contains(t, mailer.sent[0].Body, "bob liked your post")
	require.Contains(t, mailer.sent[0].Body, "Hello world")
}

func TestHandleCommentNotification(t *testing.T) {
	mailer := &fakeMailer{}
	p := newTestProcessor(t, newTaskDB(t), mailer)

	task, err := NewCommentNotificationTask(CommentNotificationPayload{
		CommenterUsername: "bob",
		AuthorEmail:       "alice@example.com",
		PostExcerpt:       "Hello world",
		CommentExcerpt:    "Great post!",
	})
	require.NoError(t, err)

	require.NoError(t, p.HandleCommentNotification(context.Background(), task))
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "New Comment on Your Post", mailer.sent[0].Subject)
	require.Contains(t, mailer.sent[0].Body, "Great post!")
}

func TestMailFailureIsSwallowed(t *testing.T) {
	mailer := &fakeMailer{err: errors.New("smtp down")}
	p := newTestProcessor(t, newTaskDB(t), mailer)

	task, err := NewShareNotificationTask(ShareNotificationPayload{
		SharerUsername: "bob",
		AuthorEmail:    "alice@example.com",
		PostExcerpt:    "Hello world",
	})
	require.NoError(t, err)

	// The handler must not surface mail transport errors; a retry
	// would just send duplicate mail later.
	require.NoError(t, p.HandleShareNotification(context.Background(), task))
	require.Empty(t, mailer.sent)
}

func TestMalformedPayloadSkipsRetry(t *testing.T) {
	p := newTestProcessor(t, newTaskDB(t), &fakeMailer{})

	task := asynq.NewTask(TypeLikeNotification, []byte("{not json"))
	err := p.HandleLikeNotification(context.Background(), task)
	require.Error(t, err)
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleNewPostFanout(t *testing.T) {
	db := newTaskDB(t)
	mailer := &fakeMailer{}
	p := newTestProcessor(t, db, mailer)

	alice := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	bob := &models.User{Username: "bob", Email: "bob@example.com", Password: "x"}
	carol := &models.User{Username: "carol", Email: "", Password: "x"}
	require.NoError(t, db.Create(alice).Error)
	require.NoError(t, db.Create(bob).Error)
	require.NoError(t, db.Create(carol).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: bob.ID, FollowingID: alice.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: carol.ID, FollowingID: alice.ID}).Error)

	post := &models.Post{UserID: alice.ID, Content: "Hello world"}
	require.NoError(t, db.Create(post).Error)

	task, err := NewPostFanoutTask(NewPostFanoutPayload{PostID: post.ID})
	require.NoError(t, err)
	require.NoError(t, p.HandleNewPostFanout(context.Background(), task))

	// Only the follower with an email address is mailed
	require.Len(t, mailer.sent, 1)
	require.Equal(t, "bob@example.com", mailer.sent[0].To)
	require.Equal(t, "alice created a new post!", mailer.sent[0].Subject)
	require.Equal(t, "Hello world", mailer.sent[0].Body)
}

func TestHandleNewPostFanoutSkipsMissingPost(t *testing.T) {
	mailer := &fakeMailer{}
	p := newTestProcessor(t, newTaskDB(t), mailer)

	task, err := NewPostFanoutTask(NewPostFanoutPayload{PostID: 999})
	require.NoError(t, err)
	require.NoError(t, p.HandleNewPostFanout(context.Background(), task))
	require.Empty(t, mailer.sent)
}

func TestHandleCleanupComments(t *testing.T) {
	db := newTaskDB(t)
	p := newTestProcessor(t, db, &fakeMailer{})

	alice := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(alice).Error)
	post := &models.Post{UserID: alice.ID, Content: "Hello world"}
	require.NoError(t, db.Create(post).Error)

	now := time.Now()
	stale := &models.Comment{PostID: post.ID, UserID: alice.ID, Content: "stale", CreatedAt: now.AddDate(0, 0, -40)}
	fresh := &models.Comment{PostID: post.ID, UserID: alice.ID, Content: "fresh", CreatedAt: now}
	require.NoError(t, db.Create(stale).Error)
	require.NoError(t, db.Create(fresh).Error)

	task, err := NewCleanupCommentsTask(0)
	require.NoError(t, err)
	require.NoError(t, p.HandleCleanupComments(context.Background(), task))

	var remaining []models.Comment
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, "fresh", remaining[0].Content)
}

func TestHandleCleanupPosts(t *testing.T) {
	db := newTaskDB(t)
	p := newTestProcessor(t, db, &fakeMailer{})

	alice := &models.User{Username: "alice", Email: "alice@example.com", Password: "x"}
	require.NoError(t, db.Create(alice).Error)

	now := time.Now()
	stale := &models.Post{UserID: alice.ID, Content: "stale", CreatedAt: now.AddDate(-2, 0, 0)}
	fresh := &models.Post{UserID: alice.ID, Content: "fresh", CreatedAt: now}
	require.NoError(t, db.Create(stale).Error)
	require.NoError(t, db.Create(fresh).Error)

	task, err := NewCleanupPostsTask(0)
	require.NoError(t, err)
	require.NoError(t, p.HandleCleanupPosts(context.Background(), task))

	var remaining []models.Post
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	require.Equal(t, "fresh", remaining[0].Content)
}

func TestHandleLogMetrics(t *testing.T) {
	p := newTestProcessor(t, newTaskDB(t), &fakeMailer{})
	require.NoError(t, p.HandleLogMetrics(context.Background(), NewLogMetricsTask()))
}
