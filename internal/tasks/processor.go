package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/repositories"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// Default maintenance windows
const (
	DefaultCommentMaxAgeDays = 30
	DefaultPostMaxAgeDays    = 365
)

// Processor executes tasks on the worker side. Mail transport failures
// are logged and swallowed; a failed send is never retried.
type Processor struct {
	mailer   Mailer
	posts    repositories.PostRepository
	comments repositories.CommentRepository
	shares   repositories.ShareRepository
	follows  repositories.FollowRepository
	log      *logrus.Logger
}

// NewProcessor creates a Processor with its collaborators
func NewProcessor(
	mailer Mailer,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	shares repositories.ShareRepository,
	follows repositories.FollowRepository,
	log *logrus.Logger,
) *Processor {
	return &Processor{
		mailer:   mailer,
		posts:    posts,
		comments: comments,
		shares:   shares,
		follows:  follows,
		log:      log,
	}
}

// Register attaches all task handlers to the mux
func (p *Processor) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(TypeLikeNotification, p.HandleLikeNotification)
	mux.HandleFunc(TypeCommentNotification, p.HandleCommentNotification)
	mux.HandleFunc(TypeShareNotification, p.HandleShareNotification)
	mux.HandleFunc(TypeLoginNotification, p.HandleLoginNotification)
	mux.HandleFunc(TypeNewPostFanout, p.HandleNewPostFanout)
	mux.HandleFunc(TypeCleanupComments, p.HandleCleanupComments)
	mux.HandleFunc(TypeCleanupPosts, p.HandleCleanupPosts)
	mux.HandleFunc(TypeLogMetrics, p.HandleLogMetrics)
	mux.HandleFunc(TypeAdd, p.HandleAdd)
}

func (p *Processor) sendMail(to, subject, body, taskType string) {
	if err := p.mailer.Send(to, subject, body); err != nil {
		p.log.WithError(err).WithFields(logrus.Fields{
			"type":      taskType,
			"recipient": to,
		}).Warn("Failed to send notification mail")
	}
}

// HandleLikeNotification mails the post author about a new like
func (p *Processor) HandleLikeNotification(ctx context.Context, t *asynq.Task) error {
	var payload LikeNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	body := fmt.Sprintf("%s liked your post:\n\n%q", payload.LikerUsername, payload.PostExcerpt)
	p.sendMail(payload.AuthorEmail, "New Like on Your Post", body, t.Type())
	return nil
}

// HandleCommentNotification mails the post author about a new comment
func (p *Processor) HandleCommentNotification(ctx context.Context, t *asynq.Task) error {
	var payload CommentNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	body := fmt.Sprintf("%s commented on your post:\n\nPost: %q\nComment: %q",
		payload.CommenterUsername, payload.PostExcerpt, payload.CommentExcerpt)
	p.sendMail(payload.AuthorEmail, "New Comment on Your Post", body, t.Type())
	return nil
}

// HandleShareNotification mails the post author about a new share
func (p *Processor) HandleShareNotification(ctx context.Context, t *asynq.Task) error {
	var payload ShareNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	body := fmt.Sprintf("%s shared your post:\n\n%q", payload.SharerUsername, payload.PostExcerpt)
	p.sendMail(payload.AuthorEmail, "Your Post Was Shared", body, t.Type())
	return nil
}

// HandleLoginNotification mails a user that a login just happened
func (p *Processor) HandleLoginNotification(ctx context.Context, t *asynq.Task) error {
	var payload LoginNotificationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	body := fmt.Sprintf("Hi %s, a new login to your account was just recorded.", payload.Username)
	p.sendMail(payload.Email, "New Login to Your Account", body, t.Type())
	return nil
}

// HandleNewPostFanout mails every follower of the post's author. The
// post may already be gone by the time the task runs; that is not an
// error worth retrying.
func (p *Processor) HandleNewPostFanout(ctx context.Context, t *asynq.Task) error {
	var payload NewPostFanoutPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}

	post, err := p.posts.GetPostByID(payload.PostID)
	if err != nil {
		p.log.WithField("post_id", payload.PostID).Info("Post gone before fan-out, skipping")
		return nil
	}

	followers, err := p.follows.GetFollowers(post.UserID)
	if err != nil {
		return fmt.Errorf("failed to resolve followers: %w", err)
	}

	subject := fmt.Sprintf("%s created a new post!", post.Author.Username)
	body := Excerpt(post.Content, CommentExcerptLen)
	for _, follower := range followers {
		if follower.Email == "" {
			continue
		}
		p.sendMail(follower.Email, subject, body, t.Type())
	}

	p.log.WithFields(logrus.Fields{
		"post_id":   post.ID,
		"followers": len(followers),
	}).Info("Notified followers of new post")
	return nil
}

// HandleCleanupComments deletes comments older than the configured window
func (p *Processor) HandleCleanupComments(ctx context.Context, t *asynq.Task) error {
	var payload CleanupPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
		}
	}
	days := payload.Days
	if days <= 0 {
		days = DefaultCommentMaxAgeDays
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	deleted, err := p.comments.DeleteCommentsOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete old comments: %w", err)
	}
	p.log.WithField("deleted", deleted).Info("Deleted old comments")
	return nil
}

// HandleCleanupPosts deletes posts (and their interactions) older than
// the configured window
func (p *Processor) HandleCleanupPosts(ctx context.Context, t *asynq.Task) error {
	var payload CleanupPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
		}
	}
	days := payload.Days
	if days <= 0 {
		days = DefaultPostMaxAgeDays
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	deleted, err := p.posts.DeletePostsOlderThan(cutoff)
	if err != nil {
		return fmt.Errorf("failed to delete old posts: %w", err)
	}
	p.log.WithField("deleted", deleted).Info("Deleted old posts")
	return nil
}

// HandleLogMetrics logs basic content totals
func (p *Processor) HandleLogMetrics(ctx context.Context, t *asynq.Task) error {
	totalPosts, err := p.posts.CountPosts()
	if err != nil {
		return fmt.Errorf("failed to count posts: %w", err)
	}
	totalShares, err := p.shares.CountShares()
	if err != nil {
		return fmt.Errorf("failed to count shares: %w", err)
	}
	p.log.WithFields(logrus.Fields{
		"total_posts":  totalPosts,
		"total_shares": totalShares,
	}).Info("Content metrics")
	return nil
}

// HandleAdd is a trivial smoke-check task whose result can be awaited
func (p *Processor) HandleAdd(ctx context.Context, t *asynq.Task) error {
	var payload AddPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("json.Unmarshal failed: %v: %w", err, asynq.SkipRetry)
	}
	sum := payload.X + payload.Y
	if _, err := t.ResultWriter().Write([]byte(strconv.Itoa(sum))); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}
