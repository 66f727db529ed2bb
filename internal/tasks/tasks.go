package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

// Task type names. Notification tasks are fire-and-forget mail jobs
// enqueued from resolvers; maintenance tasks are enqueued by the
// periodic scheduler.
const (
	TypeLikeNotification    = "notification:like"
	TypeCommentNotification = "notification:comment"
	TypeShareNotification   = "notification:share"
	TypeLoginNotification   = "notification:login"
	TypeNewPostFanout       = "post:notify_followers"
	TypeCleanupComments     = "maintenance:cleanup_comments"
	TypeCleanupPosts        = "maintenance:cleanup_posts"
	TypeLogMetrics          = "maintenance:log_metrics"
	TypeAdd                 = "debug:add"
)

// LikeNotificationPayload carries everything the like mail needs; the
// worker never re-reads post or user state.
type LikeNotificationPayload struct {
	LikerUsername string `json:"liker_username"`
	AuthorEmail   string `json:"author_email"`
	PostExcerpt   string `json:"post_excerpt"`
}

// CommentNotificationPayload carries the comment mail arguments
type CommentNotificationPayload struct {
	CommenterUsername string `json:"commenter_username"`
	AuthorEmail       string `json:"author_email"`
	PostExcerpt       string `json:"post_excerpt"`
	CommentExcerpt    string `json:"comment_excerpt"`
}

// ShareNotificationPayload carries the share mail arguments
type ShareNotificationPayload struct {
	SharerUsername string `json:"sharer_username"`
	AuthorEmail    string `json:"author_email"`
	PostExcerpt    string `json:"post_excerpt"`
}

// LoginNotificationPayload carries the login mail arguments
type LoginNotificationPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// NewPostFanoutPayload identifies a freshly created post whose author's
// followers should be notified. The worker resolves followers at run
// time; the post row is committed before the task is enqueued.
type NewPostFanoutPayload struct {
	PostID uint `json:"post_id"`
}

// CleanupPayload bounds a maintenance sweep; zero Days means the
// handler default.
type CleanupPayload struct {
	Days int `json:"days"`
}

// AddPayload is the smoke-check task payload
type AddPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewLikeNotificationTask builds the like notification task
func NewLikeNotificationTask(p LikeNotificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeLikeNotification, data), nil
}

// NewCommentNotificationTask builds the comment notification task
func NewCommentNotificationTask(p CommentNotificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCommentNotification, data), nil
}

// NewShareNotificationTask builds the share notification task
func NewShareNotificationTask(p ShareNotificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeShareNotification, data), nil
}

// NewLoginNotificationTask builds the login notification task
func NewLoginNotificationTask(p LoginNotificationPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeLoginNotification, data), nil
}

// NewPostFanoutTask builds the follower fan-out task for a new post
func NewPostFanoutTask(p NewPostFanoutPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeNewPostFanout, data), nil
}

// NewCleanupCommentsTask builds the stale-comment sweep task
func NewCleanupCommentsTask(days int) (*asynq.Task, error) {
	data, err := json.Marshal(CleanupPayload{Days: days})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCleanupComments, data), nil
}

// NewCleanupPostsTask builds the stale-post sweep task
func NewCleanupPostsTask(days int) (*asynq.Task, error) {
	data, err := json.Marshal(CleanupPayload{Days: days})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeCleanupPosts, data), nil
}

// NewLogMetricsTask builds the periodic metrics log task
func NewLogMetricsTask() *asynq.Task {
	return asynq.NewTask(TypeLogMetrics, nil)
}

// NewAddTask builds the worker smoke-check task
func NewAddTask(x, y int) (*asynq.Task, error) {
	data, err := json.Marshal(AddPayload{X: x, Y: y})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeAdd, data), nil
}
