package tasks

import (
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// Dispatcher enqueues fire-and-forget notification jobs. Resolvers hold
// this interface rather than the broker client so tests can record
// dispatches without Redis.
type Dispatcher interface {
	DispatchLikeNotification(p LikeNotificationPayload) error
	DispatchCommentNotification(p CommentNotificationPayload) error
	DispatchShareNotification(p ShareNotificationPayload) error
	DispatchLoginNotification(p LoginNotificationPayload) error
	DispatchNewPostFanout(p NewPostFanoutPayload) error
}

// Client implements Dispatcher on top of an asynq broker connection
type Client struct {
	client *asynq.Client
	log    *logrus.Logger
}

// NewClient connects a Dispatcher to the Redis broker at addr
func NewClient(redisAddr string, log *logrus.Logger) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
		log:    log,
	}
}

// Close releases the broker connection
func (c *Client) Close() error {
	return c.client.Close()
}

func (c *Client) enqueue(task *asynq.Task, err error) error {
	if err != nil {
		return err
	}
	info, err := c.client.Enqueue(task)
	if err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{
		"task_id": info.ID,
		"type":    task.Type(),
		"queue":   info.Queue,
	}).Debug("Task enqueued")
	return nil
}

// DispatchLikeNotification enqueues the like notification mail job
func (c *Client) DispatchLikeNotification(p LikeNotificationPayload) error {
	return c.enqueue(NewLikeNotificationTask(p))
}

// DispatchCommentNotification enqueues the comment notification mail job
func (c *Client) DispatchCommentNotification(p CommentNotificationPayload) error {
	return c.enqueue(NewCommentNotificationTask(p))
}

// DispatchShareNotification enqueues the share notification mail job
func (c *Client) DispatchShareNotification(p ShareNotificationPayload) error {
	return c.enqueue(NewShareNotificationTask(p))
}

// DispatchLoginNotification enqueues the login notification mail job
func (c *Client) DispatchLoginNotification(p LoginNotificationPayload) error {
	return c.enqueue(NewLoginNotificationTask(p))
}

// DispatchNewPostFanout enqueues the follower fan-out job for a new post
func (c *Client) DispatchNewPostFanout(p NewPostFanoutPayload) error {
	return c.enqueue(NewPostFanoutTask(p))
}
