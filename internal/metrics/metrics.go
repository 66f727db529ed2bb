package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the counters incremented by the resolver layer
type Metrics struct {
	PostsCreated          prometheus.Counter
	PostsDeleted          prometheus.Counter
	LikesGiven            prometheus.Counter
	CommentsAdded         prometheus.Counter
	SharesCreated         prometheus.Counter
	FollowsCreated        prometheus.Counter
	Logins                prometheus.Counter
	NotificationsEnqueued *prometheus.CounterVec
}

// New creates and registers the counters against reg
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PostsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total number of posts created",
		}),
		PostsDeleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "posts_deleted_total",
			Help: "Total number of posts deleted by their authors",
		}),
		LikesGiven: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "likes_given_total",
			Help: "Total number of likes created",
		}),
		CommentsAdded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "comments_added_total",
			Help: "Total number of comments created",
		}),
		SharesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "shares_created_total",
			Help: "Total number of shares created",
		}),
		FollowsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "follows_created_total",
			Help: "Total number of follow edges created",
		}),
		Logins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total number of successful logins",
		}),
		NotificationsEnqueued: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "notifications_enqueued_total",
				Help: "Total number of notification tasks enqueued",
			},
			[]string{"kind"},
		),
	}

	reg.MustRegister(
		m.PostsCreated,
		m.PostsDeleted,
		m.LikesGiven,
		m.CommentsAdded,
		m.SharesCreated,
		m.FollowsCreated,
		m.Logins,
		m.NotificationsEnqueued,
	)
	return m
}
