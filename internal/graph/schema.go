package graph

import (
	"github.com/OryemaStephen/alx-project-nexus-api/internal/auth"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/metrics"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/repositories"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/tasks"
	"github.com/graphql-go/graphql"
	"github.com/sirupsen/logrus"
)

// Resolver carries the collaborators every query and mutation needs.
// The dispatcher is an explicitly constructed value, not process-global
// state, so tests can swap in a recorder.
type Resolver struct {
	Users    repositories.UserRepository
	Follows  repositories.FollowRepository
	Posts    repositories.PostRepository
	Likes    repositories.LikeRepository
	Comments repositories.CommentRepository
	Shares   repositories.ShareRepository

	Tokens     *auth.Manager
	Dispatcher tasks.Dispatcher
	Metrics    *metrics.Metrics
	Log        *logrus.Logger
}

// NewSchema composes the per-domain query and mutation fields into the
// single API surface
func NewSchema(r *Resolver) (graphql.Schema, error) {
	ts := newTypes(r)

	queryFields := graphql.Fields{}
	mutationFields := graphql.Fields{}

	merge(queryFields, r.userQueries(ts))
	merge(queryFields, r.postQueries(ts))
	merge(queryFields, r.interactionQueries(ts))

	merge(mutationFields, r.userMutations(ts))
	merge(mutationFields, r.postMutations(ts))
	merge(mutationFields, r.interactionMutations(ts))

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    graphql.NewObject(graphql.ObjectConfig{Name: "Query", Fields: queryFields}),
		Mutation: graphql.NewObject(graphql.ObjectConfig{Name: "Mutation", Fields: mutationFields}),
	})
}

func merge(dst, src graphql.Fields) {
	for name, field := range src {
		dst[name] = field
	}
}

// dispatched logs a failed enqueue and counts a successful one. A
// broken broker never fails the triggering mutation.
func (r *Resolver) dispatched(kind string, err error) {
	if err != nil {
		r.Log.WithError(err).WithField("kind", kind).Warn("Failed to enqueue notification task")
		return
	}
	r.Metrics.NotificationsEnqueued.WithLabelValues(kind).Inc()
}

func intArg(p graphql.ResolveParams, name string) (int, bool) {
	v, ok := p.Args[name].(int)
	return v, ok
}

func stringArg(p graphql.ResolveParams, name string) (string, bool) {
	v, ok := p.Args[name].(string)
	return v, ok
}
