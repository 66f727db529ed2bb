package graph

import (
	"errors"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/tasks"
	"github.com/graphql-go/graphql"
	"gorm.io/gorm"
)

func (r *Resolver) postQueries(ts *typeSet) graphql.Fields {
	return graphql.Fields{
		"posts": &graphql.Field{
			Type: graphql.NewList(ts.post),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.Posts.GetAllPosts()
			},
		},
		"post": &graphql.Field{
			Type: ts.post,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				id, _ := intArg(p, "id")
				post, err := r.Posts.GetPostByID(uint(id))
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, ErrPostNotFound
					}
					return nil, err
				}
				return post, nil
			},
		},
		"feed": &graphql.Field{
			Type: graphql.NewList(ts.post),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, ErrNotLoggedIn
				}
				followedIDs, err := r.Follows.GetFollowingIDs(user.ID)
				if err != nil {
					return nil, err
				}
				return r.Posts.GetFeed(followedIDs)
			},
		},
	}
}

func (r *Resolver) postMutations(ts *typeSet) graphql.Fields {
	return graphql.Fields{
		"createPost": &graphql.Field{
			Type: ts.post,
			Args: graphql.FieldConfigArgument{
				"content":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"imageUrl": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, errors.New("You must be logged in to create a post")
				}
				content, _ := stringArg(p, "content")

				post := &models.Post{UserID: user.ID, Content: content}
				if imageURL, ok := stringArg(p, "imageUrl"); ok {
					post.ImageURL = &imageURL
				}
				if err := r.Posts.CreatePost(post); err != nil {
					return nil, err
				}
				post.Author = *user

				r.Metrics.PostsCreated.Inc()
				r.dispatched("new_post", r.Dispatcher.DispatchNewPostFanout(tasks.NewPostFanoutPayload{
					PostID: post.ID,
				}))
				return post, nil
			},
		},
		"updatePost": &graphql.Field{
			Type: ts.post,
			Args: graphql.FieldConfigArgument{
				"id":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				"content":  &graphql.ArgumentConfig{Type: graphql.String},
				"imageUrl": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, ErrNotLoggedIn
				}
				id, _ := intArg(p, "id")

				post, err := r.Posts.GetPostForAuthor(uint(id), user.ID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, ErrPostNotAuthorized
					}
					return nil, err
				}

				if content, ok := stringArg(p, "content"); ok {
					post.Content = content
				}
				if imageURL, ok := stringArg(p, "imageUrl"); ok {
					post.ImageURL = &imageURL
				}
				if err := r.Posts.UpdatePost(post); err != nil {
					return nil, err
				}
				return post, nil
			},
		},
		"deletePost": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, ErrNotLoggedIn
				}
				id, _ := intArg(p, "id")

				post, err := r.Posts.GetPostForAuthor(uint(id), user.ID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, ErrPostNotAuthorized
					}
					return nil, err
				}

				if err := r.Posts.DeletePost(post.ID); err != nil {
					return nil, err
				}
				r.Metrics.PostsDeleted.Inc()
				return true, nil
			},
		},
	}
}
