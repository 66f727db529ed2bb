package graph

import (
	"errors"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/tasks"
	"github.com/graphql-go/graphql"
	"gorm.io/gorm"
)

func optionalPostID(p graphql.ResolveParams) *uint {
	if id, ok := intArg(p, "postId"); ok {
		postID := uint(id)
		return &postID
	}
	return nil
}

func (r *Resolver) interactionQueries(ts *typeSet) graphql.Fields {
	return graphql.Fields{
		"likes": &graphql.Field{
			Type: graphql.NewList(ts.like),
			Args: graphql.FieldConfigArgument{
				"postId": &graphql.ArgumentConfig{Type: graphql.Int},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.Likes.GetLikes(optionalPostID(p))
			},
		},
		"comments": &graphql.Field{
			Type: graphql.NewList(ts.comment),
			Args: graphql.FieldConfigArgument{
				"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				postID, _ := intArg(p, "postId")
				return r.Comments.GetCommentsByPostID(uint(postID))
			},
		},
		"shares": &graphql.Field{
			Type: graphql.NewList(ts.share),
			Args: graphql.FieldConfigArgument{
				"postId": &graphql.ArgumentConfig{Type: graphql.Int},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.Shares.GetShares(optionalPostID(p))
			},
		},
	}
}

func (r *Resolver) interactionMutations(ts *typeSet) graphql.Fields {
	return graphql.Fields{
		"likePost": &graphql.Field{
			Type: ts.like,
			Args: graphql.FieldConfigArgument{
				"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, ErrNotLoggedIn
				}
				postID, _ := intArg(p, "postId")

				post, err := r.Posts.GetPostByID(uint(postID))
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, ErrPostNotFound
					}
					return nil, err
				}

				like, created, err := r.Likes.GetOrCreateLike(post.ID, user.ID)
				if err != nil {
					return nil, err
				}
				if !created {
					return nil, ErrAlreadyLiked
				}

				r.Metrics.LikesGiven.Inc()
				if post.Author.Email != "" {
					r.dispatched("like", r.Dispatcher.DispatchLikeNotification(tasks.LikeNotificationPayload{
						LikerUsername: user.Username,
						AuthorEmail:   post.Author.Email,
						PostExcerpt:   tasks.Excerpt(post.Content, tasks.PostExcerptLen),
					}))
				}

				like.User = *user
				like.Post = *post
				return like, nil
			},
		},
		"unlikePost": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"postId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, ErrNotLoggedIn
				}
				postID, _ := intArg(p, "postId")

				deleted, err := r.Likes.DeleteLike(uint(postID), user.ID)
				if err != nil {
					return nil, err
				}
				if !deleted {
					return nil, ErrNotLiked
				}
				return true, nil
			},
		},
		"addComment": &graphql.Field{
			Type: ts.comment,
			Args: graphql.FieldConfigArgument{
				"postId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				"content": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, ErrNotLoggedIn
				}
				postID, _ := intArg(p, "postId")
				content, _ := stringArg(p, "content")

				post, err := r.Posts.GetPostByID(uint(postID))
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, ErrPostNotFound
					}
					return nil, err
				}

				comment := &models.Comment{PostID: post.ID, UserID: user.ID, Content: content}
				if err := r.Comments.CreateComment(comment); err != nil {
					return nil, err
				}

				r.Metrics.CommentsAdded.Inc()
				if post.Author.Email != "" {
					r.dispatched("comment", r.Dispatcher.DispatchCommentNotification(tasks.CommentNotificationPayload{
						CommenterUsername: user.Username,
						AuthorEmail:       post.Author.Email,
						PostExcerpt:       tasks.Excerpt(post.Content, tasks.PostExcerptLen),
						CommentExcerpt:    tasks.Excerpt(content, tasks.CommentExcerptLen),
					}))
				}

				comment.User = *user
				comment.Post = *post
				return comment, nil
			},
		},
		"deleteComment": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"commentId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, ErrNotLoggedIn
				}
				commentID, _ := intArg(p, "commentId")

				comment, err := r.Comments.GetCommentForAuthor(uint(commentID), user.ID)
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, ErrCommentNotAuthorized
					}
					return nil, err
				}
				if err := r.Comments.DeleteComment(comment.ID); err != nil {
					return nil, err
				}
				return true, nil
			},
		},
		"sharePost": &graphql.Field{
			Type: ts.share,
			Args: graphql.FieldConfigArgument{
				"postId":  &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
				"message": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, ErrNotLoggedIn
				}
				postID, _ := intArg(p, "postId")

				post, err := r.Posts.GetPostByID(uint(postID))
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, ErrPostNotFound
					}
					return nil, err
				}

				share := &models.Share{PostID: post.ID, UserID: user.ID}
				if message, ok := stringArg(p, "message"); ok {
					share.Message = &message
				}
				if err := r.Shares.CreateShare(share); err != nil {
					return nil, err
				}

				r.Metrics.SharesCreated.Inc()
				if post.Author.Email != "" {
					r.dispatched("share", r.Dispatcher.DispatchShareNotification(tasks.ShareNotificationPayload{
						SharerUsername: user.Username,
						AuthorEmail:    post.Author.Email,
						PostExcerpt:    tasks.Excerpt(post.Content, tasks.PostExcerptLen),
					}))
				}

				share.User = *user
				share.Post = *post
				return share, nil
			},
		},
	}
}
