package graph

import (
	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"github.com/graphql-go/graphql"
)

// typeSet holds the GraphQL object types shared across resolver files
type typeSet struct {
	user    *graphql.Object
	post    *graphql.Object
	like    *graphql.Object
	comment *graphql.Object
	share   *graphql.Object
	follow  *graphql.Object

	loginPayload   *graphql.Object
	tokenPair      *graphql.Object
	tokenPayload   *graphql.Object
	refreshPayload *graphql.Object
}

func userSource(p graphql.ResolveParams) *models.User {
	switch u := p.Source.(type) {
	case *models.User:
		return u
	case models.User:
		return &u
	}
	return nil
}

func postSource(p graphql.ResolveParams) *models.Post {
	switch v := p.Source.(type) {
	case *models.Post:
		return v
	case models.Post:
		return &v
	}
	return nil
}

func likeSource(p graphql.ResolveParams) *models.Like {
	switch v := p.Source.(type) {
	case *models.Like:
		return v
	case models.Like:
		return &v
	}
	return nil
}

func commentSource(p graphql.ResolveParams) *models.Comment {
	switch v := p.Source.(type) {
	case *models.Comment:
		return v
	case models.Comment:
		return &v
	}
	return nil
}

func shareSource(p graphql.ResolveParams) *models.Share {
	switch v := p.Source.(type) {
	case *models.Share:
		return v
	case models.Share:
		return &v
	}
	return nil
}

// newTypes builds the object types. Count fields go back to the
// repositories so they always reflect current state.
func newTypes(r *Resolver) *typeSet {
	ts := &typeSet{}

	ts.user = graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(userSource(p).ID), nil
				},
			},
			"username": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userSource(p).Username, nil
				},
			},
			"email": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userSource(p).Email, nil
				},
			},
			"bio": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userSource(p).Bio, nil
				},
			},
			"avatarUrl": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return userSource(p).AvatarURL, nil
				},
			},
		},
	})

	ts.post = graphql.NewObject(graphql.ObjectConfig{
		Name: "Post",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(postSource(p).ID), nil
				},
			},
			"author": &graphql.Field{
				Type: ts.user,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postSource(p).Author, nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postSource(p).Content, nil
				},
			},
			"imageUrl": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if url := postSource(p).ImageURL; url != nil {
						return *url, nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return postSource(p).CreatedAt, nil
				},
			},
			"likeCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					count, err := r.Likes.GetLikesCountByPostID(postSource(p).ID)
					return int(count), err
				},
			},
			"commentCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					count, err := r.Comments.GetCommentsCountByPostID(postSource(p).ID)
					return int(count), err
				},
			},
			"shareCount": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					count, err := r.Shares.GetSharesCountByPostID(postSource(p).ID)
					return int(count), err
				},
			},
		},
	})

	ts.like = graphql.NewObject(graphql.ObjectConfig{
		Name: "Like",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(likeSource(p).ID), nil
				},
			},
			"user": &graphql.Field{
				Type: ts.user,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return likeSource(p).User, nil
				},
			},
			"post": &graphql.Field{
				Type: ts.post,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return likeSource(p).Post, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return likeSource(p).CreatedAt, nil
				},
			},
		},
	})

	ts.comment = graphql.NewObject(graphql.ObjectConfig{
		Name: "Comment",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(commentSource(p).ID), nil
				},
			},
			"user": &graphql.Field{
				Type: ts.user,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return commentSource(p).User, nil
				},
			},
			"post": &graphql.Field{
				Type: ts.post,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return commentSource(p).Post, nil
				},
			},
			"content": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return commentSource(p).Content, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return commentSource(p).CreatedAt, nil
				},
			},
		},
	})

	ts.share = graphql.NewObject(graphql.ObjectConfig{
		Name: "Share",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(shareSource(p).ID), nil
				},
			},
			"user": &graphql.Field{
				Type: ts.user,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return shareSource(p).User, nil
				},
			},
			"post": &graphql.Field{
				Type: ts.post,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return shareSource(p).Post, nil
				},
			},
			"message": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					if msg := shareSource(p).Message; msg != nil {
						return *msg, nil
					}
					return nil, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return shareSource(p).CreatedAt, nil
				},
			},
		},
	})

	ts.follow = graphql.NewObject(graphql.ObjectConfig{
		Name: "Follow",
		Fields: graphql.Fields{
			"id": &graphql.Field{
				Type: graphql.Int,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return int(p.Source.(*models.Follow).ID), nil
				},
			},
			"follower": &graphql.Field{
				Type: ts.user,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Follow).Follower, nil
				},
			},
			"following": &graphql.Field{
				Type: ts.user,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Follow).Following, nil
				},
			},
			"createdAt": &graphql.Field{
				Type: graphql.DateTime,
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return p.Source.(*models.Follow).CreatedAt, nil
				},
			},
		},
	})

	ts.loginPayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "LoginPayload",
		Fields: graphql.Fields{
			"user":         &graphql.Field{Type: ts.user},
			"token":        &graphql.Field{Type: graphql.String},
			"refreshToken": &graphql.Field{Type: graphql.String},
			"message":      &graphql.Field{Type: graphql.String},
		},
	})

	ts.tokenPair = graphql.NewObject(graphql.ObjectConfig{
		Name: "TokenPair",
		Fields: graphql.Fields{
			"token":        &graphql.Field{Type: graphql.String},
			"refreshToken": &graphql.Field{Type: graphql.String},
		},
	})

	ts.tokenPayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "TokenPayload",
		Fields: graphql.Fields{
			"userId":   &graphql.Field{Type: graphql.Int},
			"username": &graphql.Field{Type: graphql.String},
			"exp":      &graphql.Field{Type: graphql.DateTime},
		},
	})

	ts.refreshPayload = graphql.NewObject(graphql.ObjectConfig{
		Name: "RefreshPayload",
		Fields: graphql.Fields{
			"token": &graphql.Field{Type: graphql.String},
		},
	})

	return ts
}
