package graph

import (
	"errors"
	"fmt"

	"github.com/OryemaStephen/alx-project-nexus-api/internal/models"
	"github.com/OryemaStephen/alx-project-nexus-api/internal/tasks"
	"github.com/graphql-go/graphql"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// authenticate resolves a username/password pair to a user. Unknown
// username and wrong password are indistinguishable to the caller.
func (r *Resolver) authenticate(username, password string) (*models.User, error) {
	user, err := r.Users.GetUserByUsername(username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (r *Resolver) userQueries(ts *typeSet) graphql.Fields {
	return graphql.Fields{
		"users": &graphql.Field{
			Type: graphql.NewList(ts.user),
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				return r.Users.GetAllUsers()
			},
		},
		"me": &graphql.Field{
			Type: ts.user,
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, errors.New("You must be logged in to view this information")
				}
				return user, nil
			},
		},
		"followers": &graphql.Field{
			Type: graphql.NewList(ts.user),
			Args: graphql.FieldConfigArgument{
				"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				userID, _ := intArg(p, "userId")
				return r.Follows.GetFollowers(uint(userID))
			},
		},
		"following": &graphql.Field{
			Type: graphql.NewList(ts.user),
			Args: graphql.FieldConfigArgument{
				"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				userID, _ := intArg(p, "userId")
				return r.Follows.GetFollowing(uint(userID))
			},
		},
	}
}

func (r *Resolver) userMutations(ts *typeSet) graphql.Fields {
	return graphql.Fields{
		"createUser": &graphql.Field{
			Type: ts.user,
			Args: graphql.FieldConfigArgument{
				"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"email":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				username, _ := stringArg(p, "username")
				email, _ := stringArg(p, "email")
				password, _ := stringArg(p, "password")

				hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
				if err != nil {
					return nil, errors.New("Failed to hash password")
				}

				user := &models.User{Username: username, Email: email, Password: string(hashed)}
				if err := r.Users.CreateUser(user); err != nil {
					return nil, err
				}
				return user, nil
			},
		},
		"updateProfile": &graphql.Field{
			Type: ts.user,
			Args: graphql.FieldConfigArgument{
				"bio":       &graphql.ArgumentConfig{Type: graphql.String},
				"avatarUrl": &graphql.ArgumentConfig{Type: graphql.String},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, ErrNotLoggedIn
				}
				if bio, ok := stringArg(p, "bio"); ok {
					user.Bio = bio
				}
				if avatarURL, ok := stringArg(p, "avatarUrl"); ok {
					user.AvatarURL = avatarURL
				}
				if err := r.Users.UpdateUser(user); err != nil {
					return nil, err
				}
				return user, nil
			},
		},
		"followUser": &graphql.Field{
			Type: ts.follow,
			Args: graphql.FieldConfigArgument{
				"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, ErrNotLoggedIn
				}
				userID, _ := intArg(p, "userId")
				if user.ID == uint(userID) {
					return nil, ErrSelfFollow
				}

				target, err := r.Users.GetUserByID(uint(userID))
				if err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return nil, ErrUserNotFound
					}
					return nil, err
				}

				follow, created, err := r.Follows.GetOrCreateFollow(user.ID, target.ID)
				if err != nil {
					return nil, err
				}
				if !created {
					return nil, ErrAlreadyFollowing
				}

				r.Metrics.FollowsCreated.Inc()
				follow.Follower = *user
				follow.Following = *target
				return follow, nil
			},
		},
		"unfollowUser": &graphql.Field{
			Type: graphql.Boolean,
			Args: graphql.FieldConfigArgument{
				"userId": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				user := CurrentUser(p.Context)
				if user == nil {
					return nil, ErrNotLoggedIn
				}
				userID, _ := intArg(p, "userId")

				deleted, err := r.Follows.DeleteFollow(user.ID, uint(userID))
				if err != nil {
					return nil, err
				}
				if !deleted {
					return nil, ErrNotFollowing
				}
				return true, nil
			},
		},
		"login": &graphql.Field{
			Type: ts.loginPayload,
			Args: graphql.FieldConfigArgument{
				"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				username, _ := stringArg(p, "username")
				password, _ := stringArg(p, "password")

				user, err := r.authenticate(username, password)
				if err != nil {
					return nil, err
				}

				access, refresh, err := r.Tokens.GeneratePair(user)
				if err != nil {
					return nil, err
				}

				if user.Email != "" {
					r.dispatched("login", r.Dispatcher.DispatchLoginNotification(tasks.LoginNotificationPayload{
						Username: user.Username,
						Email:    user.Email,
					}))
				}

				r.Metrics.Logins.Inc()
				return map[string]interface{}{
					"user":         user,
					"token":        access,
					"refreshToken": refresh,
					"message":      fmt.Sprintf("Welcome back, %s!", user.Username),
				}, nil
			},
		},
		"tokenAuth": &graphql.Field{
			Type: ts.tokenPair,
			Args: graphql.FieldConfigArgument{
				"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				username, _ := stringArg(p, "username")
				password, _ := stringArg(p, "password")

				user, err := r.authenticate(username, password)
				if err != nil {
					return nil, err
				}
				access, refresh, err := r.Tokens.GeneratePair(user)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{
					"token":        access,
					"refreshToken": refresh,
				}, nil
			},
		},
		"verifyToken": &graphql.Field{
			Type: ts.tokenPayload,
			Args: graphql.FieldConfigArgument{
				"token": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				token, _ := stringArg(p, "token")
				claims, err := r.Tokens.Verify(token)
				if err != nil {
					return nil, ErrInvalidToken
				}
				return map[string]interface{}{
					"userId":   int(claims.UserID),
					"username": claims.Username,
					"exp":      claims.ExpiresAt.Time,
				}, nil
			},
		},
		"refreshToken": &graphql.Field{
			Type: ts.refreshPayload,
			Args: graphql.FieldConfigArgument{
				"refreshToken": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
			},
			Resolve: func(p graphql.ResolveParams) (interface{}, error) {
				token, _ := stringArg(p, "refreshToken")
				claims, err := r.Tokens.VerifyRefresh(token)
				if err != nil {
					return nil, ErrInvalidRefreshToken
				}
				user, err := r.Users.GetUserByID(claims.UserID)
				if err != nil {
					return nil, ErrInvalidRefreshToken
				}
				access, err := r.Tokens.GenerateAccess(user)
				if err != nil {
					return nil, err
				}
				return map[string]interface{}{"token": access}, nil
			},
		},
	}
}
