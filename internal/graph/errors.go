package graph

import "errors"

// Client-facing mutation/query errors. The "not found or not authorized"
// wording is deliberate: ownership-filtered lookups never reveal whether
// the entity exists at all.
var (
	ErrNotLoggedIn          = errors.New("You must be logged in")
	ErrUserNotFound         = errors.New("User not found")
	ErrPostNotFound         = errors.New("Post not found")
	ErrPostNotAuthorized    = errors.New("Post not found or not authorized")
	ErrCommentNotAuthorized = errors.New("Comment not found or not authorized")
	ErrAlreadyLiked         = errors.New("You already liked this post")
	ErrNotLiked             = errors.New("You haven't liked this post")
	ErrSelfFollow           = errors.New("You cannot follow yourself")
	ErrAlreadyFollowing     = errors.New("Already following this user")
	ErrNotFollowing         = errors.New("Not following this user")
	ErrInvalidCredentials   = errors.New("Invalid credentials")
	ErrInvalidToken         = errors.New("Invalid token")
	ErrInvalidRefreshToken  = errors.New("Invalid refresh token")
)
