package repositories

import "errors"

// Sentinel errors returned by the repositories. Handlers translate these
// into HTTP statuses; nothing below this layer knows about HTTP.
var (
	ErrUsernameTaken    = errors.New("username already taken")
	ErrUserNotFound     = errors.New("user not found")
	ErrTweetNotFound    = errors.New("tweet not found")
	ErrNotOwner         = errors.New("caller does not own the tweet")
	ErrAlreadyFollowing = errors.New("follow edge already exists")
	ErrNotFollowing     = errors.New("follow edge does not exist")
	ErrAlreadyLiked     = errors.New("tweet already liked by user")
)
