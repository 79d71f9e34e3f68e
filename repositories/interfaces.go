package repositories

import "chirp/models"

type UserRepository interface {
	Create(user *models.User) error
	FindByUsername(username string) (*models.User, error)
	Follow(followerID, followingID uint) error
	Unfollow(followerID, followingID uint) error
	IsFollowing(followerID, followingID uint) (bool, error)
	FollowingNames(userID uint) ([]string, error)
	FollowerNames(userID uint) ([]string, error)
}

type TweetRepository interface {
	Create(tweet *models.Tweet) error
	FindByID(tweetID uint) (*models.Tweet, error)
	Delete(callerID, tweetID uint) error
	Feed(userID uint, limit int) ([]models.Tweet, error)
	ByUserID(userID uint) ([]models.Tweet, error)
	LikeCount(tweetID uint) (int64, error)
	ReplyCount(tweetID uint) (int64, error)
	LikerNames(tweetID uint) ([]string, error)
	Replies(tweetID uint) ([]ReplyRow, error)
	Like(tweetID, userID uint) error
	Reply(reply *models.Reply) error
}
