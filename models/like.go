package models

// Like marks a user liking a tweet, at most once per pair.
type Like struct {
	LikeID  uint `gorm:"primaryKey;column:like_id"`
	TweetID uint `gorm:"column:tweet_id;not null;uniqueIndex:idx_tweet_user_like"`
	UserID  uint `gorm:"column:user_id;not null;uniqueIndex:idx_tweet_user_like"`
}

// TableName overrides the table name used by GORM
func (Like) TableName() string {
	return "like"
}
