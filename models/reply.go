package models

// Reply is a flat response to a tweet. Replies do not nest and cannot
// themselves be liked.
type Reply struct {
	ReplyID uint   `gorm:"primaryKey;column:reply_id"`
	TweetID uint   `gorm:"column:tweet_id;not null;index"`
	UserID  uint   `gorm:"column:user_id;not null"`
	Reply   string `gorm:"column:reply;type:text;not null"`
}

// TableName overrides the table name used by GORM
func (Reply) TableName() string {
	return "reply"
}
