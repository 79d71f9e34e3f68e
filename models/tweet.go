package models

import "time"

// Tweet represents a posted tweet. DateTime is assigned from the server
// clock at insert time, never taken from the client.
type Tweet struct {
	TweetID  uint      `gorm:"primaryKey;column:tweet_id"`
	UserID   uint      `gorm:"column:user_id;not null;index"`
	Tweet    string    `gorm:"column:tweet;type:text;not null"`
	DateTime time.Time `gorm:"column:date_time;index"`
	User     User      `gorm:"foreignKey:UserID;references:UserID"`
}

// TableName overrides the table name used by GORM
func (Tweet) TableName() string {
	return "tweet"
}
