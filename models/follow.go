package models

// Follow is a directed edge meaning "follower observes following's tweets".
// The composite unique index keeps one edge per pair.
type Follow struct {
	FollowEdgeID    uint `gorm:"primaryKey;column:follow_edge_id"`
	FollowerUserID  uint `gorm:"column:follower_user_id;not null;uniqueIndex:idx_follower_following"`
	FollowingUserID uint `gorm:"column:following_user_id;not null;uniqueIndex:idx_follower_following"`
}

// TableName overrides the table name used by GORM
func (Follow) TableName() string {
	return "follower"
}
