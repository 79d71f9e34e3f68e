package models

// User represents a registered account. Password holds the bcrypt hash,
// never the raw password.
type User struct {
	UserID   uint   `gorm:"primaryKey;column:user_id"`
	Username string `gorm:"uniqueIndex;size:255;not null"`
	Password string `gorm:"not null"`
	Name     string
	Gender   string
}

// TableName overrides the table name used by GORM
func (User) TableName() string {
	return "user"
}
