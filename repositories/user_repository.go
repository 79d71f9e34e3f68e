package repositories

import (
	"errors"

	"gorm.io/gorm"

	"chirp/models"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user. Uniqueness of the username is enforced by the
// store constraint, so two concurrent registrations cannot both succeed.
func (r *userRepository) Create(user *models.User) error {
	err := r.db.Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrUsernameTaken
	}
	return err
}

func (r *userRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Follow(followerID, followingID uint) error {
	edge := models.Follow{FollowerUserID: followerID, FollowingUserID: followingID}
	err := r.db.Create(&edge).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyFollowing
	}
	return err
}

func (r *userRepository) Unfollow(followerID, followingID uint) error {
	res := r.db.Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFollowing
	}
	return nil
}

// IsFollowing is the visibility gate: a single existence lookup on the
// (follower, following) pair.
func (r *userRepository) IsFollowing(followerID, followingID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Follow{}).
		Where("follower_user_id = ? AND following_user_id = ?", followerID, followingID).
		Count(&count).Error
	return count > 0, err
}

func (r *userRepository) FollowingNames(userID uint) ([]string, error) {
	var names []string
	err := r.db.Table(`"user"`).
		Select(`"user".name`).
		Joins(`INNER JOIN follower ON follower.following_user_id = "user".user_id`).
		Where("follower.follower_user_id = ?", userID).
		Pluck("name", &names).Error
	return names, err
}

func (r *userRepository) FollowerNames(userID uint) ([]string, error) {
	var names []string
	err := r.db.Table(`"user"`).
		Select(`"user".name`).
		Joins(`INNER JOIN follower ON follower.follower_user_id = "user".user_id`).
		Where("follower.following_user_id = ?", userID).
		Pluck("name", &names).Error
	return names, err
}
