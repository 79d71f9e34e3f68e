package repositories

import (
	"errors"

	"gorm.io/gorm"

	"chirp/models"
)

// ReplyRow is a reply joined with its author's display name.
type ReplyRow struct {
	Name  string
	Reply string
}

type tweetRepository struct {
	db *gorm.DB
}

func NewTweetRepository(db *gorm.DB) TweetRepository {
	return &tweetRepository{db: db}
}

func (r *tweetRepository) Create(tweet *models.Tweet) error {
	return r.db.Create(tweet).Error
}

func (r *tweetRepository) FindByID(tweetID uint) (*models.Tweet, error) {
	var tweet models.Tweet
	err := r.db.First(&tweet, tweetID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTweetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &tweet, nil
}

// Delete removes a tweet only when the caller owns it, along with its
// likes and replies.
func (r *tweetRepository) Delete(callerID, tweetID uint) error {
	tweet, err := r.FindByID(tweetID)
	if err != nil {
		return err
	}
	if tweet.UserID != callerID {
		return ErrNotOwner
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tweet_id = ?", tweetID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("tweet_id = ?", tweetID).Delete(&models.Reply{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Tweet{}, tweetID).Error
	})
}

// Feed returns tweets authored by anyone userID follows, newest first.
// Tweet ID descending breaks timestamp ties so the order is reproducible.
func (r *tweetRepository) Feed(userID uint, limit int) ([]models.Tweet, error) {
	following := r.db.Model(&models.Follow{}).
		Select("following_user_id").
		Where("follower_user_id = ?", userID)

	var tweets []models.Tweet
	err := r.db.Preload("User").
		Where("user_id IN (?)", following).
		Order("date_time DESC, tweet_id DESC").
		Limit(limit).
		Find(&tweets).Error
	return tweets, err
}

func (r *tweetRepository) ByUserID(userID uint) ([]models.Tweet, error) {
	var tweets []models.Tweet
	err := r.db.Where("user_id = ?", userID).
		Order("date_time DESC, tweet_id DESC").
		Find(&tweets).Error
	return tweets, err
}

func (r *tweetRepository) LikeCount(tweetID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Like{}).Where("tweet_id = ?", tweetID).Count(&count).Error
	return count, err
}

func (r *tweetRepository) ReplyCount(tweetID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Reply{}).Where("tweet_id = ?", tweetID).Count(&count).Error
	return count, err
}

func (r *tweetRepository) LikerNames(tweetID uint) ([]string, error) {
	var names []string
	err := r.db.Table(`"user"`).
		Select(`"user".username`).
		Joins(`INNER JOIN "like" ON "like".user_id = "user".user_id`).
		Where(`"like".tweet_id = ?`, tweetID).
		Pluck("username", &names).Error
	return names, err
}

func (r *tweetRepository) Replies(tweetID uint) ([]ReplyRow, error) {
	var rows []ReplyRow
	err := r.db.Table("reply").
		Select(`"user".name, reply.reply`).
		Joins(`INNER JOIN "user" ON "user".user_id = reply.user_id`).
		Where("reply.tweet_id = ?", tweetID).
		Order("reply.reply_id").
		Scan(&rows).Error
	return rows, err
}

func (r *tweetRepository) Like(tweetID, userID uint) error {
	like := models.Like{TweetID: tweetID, UserID: userID}
	err := r.db.Create(&like).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyLiked
	}
	return err
}

func (r *tweetRepository) Reply(reply *models.Reply) error {
	return r.db.Create(reply).Error
}
