package repositories

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"chirp/database"
	"chirp/models"
)

// Fresh sqlite database per test, migrated with the real schema.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

func createUser(t *testing.T, repo UserRepository, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Password: "x", Name: username + " Display", Gender: "other"}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	createUser(t, repo, "alice")

	err := repo.Create(&models.User{Username: "alice", Password: "y", Name: "Other", Gender: "female"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("Expected ErrUsernameTaken, got %v", err)
	}
}

func TestFollowEdgeUniqueness(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	alice := createUser(t, repo, "alice")
	bob := createUser(t, repo, "bob")

	if err := repo.Follow(bob.UserID, alice.UserID); err != nil {
		t.Fatalf("Follow failed: %v", err)
	}
	if err := repo.Follow(bob.UserID, alice.UserID); !errors.Is(err, ErrAlreadyFollowing) {
		t.Errorf("Expected ErrAlreadyFollowing, got %v", err)
	}

	following, err := repo.IsFollowing(bob.UserID, alice.UserID)
	if err != nil || !following {
		t.Errorf("Expected bob to follow alice, got following=%v err=%v", following, err)
	}
	reverse, err := repo.IsFollowing(alice.UserID, bob.UserID)
	if err != nil || reverse {
		t.Errorf("Follow edge must be directed, got following=%v err=%v", reverse, err)
	}
}

func TestUnfollowMissingEdge(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	alice := createUser(t, repo, "alice")
	bob := createUser(t, repo, "bob")

	if err := repo.Unfollow(bob.UserID, alice.UserID); !errors.Is(err, ErrNotFollowing) {
		t.Errorf("Expected ErrNotFollowing, got %v", err)
	}
}

func TestFollowingAndFollowerNames(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)

	alice := createUser(t, repo, "alice")
	bob := createUser(t, repo, "bob")
	carol := createUser(t, repo, "carol")

	if err := repo.Follow(bob.UserID, alice.UserID); err != nil {
		t.Fatal(err)
	}
	if err := repo.Follow(carol.UserID, alice.UserID); err != nil {
		t.Fatal(err)
	}

	followers, err := repo.FollowerNames(alice.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if len(followers) != 2 {
		t.Errorf("Expected 2 followers of alice, got %v", followers)
	}

	following, err := repo.FollowingNames(bob.UserID)
	if err != nil {
		t.Fatal(err)
	}
	if len(following) != 1 || following[0] != "alice Display" {
		t.Errorf("Expected bob to follow [alice Display], got %v", following)
	}
}

func TestFeedLimitAndOrdering(t *testing.T) {
	db := openTestDB(t)
	userRepo := NewUserRepository(db)
	tweetRepo := NewTweetRepository(db)

	alice := createUser(t, userRepo, "alice")
	bob := createUser(t, userRepo, "bob")
	eve := createUser(t, userRepo, "eve")

	if err := userRepo.Follow(bob.UserID, alice.UserID); err != nil {
		t.Fatal(err)
	}

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 6; i++ {
		tweet := &models.Tweet{UserID: alice.UserID, Tweet: "alice tweet", DateTime: base.Add(time.Duration(i) * time.Minute)}
		if err := tweetRepo.Create(tweet); err != nil {
			t.Fatal(err)
		}
	}
	// Not followed, must never show up in bob's feed.
	if err := tweetRepo.Create(&models.Tweet{UserID: eve.UserID, Tweet: "eve tweet", DateTime: base.Add(time.Hour)}); err != nil {
		t.Fatal(err)
	}

	feed, err := tweetRepo.Feed(bob.UserID, 4)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if len(feed) != 4 {
		t.Fatalf("Expected feed of 4 tweets, got %d", len(feed))
	}
	for i := 1; i < len(feed); i++ {
		if feed[i].DateTime.After(feed[i-1].DateTime) {
			t.Errorf("Feed not ordered newest-first at index %d", i)
		}
	}
	for _, tw := range feed {
		if tw.UserID != alice.UserID {
			t.Errorf("Feed contains tweet from unfollowed author %d", tw.UserID)
		}
		if tw.User.Username != "alice" {
			t.Errorf("Feed row missing preloaded author, got %q", tw.User.Username)
		}
	}
}

func TestFeedTimestampTieBreak(t *testing.T) {
	db := openTestDB(t)
	userRepo := NewUserRepository(db)
	tweetRepo := NewTweetRepository(db)

	alice := createUser(t, userRepo, "alice")
	bob := createUser(t, userRepo, "bob")
	if err := userRepo.Follow(bob.UserID, alice.UserID); err != nil {
		t.Fatal(err)
	}

	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	for _, text := range []string{"first", "second", "third"} {
		if err := tweetRepo.Create(&models.Tweet{UserID: alice.UserID, Tweet: text, DateTime: ts}); err != nil {
			t.Fatal(err)
		}
	}

	feed, err := tweetRepo.Feed(bob.UserID, 4)
	if err != nil {
		t.Fatal(err)
	}
	// Equal timestamps fall back to tweet id descending.
	want := []string{"third", "second", "first"}
	for i, text := range want {
		if feed[i].Tweet != text {
			t.Errorf("Expected feed[%d]=%q, got %q", i, text, feed[i].Tweet)
		}
	}
}

func TestDeleteTweetOwnership(t *testing.T) {
	db := openTestDB(t)
	userRepo := NewUserRepository(db)
	tweetRepo := NewTweetRepository(db)

	alice := createUser(t, userRepo, "alice")
	bob := createUser(t, userRepo, "bob")

	tweet := &models.Tweet{UserID: alice.UserID, Tweet: "mine", DateTime: time.Now()}
	if err := tweetRepo.Create(tweet); err != nil {
		t.Fatal(err)
	}

	if err := tweetRepo.Delete(bob.UserID, tweet.TweetID); !errors.Is(err, ErrNotOwner) {
		t.Errorf("Expected ErrNotOwner, got %v", err)
	}
	if _, err := tweetRepo.FindByID(tweet.TweetID); err != nil {
		t.Errorf("Tweet must survive a rejected delete, got %v", err)
	}

	if err := tweetRepo.Delete(alice.UserID, tweet.TweetID); err != nil {
		t.Errorf("Owner delete failed: %v", err)
	}
	if _, err := tweetRepo.FindByID(tweet.TweetID); !errors.Is(err, ErrTweetNotFound) {
		t.Errorf("Expected ErrTweetNotFound after delete, got %v", err)
	}

	if err := tweetRepo.Delete(alice.UserID, 9999); !errors.Is(err, ErrTweetNotFound) {
		t.Errorf("Expected ErrTweetNotFound for missing tweet, got %v", err)
	}
}

func TestDeleteTweetRemovesLikesAndReplies(t *testing.T) {
	db := openTestDB(t)
	userRepo := NewUserRepository(db)
	tweetRepo := NewTweetRepository(db)

	alice := createUser(t, userRepo, "alice")
	bob := createUser(t, userRepo, "bob")

	tweet := &models.Tweet{UserID: alice.UserID, Tweet: "hello", DateTime: time.Now()}
	if err := tweetRepo.Create(tweet); err != nil {
		t.Fatal(err)
	}
	if err := tweetRepo.Like(tweet.TweetID, bob.UserID); err != nil {
		t.Fatal(err)
	}
	if err := tweetRepo.Reply(&models.Reply{TweetID: tweet.TweetID, UserID: bob.UserID, Reply: "hi"}); err != nil {
		t.Fatal(err)
	}

	if err := tweetRepo.Delete(alice.UserID, tweet.TweetID); err != nil {
		t.Fatal(err)
	}

	likes, err := tweetRepo.LikeCount(tweet.TweetID)
	if err != nil || likes != 0 {
		t.Errorf("Expected 0 likes after delete, got %d (err %v)", likes, err)
	}
	replies, err := tweetRepo.ReplyCount(tweet.TweetID)
	if err != nil || replies != 0 {
		t.Errorf("Expected 0 replies after delete, got %d (err %v)", replies, err)
	}
}

func TestLikeUniqueness(t *testing.T) {
	db := openTestDB(t)
	userRepo := NewUserRepository(db)
	tweetRepo := NewTweetRepository(db)

	alice := createUser(t, userRepo, "alice")
	bob := createUser(t, userRepo, "bob")

	tweet := &models.Tweet{UserID: alice.UserID, Tweet: "hello", DateTime: time.Now()}
	if err := tweetRepo.Create(tweet); err != nil {
		t.Fatal(err)
	}

	if err := tweetRepo.Like(tweet.TweetID, bob.UserID); err != nil {
		t.Fatalf("Like failed: %v", err)
	}
	if err := tweetRepo.Like(tweet.TweetID, bob.UserID); !errors.Is(err, ErrAlreadyLiked) {
		t.Errorf("Expected ErrAlreadyLiked, got %v", err)
	}

	names, err := tweetRepo.LikerNames(tweet.TweetID)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 1 || names[0] != "bob" {
		t.Errorf("Expected likers [bob], got %v", names)
	}
}

func TestRepliesJoinDisplayName(t *testing.T) {
	db := openTestDB(t)
	userRepo := NewUserRepository(db)
	tweetRepo := NewTweetRepository(db)

	alice := createUser(t, userRepo, "alice")
	bob := createUser(t, userRepo, "bob")

	tweet := &models.Tweet{UserID: alice.UserID, Tweet: "hello", DateTime: time.Now()}
	if err := tweetRepo.Create(tweet); err != nil {
		t.Fatal(err)
	}
	if err := tweetRepo.Reply(&models.Reply{TweetID: tweet.TweetID, UserID: bob.UserID, Reply: "hi there"}); err != nil {
		t.Fatal(err)
	}

	rows, err := tweetRepo.Replies(tweet.TweetID)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 || rows[0].Name != "bob Display" || rows[0].Reply != "hi there" {
		t.Errorf("Unexpected replies: %+v", rows)
	}
}
