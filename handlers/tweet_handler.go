package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"chirp/dto"
	"chirp/middleware"
	"chirp/models"
	"chirp/monitoring"
	"chirp/repositories"
)

const feedLimit = 4

// TweetHandler handles every tweet-centric endpoint, applying the
// follower-based visibility check where the route requires it.
type TweetHandler struct {
	tweetRepo repositories.TweetRepository
	userRepo  repositories.UserRepository
}

func NewTweetHandler(tweetRepo repositories.TweetRepository, userRepo repositories.UserRepository) *TweetHandler {
	return &TweetHandler{tweetRepo: tweetRepo, userRepo: userRepo}
}

// Feed returns the latest tweets from followed authors, newest first.
func (h *TweetHandler) Feed(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFromContext(r.Context())

	tweets, err := h.tweetRepo.Feed(caller.UserID, feedLimit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	response := make([]dto.FeedItemDTO, len(tweets))
	for i, t := range tweets {
		response[i] = dto.FeedItemDTO{
			Username: t.User.Username,
			Tweet:    t.Tweet,
			DateTime: t.DateTime.Format(dateTimeFormat),
		}
	}
	writeJSON(w, response)
}

// OwnTweets returns the caller's tweets with like and reply counts. Counts
// are computed at read time, there are no denormalized counters to drift.
func (h *TweetHandler) OwnTweets(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFromContext(r.Context())

	tweets, err := h.tweetRepo.ByUserID(caller.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	response := make([]dto.OwnTweetDTO, len(tweets))
	for i, t := range tweets {
		likes, err := h.tweetRepo.LikeCount(t.TweetID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Database error")
			return
		}
		replies, err := h.tweetRepo.ReplyCount(t.TweetID)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "Database error")
			return
		}
		response[i] = dto.OwnTweetDTO{
			Tweet:    t.Tweet,
			Likes:    likes,
			Replies:  replies,
			DateTime: t.DateTime.Format(dateTimeFormat),
		}
	}
	writeJSON(w, response)
}

func (h *TweetHandler) PostTweet(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFromContext(r.Context())

	var requestData struct {
		Tweet string `json:"tweet"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tweet := models.Tweet{
		UserID:   caller.UserID,
		Tweet:    requestData.Tweet,
		DateTime: time.Now(),
	}
	if err := h.tweetRepo.Create(&tweet); err != nil {
		logrus.WithError(err).Error("Failed to create tweet")
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	monitoring.TweetsPosted.Inc()
	writeMessage(w, "Created a Tweet")
}

// Detail returns the gated single-tweet view.
func (h *TweetHandler) Detail(w http.ResponseWriter, r *http.Request) {
	tweet, ok := h.visibleTweet(w, r)
	if !ok {
		return
	}

	likes, err := h.tweetRepo.LikeCount(tweet.TweetID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	replies, err := h.tweetRepo.ReplyCount(tweet.TweetID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	writeJSON(w, dto.TweetDetailDTO{
		Tweet:    tweet.Tweet,
		Likes:    likes,
		Replies:  replies,
		DateTime: tweet.DateTime.Format(dateTimeFormat),
	})
}

// Likes returns usernames of everyone who liked the tweet.
func (h *TweetHandler) Likes(w http.ResponseWriter, r *http.Request) {
	tweet, ok := h.visibleTweet(w, r)
	if !ok {
		return
	}

	names, err := h.tweetRepo.LikerNames(tweet.TweetID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if names == nil {
		names = []string{}
	}
	writeJSON(w, map[string][]string{"likes": names})
}

// Replies returns the tweet's replies with author display names.
func (h *TweetHandler) Replies(w http.ResponseWriter, r *http.Request) {
	tweet, ok := h.visibleTweet(w, r)
	if !ok {
		return
	}

	rows, err := h.tweetRepo.Replies(tweet.TweetID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}

	response := make([]dto.ReplyDTO, len(rows))
	for i, row := range rows {
		response[i] = dto.ReplyDTO{Name: row.Name, Reply: row.Reply}
	}
	writeJSON(w, map[string][]dto.ReplyDTO{"replies": response})
}

func (h *TweetHandler) Like(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFromContext(r.Context())

	tweet, ok := h.visibleTweet(w, r)
	if !ok {
		return
	}

	if err := h.tweetRepo.Like(tweet.TweetID, caller.UserID); err != nil {
		if errors.Is(err, repositories.ErrAlreadyLiked) {
			writeError(w, http.StatusConflict, "Tweet already liked")
			return
		}
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeMessage(w, "Tweet liked")
}

func (h *TweetHandler) Reply(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFromContext(r.Context())

	tweet, ok := h.visibleTweet(w, r)
	if !ok {
		return
	}

	var requestData struct {
		Reply string `json:"reply"`
	}
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	reply := models.Reply{
		TweetID: tweet.TweetID,
		UserID:  caller.UserID,
		Reply:   requestData.Reply,
	}
	if err := h.tweetRepo.Reply(&reply); err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return
	}
	writeMessage(w, "Reply created")
}

func (h *TweetHandler) DeleteTweet(w http.ResponseWriter, r *http.Request) {
	caller, _ := middleware.IdentityFromContext(r.Context())

	tweetID, ok := tweetIDFromRequest(w, r)
	if !ok {
		return
	}

	if err := h.tweetRepo.Delete(caller.UserID, tweetID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTweetNotFound):
			writeError(w, http.StatusNotFound, "Tweet not found")
		case errors.Is(err, repositories.ErrNotOwner):
			writeError(w, http.StatusUnauthorized, "Invalid Request")
		default:
			writeError(w, http.StatusInternalServerError, "Database error")
		}
		return
	}

	monitoring.TweetsDeleted.Inc()
	writeMessage(w, "Tweet Removed")
}

// visibleTweet loads the addressed tweet and applies the visibility gate:
// the caller must follow the tweet's owner. A missing tweet is NotFound
// before the gate is consulted. Owning the tweet grants no bypass.
func (h *TweetHandler) visibleTweet(w http.ResponseWriter, r *http.Request) (*models.Tweet, bool) {
	caller, _ := middleware.IdentityFromContext(r.Context())

	tweetID, ok := tweetIDFromRequest(w, r)
	if !ok {
		return nil, false
	}

	tweet, err := h.tweetRepo.FindByID(tweetID)
	if err != nil {
		if errors.Is(err, repositories.ErrTweetNotFound) {
			writeError(w, http.StatusNotFound, "Tweet not found")
		} else {
			writeError(w, http.StatusInternalServerError, "Database error")
		}
		return nil, false
	}

	follows, err := h.userRepo.IsFollowing(caller.UserID, tweet.UserID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Database error")
		return nil, false
	}
	if !follows {
		monitoring.VisibilityDenied.Inc()
		writeError(w, http.StatusUnauthorized, "Invalid Request")
		return nil, false
	}

	return tweet, true
}

func tweetIDFromRequest(w http.ResponseWriter, r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(mux.Vars(r)["id"], 10, 32)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid tweet ID")
		return 0, false
	}
	return uint(id), true
}
