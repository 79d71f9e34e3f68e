package dto

// FeedItemDTO is one row of the home feed.
type FeedItemDTO struct {
	Username string `json:"username"`
	Tweet    string `json:"tweet"`
	DateTime string `json:"dateTime"`
}

// OwnTweetDTO is one of the caller's tweets with its engagement counts.
type OwnTweetDTO struct {
	Tweet    string `json:"tweet"`
	Likes    int64  `json:"likes"`
	Replies  int64  `json:"replies"`
	DateTime string `json:"dateTime"`
}

// TweetDetailDTO is the gated single-tweet view.
type TweetDetailDTO struct {
	Tweet    string `json:"tweet"`
	Likes    int64  `json:"likes"`
	Replies  int64  `json:"replies"`
	DateTime string `json:"dateTime"`
}

// ReplyDTO is a reply with its author's display name.
type ReplyDTO struct {
	Name  string `json:"name"`
	Reply string `json:"reply"`
}

// NameDTO wraps a display name for the following/followers lists.
type NameDTO struct {
	Name string `json:"name"`
}
