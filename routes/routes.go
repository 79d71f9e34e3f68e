package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"chirp/handlers"
	"chirp/middleware"
	"chirp/monitoring"
)

// SetupRoutes initializes all the application routes
// The routing logic is isolated here
func SetupRoutes(userHandler *handlers.UserHandler, tweetHandler *handlers.TweetHandler, authMW *middleware.AuthMiddleware) http.Handler {
	router := mux.NewRouter()

	// Public routes
	router.HandleFunc("/register", userHandler.Register).Methods("POST")
	router.HandleFunc("/login", userHandler.Login).Methods("POST")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Everything below requires a bearer token
	protected := router.NewRoute().Subrouter()
	protected.Use(authMW.Authenticate)

	protected.HandleFunc("/user/tweets/feed", tweetHandler.Feed).Methods("GET")
	protected.HandleFunc("/user/following", userHandler.Following).Methods("GET")
	protected.HandleFunc("/user/following", userHandler.Follow).Methods("POST")
	protected.HandleFunc("/user/following/{username}", userHandler.Unfollow).Methods("DELETE")
	protected.HandleFunc("/user/followers", userHandler.Followers).Methods("GET")
	protected.HandleFunc("/user/tweets", tweetHandler.OwnTweets).Methods("GET")
	protected.HandleFunc("/user/tweets", tweetHandler.PostTweet).Methods("POST")

	protected.HandleFunc("/tweets/{id}", tweetHandler.Detail).Methods("GET")
	protected.HandleFunc("/tweets/{id}", tweetHandler.DeleteTweet).Methods("DELETE")
	protected.HandleFunc("/tweets/{id}/likes", tweetHandler.Likes).Methods("GET")
	protected.HandleFunc("/tweets/{id}/like", tweetHandler.Like).Methods("POST")
	protected.HandleFunc("/tweets/{id}/replies", tweetHandler.Replies).Methods("GET")
	protected.HandleFunc("/tweets/{id}/replies", tweetHandler.Reply).Methods("POST")

	return monitoring.InstrumentHandler(router)
}
