package main

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"chirp/auth"
	"chirp/config"
	"chirp/database"
	"chirp/handlers"
	"chirp/logger"
	"chirp/middleware"
	"chirp/repositories"
	"chirp/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	logger.InitLogger(cfg.LogLevel, cfg.LogstashAddr)

	db, err := database.New(cfg)
	if err != nil {
		logrus.Fatalf("Failed to initialize database: %v", err)
	}

	userRepo := repositories.NewUserRepository(db.DB)
	tweetRepo := repositories.NewTweetRepository(db.DB)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	authMW := middleware.NewAuthMiddleware(issuer, userRepo)

	userHandler := handlers.NewUserHandler(userRepo, issuer)
	tweetHandler := handlers.NewTweetHandler(tweetRepo, userRepo)

	router := routes.SetupRoutes(userHandler, tweetHandler, authMW)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	logrus.WithField("addr", cfg.Addr).Info("Server running")
	if err := server.ListenAndServe(); err != nil {
		logrus.Fatalf("Server stopped: %v", err)
	}
}
