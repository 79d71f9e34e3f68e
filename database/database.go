package database

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"chirp/config"
	"chirp/models"
)

type DB struct {
	*gorm.DB
}

// New opens the configured database and migrates the schema. TranslateError
// is on so unique-constraint violations surface as gorm.ErrDuplicatedKey,
// which the repositories rely on for atomic conflict detection.
func New(cfg *config.Config) (*DB, error) {
	var (
		gormDB *gorm.DB
		err    error
	)

	gormCfg := &gorm.Config{TranslateError: true}

	if cfg.UsePostgres() {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName)
		logrus.WithField("host", cfg.DBHost).Info("Connecting to PostgreSQL database")
		gormDB, err = gorm.Open(postgres.Open(dsn), gormCfg)
	} else {
		logrus.WithField("path", cfg.SQLitePath).Info("Connecting to SQLite database")
		gormDB, err = gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(gormDB); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &DB{gormDB}, nil
}

// Migrate creates the schema, including the composite unique indexes that
// enforce one follow edge per pair and one like per user per tweet.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tweet{},
		&models.Like{},
		&models.Reply{},
	)
}
