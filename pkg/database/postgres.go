package database

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string, log *logrus.Entry) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.WithError(err).Fatal("failed to get sql.DB")
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)

	if err := db.AutoMigrate(&models.Event{}); err != nil {
		log.WithError(err).Fatal("failed to auto-migrate")
	}

	// Organizers list their own events by date.
	db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_events_organizer_event_at
		ON events (organizer, event_at)
	`)

	return db
}
