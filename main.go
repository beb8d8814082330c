package main

import (
	"strconv"

	"github.com/labstack/echo/v4"
	echoMw "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yuvrajm34/logout-evently-rickyv/config"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/eventsdb"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/handler"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/metrics"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/middleware"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/repository"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/service"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/storage"
	"github.com/yuvrajm34/logout-evently-rickyv/pkg/database"
	"github.com/yuvrajm34/logout-evently-rickyv/pkg/logging"
	"github.com/yuvrajm34/logout-evently-rickyv/pkg/rabbitmq"
)

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	log := logging.Component(logger, "main")

	loc, err := cfg.Location()
	if err != nil {
		log.WithError(err).Fatal("invalid EVENT_TIMEZONE")
	}
	category, err := models.ParseCategory(cfg.DefaultCategory)
	if err != nil {
		log.WithError(err).Fatalf("invalid DEFAULT_CATEGORY %q", cfg.DefaultCategory)
	}

	db := database.NewPostgresDB(cfg.DSN(), logging.Component(logger, "database"))

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitURL, logging.Component(logger, "rabbitmq"))
	if err != nil {
		log.WithError(err).Fatal("failed to connect to RabbitMQ")
	}
	defer publisher.Close()

	var posters storage.PosterStore
	if cfg.S3Bucket != "" {
		sess, err := storage.NewSession(cfg.AWSRegion, cfg.S3Endpoint)
		if err != nil {
			log.WithError(err).Fatal("failed to create AWS session")
		}
		posters = storage.NewS3PosterStoreFromSession(sess, cfg.S3Bucket)
		log.WithField("bucket", cfg.S3Bucket).Info("storing posters in S3")
	} else {
		posters = storage.NewMemoryPosterStore()
		log.Warn("S3_BUCKET not set, posters are kept in memory")
	}

	m := metrics.New(prometheus.DefaultRegisterer)

	repo := repository.NewEventRepository(db)
	svc := service.NewEventService(repo, posters, publisher, service.Options{
		PosterMaxBytes: cfg.PosterMaxBytes,
		Metrics:        m,
		Logger:         logging.Component(logger, "service"),
	})

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = middleware.ErrorHandler
	validator := middleware.NewRequestValidator()
	e.Validator = validator
	e.Use(middleware.RequestLogger(logging.Component(logger, "http")))
	e.Use(echoMw.Recover())
	e.Use(echoMw.BodyLimit(bodyLimit(cfg.PosterMaxBytes)))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok", "service": "event-service"})
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1", middleware.RequireOrganizer(validator))
	handler.NewEventHandler(svc).RegisterRoutes(api.Group("/events"))
	handler.NewFormHandler(eventsdb.New(svc), handler.FormOptions{
		Category: category,
		Location: loc,
		Metrics:  m,
		Logger:   logging.Component(logger, "form"),
	}).RegisterRoutes(api.Group("/organizer"))

	log.WithField("port", cfg.ServerPort).Info("Event Service starting")
	if err := e.Start(":" + cfg.ServerPort); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// bodyLimit leaves room for the multipart envelope around a maximum-size poster.
func bodyLimit(posterMax int64) string {
	kb := posterMax/1024 + 1024
	return strconv.FormatInt(kb, 10) + "K"
}
