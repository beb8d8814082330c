package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/metrics"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/repository"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/storage"
	"github.com/yuvrajm34/logout-evently-rickyv/pkg/logging"
	"gorm.io/gorm"
)

const (
	RoutingEventCreated = "event.created"
	RoutingPosterStored = "poster.stored"

	DefaultPosterMaxBytes = 10 << 20
)

var (
	ErrEventNotFound  = errors.New("event not found")
	ErrInvalidEventID = errors.New("invalid event id")
	ErrInvalidPoster  = errors.New("poster must be an image")
	ErrPosterTooLarge = errors.New("poster is too large")
)

type Publisher interface {
	Publish(routingKey string, payload any) error
}

// Poster describes a stored poster object.
type Poster struct {
	EventID     string `json:"event_id"`
	Key         string `json:"key"`
	Location    string `json:"location"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type EventService interface {
	CreateEvent(ctx context.Context, event *models.Event) error
	GetEvent(ctx context.Context, id string) (*models.Event, error)
	ListEvents(ctx context.Context, organizer string) ([]models.Event, error)
	// StorePoster does not require the event to exist yet; the form uploads
	// the poster while the event itself is still being stored.
	StorePoster(ctx context.Context, eventID string, r io.Reader) (*Poster, error)
}

type Options struct {
	PosterMaxBytes int64
	Metrics        *metrics.Metrics
	Logger         *logrus.Entry
}

type eventService struct {
	repo      repository.EventRepository
	posters   storage.PosterStore
	publisher Publisher
	maxPoster int64
	metrics   *metrics.Metrics
	log       *logrus.Entry
}

func NewEventService(repo repository.EventRepository, posters storage.PosterStore, publisher Publisher, opts Options) EventService {
	if opts.PosterMaxBytes <= 0 {
		opts.PosterMaxBytes = DefaultPosterMaxBytes
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &eventService{
		repo:      repo,
		posters:   posters,
		publisher: publisher,
		maxPoster: opts.PosterMaxBytes,
		metrics:   opts.Metrics,
		log:       opts.Logger,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	} else if _, err := uuid.Parse(event.ID); err != nil {
		return ErrInvalidEventID
	}
	if event.Category == "" {
		event.Category = models.DefaultCategory
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	s.metrics.EventCreated()

	// Publish event.created so lottery and notification consumers can sync
	s.publish(RoutingEventCreated, event)

	return nil
}

func (s *eventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrInvalidEventID
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListEvents(ctx context.Context, organizer string) ([]models.Event, error) {
	return s.repo.FindAll(ctx, organizer)
}

func (s *eventService) StorePoster(ctx context.Context, eventID string, r io.Reader) (*Poster, error) {
	if _, err := uuid.Parse(eventID); err != nil {
		return nil, ErrInvalidEventID
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(r, s.maxPoster+1)); err != nil {
		s.metrics.PosterFailed()
		return nil, fmt.Errorf("read poster: %w", err)
	}
	if int64(buf.Len()) > s.maxPoster {
		s.metrics.PosterFailed()
		return nil, ErrPosterTooLarge
	}

	body := buf.Bytes()
	mt := mimetype.Detect(body)
	if !strings.HasPrefix(mt.String(), "image/") {
		s.metrics.PosterFailed()
		return nil, ErrInvalidPoster
	}

	key := storage.PosterKey(eventID)
	location, err := s.posters.Put(ctx, key, body, mt.String())
	if err != nil {
		s.metrics.PosterFailed()
		return nil, fmt.Errorf("store poster: %w", err)
	}
	s.metrics.PosterStored(len(body))

	poster := &Poster{
		EventID:     eventID,
		Key:         key,
		Location:    location,
		ContentType: mt.String(),
		Size:        len(body),
	}
	s.publish(RoutingPosterStored, poster)

	return poster, nil
}

// publish is best effort; the stored record is the source of truth.
func (s *eventService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(routingKey, payload); err != nil {
		s.log.WithError(err).WithField("routingKey", routingKey).Warn("failed to publish")
	}
}
