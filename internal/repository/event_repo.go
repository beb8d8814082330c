package repository

import (
	"context"

	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
	"gorm.io/gorm"
)

type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id string) (*models.Event, error)
	// FindAll lists events by event time; a non-empty organizer filters to
	// that organizer's events.
	FindAll(ctx context.Context, organizer string) ([]models.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&event).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, organizer string) ([]models.Event, error) {
	var events []models.Event
	q := r.db.WithContext(ctx)
	if organizer != "" {
		q = q.Where("organizer = ?", organizer)
	}
	if err := q.Order("event_at ASC, id ASC").Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}
