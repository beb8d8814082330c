// Package eventsdb adapts the event service to the create-event form's
// persistence collaborator.
package eventsdb

import (
	"context"
	"fmt"

	"github.com/yuvrajm34/logout-evently-rickyv/internal/form"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/service"
)

type EventsDB struct {
	svc service.EventService
}

var _ form.Persistence = (*EventsDB)(nil)

func New(svc service.EventService) *EventsDB {
	return &EventsDB{svc: svc}
}

func (db *EventsDB) StoreEvent(ctx context.Context, event *models.Event) error {
	return db.svc.CreateEvent(ctx, event)
}

func (db *EventsDB) StorePoster(ctx context.Context, eventID string, img form.Image) error {
	rc, err := img.Open()
	if err != nil {
		return fmt.Errorf("open poster %s: %w", img.Name(), err)
	}
	defer rc.Close()

	if _, err := db.svc.StorePoster(ctx, eventID, rc); err != nil {
		return err
	}
	return nil
}
