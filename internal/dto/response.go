package dto

import (
	"time"

	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/service"
)

type EventResponse struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Category          models.Category `json:"category"`
	SelectionDeadline time.Time       `json:"selection_deadline"`
	EventAt           time.Time       `json:"event_at"`
	Organizer         string          `json:"organizer"`
	Winners           int64           `json:"winners"`
	WaitlistLimit     *int64          `json:"waitlist_limit,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// FormResponse is returned by the create-event form endpoint. Message is the
// text the organizer would see.
type FormResponse struct {
	Message string         `json:"message"`
	Event   *EventResponse `json:"event,omitempty"`
}

type PosterResponse struct {
	EventID     string `json:"event_id"`
	Key         string `json:"key"`
	Location    string `json:"location"`
	ContentType string `json:"content_type"`
	Size        int    `json:"size"`
}

type ErrorResponse struct {
	Message string `json:"message"`
}

func ToEventResponse(e *models.Event) EventResponse {
	return EventResponse{
		ID:                e.ID,
		Name:              e.Name,
		Description:       e.Description,
		Category:          e.Category,
		SelectionDeadline: e.SelectionDeadline,
		EventAt:           e.EventAt,
		Organizer:         e.Organizer,
		Winners:           e.Winners,
		WaitlistLimit:     e.WaitlistLimit,
		CreatedAt:         e.CreatedAt,
	}
}

func ToPosterResponse(p *service.Poster) PosterResponse {
	return PosterResponse{
		EventID:     p.EventID,
		Key:         p.Key,
		Location:    p.Location,
		ContentType: p.ContentType,
		Size:        p.Size,
	}
}
