package dto

import "time"

type CreateEventRequest struct {
	Name              string    `json:"name" validate:"required"`
	Description       string    `json:"description"`
	Category          string    `json:"category"`
	SelectionDeadline time.Time `json:"selection_deadline" validate:"required"`
	EventAt           time.Time `json:"event_at" validate:"required,gtfield=SelectionDeadline"`
	Winners           int64     `json:"winners" validate:"required,gt=0"`
	WaitlistLimit     *int64    `json:"waitlist_limit" validate:"omitempty,gte=0"`
}
