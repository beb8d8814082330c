package models

import "time"

// Event is an organizer-owned lottery event. ID is assigned by the client
// before storage so the poster can be uploaded under it in parallel.
type Event struct {
	ID                string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name              string    `gorm:"not null" json:"name"`
	Description       string    `gorm:"not null;default:''" json:"description"`
	Category          Category  `gorm:"type:varchar(32);not null" json:"category"`
	SelectionDeadline time.Time `gorm:"not null" json:"selection_deadline"`
	EventAt           time.Time `gorm:"not null" json:"event_at"`
	Organizer         string    `gorm:"not null;index" json:"organizer"`
	Winners           int64     `gorm:"not null" json:"winners"`
	WaitlistLimit     *int64    `json:"waitlist_limit,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
