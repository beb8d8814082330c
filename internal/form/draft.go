package form

import (
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
)

// Draft is the organizer's input at the moment Create is pressed.
type Draft struct {
	Name          string
	Description   string
	Winners       string
	WaitlistLimit string

	SelectionDeadline *Date
	EventDate         *Date
	EventTime         *Clock
}

func reject(f Field, msg string) error {
	return &ValidationError{Field: f, Message: msg}
}

// Build validates d and converts it into a new event record. Checks run in a
// fixed order and the first failure is returned as a *ValidationError.
func (d Draft) Build(organizer string, category models.Category, loc *time.Location) (*models.Event, error) {
	name := strings.TrimSpace(d.Name)
	desc := strings.TrimSpace(d.Description)
	winnersStr := strings.TrimSpace(d.Winners)
	waitStr := strings.TrimSpace(d.WaitlistLimit)

	if name == "" {
		return nil, reject(FieldName, MsgNameRequired)
	}
	if winnersStr == "" {
		return nil, reject(FieldWinners, MsgWinnersRequired)
	}
	if d.SelectionDeadline == nil {
		return nil, reject(FieldSelectionDeadline, MsgDeadlineRequired)
	}
	if d.EventDate == nil || d.EventTime == nil {
		return nil, reject(FieldEventDate, MsgEventTimeRequired)
	}

	winners, err := strconv.ParseInt(winnersStr, 10, 64)
	if err != nil {
		return nil, reject(FieldWinners, MsgWinnersInteger)
	}

	var wait *int64
	if waitStr != "" {
		n, err := strconv.ParseInt(waitStr, 10, 64)
		if err != nil {
			return nil, reject(FieldWaitlistLimit, MsgWaitlistInteger)
		}
		wait = &n
	}

	if loc == nil {
		loc = time.Local
	}
	selectionAt := d.SelectionDeadline.StartOfDay(loc)
	eventAt := d.EventDate.At(*d.EventTime, loc)
	if !eventAt.After(selectionAt) {
		return nil, reject(FieldEventTime, MsgEventAfterDeadline)
	}

	if category == "" {
		category = models.DefaultCategory
	}

	return &models.Event{
		ID:                uuid.NewString(),
		Name:              name,
		Description:       desc,
		Category:          category,
		SelectionDeadline: selectionAt,
		EventAt:           eventAt,
		Organizer:         organizer,
		Winners:           winners,
		WaitlistLimit:     wait,
	}, nil
}
