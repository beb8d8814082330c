package form

import (
	"context"
	"io"

	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
)

// Field identifies one input on the create-event screen.
type Field int

const (
	FieldName Field = iota
	FieldDescription
	FieldWinners
	FieldWaitlistLimit
	FieldSelectionDeadline
	FieldEventDate
	FieldEventTime
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return "name"
	case FieldDescription:
		return "description"
	case FieldWinners:
		return "winners"
	case FieldWaitlistLimit:
		return "waitlist_limit"
	case FieldSelectionDeadline:
		return "selection_deadline"
	case FieldEventDate:
		return "event_date"
	case FieldEventTime:
		return "event_time"
	default:
		return "unknown"
	}
}

// View is the rendering surface the form reads input from and writes to.
type View interface {
	Text(f Field) string
	SetText(f Field, s string)
	SetSubmitEnabled(enabled bool)
	ShowPoster(img Image)
	Toast(msg string)
}

// Image is a locally selected poster.
type Image interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// DatePicker returns nil when the organizer dismisses the picker.
type DatePicker interface {
	PickDate(ctx context.Context, title string, preset *Date) (*Date, error)
}

// TimePicker shows a 24-hour clock and returns nil on dismissal.
type TimePicker interface {
	PickTime(ctx context.Context, preset *Clock) (*Clock, error)
}

// ImagePicker returns nil when nothing was picked.
type ImagePicker interface {
	PickImage(ctx context.Context) (Image, error)
}

type Auth interface {
	CurrentOrganizer() string
}

// Persistence stores the event and its poster. StorePoster may run before
// StoreEvent has finished.
type Persistence interface {
	StoreEvent(ctx context.Context, event *models.Event) error
	StorePoster(ctx context.Context, eventID string, img Image) error
}

type Navigator interface {
	NavigateBack()
}

type DatePickerFunc func(ctx context.Context, title string, preset *Date) (*Date, error)

func (fn DatePickerFunc) PickDate(ctx context.Context, title string, preset *Date) (*Date, error) {
	return fn(ctx, title, preset)
}

type TimePickerFunc func(ctx context.Context, preset *Clock) (*Clock, error)

func (fn TimePickerFunc) PickTime(ctx context.Context, preset *Clock) (*Clock, error) {
	return fn(ctx, preset)
}

type ImagePickerFunc func(ctx context.Context) (Image, error)

func (fn ImagePickerFunc) PickImage(ctx context.Context) (Image, error) {
	return fn(ctx)
}

// Organizer is a fixed identity, typically taken from the request's session.
type Organizer string

func (o Organizer) CurrentOrganizer() string { return string(o) }

type NavigatorFunc func()

func (fn NavigatorFunc) NavigateBack() { fn() }
