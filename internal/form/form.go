// Package form implements the organizer's create-event screen as a state
// machine over its collaborators: pickers, a view, auth, persistence and
// navigation. Picker results and persistence completions may arrive on any
// goroutine; the form serializes them.
package form

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
	"github.com/yuvrajm34/logout-evently-rickyv/pkg/logging"
)

// Deps are the collaborators a Form drives. All are required except Navigator.
type Deps struct {
	Dates     DatePicker
	Times     TimePicker
	Images    ImagePicker
	Auth      Auth
	Store     Persistence
	Navigator Navigator
}

type Config struct {
	// Category is attached to every created event. Empty means models.DefaultCategory.
	Category models.Category
	// Location interprets picked dates and times. Nil means time.Local.
	Location *time.Location
	Logger   *logrus.Entry
}

type Form struct {
	mu   sync.Mutex
	view View
	deps Deps
	cfg  Config
	log  *logrus.Entry

	selectionDeadline *Date
	eventDate         *Date
	eventTime         *Clock
	poster            Image

	submitting bool
	cancel     context.CancelFunc
	closed     bool
}

func New(view View, deps Deps, cfg Config) *Form {
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.Category == "" {
		cfg.Category = models.DefaultCategory
	}
	if deps.Navigator == nil {
		deps.Navigator = NavigatorFunc(func() {})
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	f := &Form{view: view, deps: deps, cfg: cfg, log: log}
	view.SetSubmitEnabled(true)
	return f
}

func (f *Form) PickSelectionDeadline(ctx context.Context) error {
	return f.pickDate(ctx, TitleSelectionDeadline, FieldSelectionDeadline, &f.selectionDeadline)
}

func (f *Form) PickEventDate(ctx context.Context) error {
	return f.pickDate(ctx, TitleEventDate, FieldEventDate, &f.eventDate)
}

// pickDate opens the date picker preseeded with *slot. A nil selection leaves
// the slot and the field untouched.
func (f *Form) pickDate(ctx context.Context, title string, field Field, slot **Date) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	var preset *Date
	if *slot != nil {
		d := **slot
		preset = &d
	}
	f.mu.Unlock()

	picked, err := f.deps.Dates.PickDate(ctx, title, preset)
	if err != nil {
		return fmt.Errorf("pick %s: %w", field, err)
	}
	if picked == nil {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	d := *picked
	*slot = &d
	f.setText(field, d.String())
	return nil
}

// PickEventTime opens the 24-hour time picker. Dismissing it is a no-op.
func (f *Form) PickEventTime(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrClosed
	}
	var preset *Clock
	if f.eventTime != nil {
		c := *f.eventTime
		preset = &c
	}
	f.mu.Unlock()

	picked, err := f.deps.Times.PickTime(ctx, preset)
	if err != nil {
		return fmt.Errorf("pick %s: %w", FieldEventTime, err)
	}
	if picked == nil {
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	c := *picked
	f.eventTime = &c
	f.setText(FieldEventTime, c.String())
	return nil
}

// PickPoster replaces the poster only when the picker returns an image.
func (f *Form) PickPoster(ctx context.Context) error {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if closed {
		return ErrClosed
	}

	img, err := f.deps.Images.PickImage(ctx)
	if err != nil {
		return fmt.Errorf("pick poster: %w", err)
	}
	if img == nil {
		f.log.Debug("no poster selected")
		return nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return nil
	}
	f.poster = img
	if f.view != nil {
		f.view.ShowPoster(img)
	}
	return nil
}

// Cancel leaves the screen without submitting.
func (f *Form) Cancel() {
	f.mu.Lock()
	closed := f.closed
	f.mu.Unlock()
	if !closed {
		f.deps.Navigator.NavigateBack()
	}
}

// Submit validates the current input, stores the event and poster, and
// navigates back on success. Validation failures return a *ValidationError
// and store nothing; storage failures return a *SubmitError and keep every
// picked value so the organizer can retry.
func (f *Form) Submit(ctx context.Context) (*models.Event, error) {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return nil, ErrClosed
	}
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrBusy
	}

	draft := f.draft()
	organizer := f.deps.Auth.CurrentOrganizer()
	event, err := draft.Build(organizer, f.cfg.Category, f.cfg.Location)
	if err != nil {
		f.toast(err.Error())
		f.mu.Unlock()
		return nil, err
	}

	f.submitting = true
	if f.view != nil {
		f.view.SetSubmitEnabled(false)
	}
	poster := f.poster
	sctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	log := f.log.WithFields(logrus.Fields{
		logging.FldEventID:   event.ID,
		logging.FldOrganizer: organizer,
	})

	err = storeAll(sctx, f.deps.Store, event, poster)
	cancel()

	f.mu.Lock()
	f.submitting = false
	f.cancel = nil
	closed := f.closed

	if err != nil {
		if f.view != nil {
			f.view.SetSubmitEnabled(true)
		}
		f.toast(MsgSaveFailed)
		f.mu.Unlock()
		log.WithError(err).Warn("failed to save event")
		return nil, &SubmitError{EventID: event.ID, Err: err}
	}

	f.toast(MsgEventCreated)
	f.mu.Unlock()
	log.WithField("poster", poster != nil).Info("event created")

	if !closed {
		f.deps.Navigator.NavigateBack()
	}
	return event, nil
}

// Close releases the view and cancels an in-flight submission. Results that
// arrive afterwards are dropped.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return
	}
	f.closed = true
	f.view = nil
	if f.cancel != nil {
		f.cancel()
	}
}

func (f *Form) SelectionDeadline() *Date {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyDate(f.selectionDeadline)
}

func (f *Form) EventDate() *Date {
	f.mu.Lock()
	defer f.mu.Unlock()
	return copyDate(f.eventDate)
}

func (f *Form) EventTime() *Clock {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.eventTime == nil {
		return nil
	}
	c := *f.eventTime
	return &c
}

func (f *Form) Poster() Image {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.poster
}

func (f *Form) Submitting() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.submitting
}

// draft must be called with mu held.
func (f *Form) draft() Draft {
	d := Draft{
		SelectionDeadline: f.selectionDeadline,
		EventDate:         f.eventDate,
		EventTime:         f.eventTime,
	}
	if f.view != nil {
		d.Name = strings.TrimSpace(f.view.Text(FieldName))
		d.Description = strings.TrimSpace(f.view.Text(FieldDescription))
		d.Winners = strings.TrimSpace(f.view.Text(FieldWinners))
		d.WaitlistLimit = strings.TrimSpace(f.view.Text(FieldWaitlistLimit))
	}
	return d
}

func (f *Form) setText(field Field, s string) {
	if f.view != nil {
		f.view.SetText(field, s)
	}
}

func (f *Form) toast(msg string) {
	if f.view != nil {
		f.view.Toast(msg)
	}
}

func copyDate(d *Date) *Date {
	if d == nil {
		return nil
	}
	c := *d
	return &c
}
