package form

import "errors"

// Messages shown to the organizer.
const (
	MsgNameRequired       = "Please enter an event name."
	MsgWinnersRequired    = "Please enter number of winners."
	MsgDeadlineRequired   = "Please select a selection deadline date."
	MsgEventTimeRequired  = "Please select an event date and time."
	MsgWinnersInteger     = "Winners must be an integer."
	MsgWaitlistInteger    = "Waitlist limit must be an integer."
	MsgEventAfterDeadline = "Event time must be after the selection deadline."
	MsgEventCreated       = "Event created."
	MsgSaveFailed         = "Failed to save event. Try again."
)

// Picker titles.
const (
	TitleSelectionDeadline = "Select selection deadline"
	TitleEventDate         = "Select event date"
)

var (
	ErrClosed = errors.New("form closed")
	ErrBusy   = errors.New("submission already in progress")
)

// ValidationError rejects a submission before anything is stored.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// SubmitError reports that storing the event or its poster failed.
type SubmitError struct {
	EventID string
	Err     error
}

func (e *SubmitError) Error() string { return "save event " + e.EventID + ": " + e.Err.Error() }

func (e *SubmitError) Unwrap() error { return e.Err }
