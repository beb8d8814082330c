package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/dto"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/form"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/metrics"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/middleware"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/service"
	"github.com/yuvrajm34/logout-evently-rickyv/pkg/logging"
)

// Multipart field names of the create-event form.
const (
	FormName              = "name"
	FormDescription       = "description"
	FormWinners           = "winners"
	FormWaitlistLimit     = "waitlist_limit"
	FormSelectionDeadline = "selection_deadline"
	FormEventDate         = "event_date"
	FormEventTime         = "event_time"
	FormCategory          = "category"
	FormPoster            = "poster"
)

var textFields = map[form.Field]string{
	form.FieldName:          FormName,
	form.FieldDescription:   FormDescription,
	form.FieldWinners:       FormWinners,
	form.FieldWaitlistLimit: FormWaitlistLimit,
}

type FormOptions struct {
	Category models.Category
	Location *time.Location
	Metrics  *metrics.Metrics
	Logger   *logrus.Entry
}

// FormHandler runs submitted create-event forms through the same form logic
// the organizer app uses, so validation and messages match exactly.
type FormHandler struct {
	store   form.Persistence
	opts    FormOptions
	metrics *metrics.Metrics
	log     *logrus.Entry
}

func NewFormHandler(store form.Persistence, opts FormOptions) *FormHandler {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return &FormHandler{store: store, opts: opts, metrics: opts.Metrics, log: opts.Logger}
}

func (h *FormHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/events", h.SubmitForm)
}

func (h *FormHandler) SubmitForm(c echo.Context) error {
	ctx := c.Request().Context()

	category := h.opts.Category
	if raw := c.FormValue(FormCategory); raw != "" {
		parsed, err := models.ParseCategory(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		category = parsed
	}

	poster, err := posterFrom(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid poster upload")
	}

	view := form.NewMemoryView()
	for field, key := range textFields {
		view.SetText(field, c.FormValue(key))
	}

	// Unparseable dates behave like a picker that was never confirmed.
	deadline := dateValue(c.FormValue(FormSelectionDeadline))
	eventDate := dateValue(c.FormValue(FormEventDate))
	eventTime := clockValue(c.FormValue(FormEventTime))

	f := form.New(view, form.Deps{
		Dates: form.DatePickerFunc(func(_ context.Context, title string, _ *form.Date) (*form.Date, error) {
			switch title {
			case form.TitleSelectionDeadline:
				return deadline, nil
			case form.TitleEventDate:
				return eventDate, nil
			}
			return nil, nil
		}),
		Times: form.TimePickerFunc(func(context.Context, *form.Clock) (*form.Clock, error) {
			return eventTime, nil
		}),
		Images: form.ImagePickerFunc(func(context.Context) (form.Image, error) {
			return poster, nil
		}),
		Auth:  form.Organizer(middleware.OrganizerFrom(c)),
		Store: h.store,
	}, form.Config{
		Category: category,
		Location: h.opts.Location,
		Logger:   h.log,
	})
	defer f.Close()

	for _, pick := range []func(context.Context) error{
		f.PickSelectionDeadline,
		f.PickEventDate,
		f.PickEventTime,
		f.PickPoster,
	} {
		if err := pick(ctx); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	event, err := f.Submit(ctx)
	if err != nil {
		var verr *form.ValidationError
		if errors.As(err, &verr) {
			h.metrics.FormSubmitted(metrics.OutcomeRejected)
			return echo.NewHTTPError(http.StatusBadRequest, verr.Message)
		}
		h.metrics.FormSubmitted(metrics.OutcomeFailed)
		return echo.NewHTTPError(submitStatus(err), form.MsgSaveFailed)
	}

	h.metrics.FormSubmitted(metrics.OutcomeCreated)
	resp := dto.ToEventResponse(event)
	return c.JSON(http.StatusCreated, dto.FormResponse{Message: view.LastToast(), Event: &resp})
}

func submitStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidPoster):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrPosterTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusBadGateway
	}
}

type uploadedPoster struct {
	fh *multipart.FileHeader
}

func (p uploadedPoster) Name() string { return p.fh.Filename }

func (p uploadedPoster) Open() (io.ReadCloser, error) { return p.fh.Open() }

func posterFrom(c echo.Context) (form.Image, error) {
	fh, err := c.FormFile(FormPoster)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, err
	}
	return uploadedPoster{fh: fh}, nil
}

func dateValue(s string) *form.Date {
	d, err := form.ParseDate(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &d
}

func clockValue(s string) *form.Clock {
	c, err := form.ParseClock(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &c
}
