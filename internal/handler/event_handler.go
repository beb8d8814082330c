package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/dto"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/middleware"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/service"
)

type EventHandler struct {
	svc service.EventService
}

func NewEventHandler(svc service.EventService) *EventHandler {
	return &EventHandler{svc: svc}
}

func (h *EventHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateEvent)
	g.GET("", h.ListEvents)
	g.GET("/:id", h.GetEvent)
	g.PUT("/:id/poster", h.UploadPoster)
}

func (h *EventHandler) CreateEvent(c echo.Context) error {
	var req dto.CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	req.Name = strings.TrimSpace(req.Name)
	if err := c.Validate(&req); err != nil {
		return err
	}

	category := models.DefaultCategory
	if req.Category != "" {
		parsed, err := models.ParseCategory(req.Category)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		category = parsed
	}

	event := &models.Event{
		Name:              req.Name,
		Description:       strings.TrimSpace(req.Description),
		Category:          category,
		SelectionDeadline: req.SelectionDeadline,
		EventAt:           req.EventAt,
		Organizer:         middleware.OrganizerFrom(c),
		Winners:           req.Winners,
		WaitlistLimit:     req.WaitlistLimit,
	}

	if err := h.svc.CreateEvent(c.Request().Context(), event); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusCreated, dto.ToEventResponse(event))
}

func (h *EventHandler) GetEvent(c echo.Context) error {
	event, err := h.svc.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEventID):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrEventNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.JSON(http.StatusOK, dto.ToEventResponse(event))
}

func (h *EventHandler) ListEvents(c echo.Context) error {
	events, err := h.svc.ListEvents(c.Request().Context(), c.QueryParam("organizer"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	resp := make([]dto.EventResponse, len(events))
	for i, e := range events {
		resp[i] = dto.ToEventResponse(&e)
	}

	return c.JSON(http.StatusOK, resp)
}

// UploadPoster stores the raw request body as the event's poster.
func (h *EventHandler) UploadPoster(c echo.Context) error {
	poster, err := h.svc.StorePoster(c.Request().Context(), c.Param("id"), c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(posterStatus(err), err.Error())
	}

	return c.JSON(http.StatusOK, dto.ToPosterResponse(poster))
}

func posterStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrInvalidEventID):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrInvalidPoster):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, service.ErrPosterTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}
