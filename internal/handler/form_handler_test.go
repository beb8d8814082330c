package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/dto"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/form"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/metrics"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/middleware"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/models"
	"github.com/yuvrajm34/logout-evently-rickyv/internal/service"
)

// --- Mock Persistence ---

type mockPersistence struct {
	mu        sync.Mutex
	events    []*models.Event
	posters   map[string][]byte
	storeErr  error
	posterErr error
}

func newMockPersistence() *mockPersistence {
	return &mockPersistence{posters: make(map[string][]byte)}
}

func (m *mockPersistence) StoreEvent(ctx context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storeErr != nil {
		return m.storeErr
	}
	m.events = append(m.events, event)
	return nil
}

func (m *mockPersistence) StorePoster(ctx context.Context, eventID string, img form.Image) error {
	rc, err := img.Open()
	if err != nil {
		return err
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.posterErr != nil {
		return m.posterErr
	}
	m.posters[eventID] = body
	return nil
}

// --- Helpers ---

func bakeSaleFields() map[string]string {
	return map[string]string{
		FormName:              "Bake Sale",
		FormWinners:           "3",
		FormSelectionDeadline: "2025/01/10",
		FormEventDate:         "2025/01/12",
		FormEventTime:         "14:00",
	}
}

func multipartRequest(t *testing.T, fields map[string]string, poster []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if poster != nil {
		fw, err := w.CreateFormFile(FormPoster, "poster.png")
		require.NoError(t, err)
		_, err = fw.Write(poster)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/organizer/events", &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func submit(t *testing.T, h *FormHandler, req *http.Request) (*httptest.ResponseRecorder, error) {
	t.Helper()
	e := newEcho()
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.OrganizerKey, testOrganizer)
	return rec, h.SubmitForm(c)
}

func httpMessage(t *testing.T, err error) string {
	t.Helper()
	var he *echo.HTTPError
	require.True(t, errors.As(err, &he), "expected *echo.HTTPError, got %v", err)
	msg, _ := he.Message.(string)
	return msg
}

// --- Tests ---

func TestSubmitForm_BakeSale(t *testing.T) {
	store := newMockPersistence()
	m := metrics.New(prometheus.NewRegistry())
	h := NewFormHandler(store, FormOptions{Location: time.UTC, Metrics: m})

	rec, err := submit(t, h, multipartRequest(t, bakeSaleFields(), nil))

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.FormResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, form.MsgEventCreated, resp.Message)
	require.NotNil(t, resp.Event)
	assert.Equal(t, "Bake Sale", resp.Event.Name)
	assert.Equal(t, int64(3), resp.Event.Winners)
	assert.Nil(t, resp.Event.WaitlistLimit)
	assert.Equal(t, testOrganizer, resp.Event.Organizer)
	assert.Equal(t, models.DefaultCategory, resp.Event.Category)
	assert.True(t, resp.Event.SelectionDeadline.Equal(time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)))
	assert.True(t, resp.Event.EventAt.Equal(time.Date(2025, 1, 12, 14, 0, 0, 0, time.UTC)))

	require.Len(t, store.events, 1)
	assert.Empty(t, store.posters)
}

func TestSubmitForm_WithPoster(t *testing.T) {
	store := newMockPersistence()
	h := NewFormHandler(store, FormOptions{Location: time.UTC})

	rec, err := submit(t, h, multipartRequest(t, bakeSaleFields(), []byte("png-data")))

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, store.events, 1)
	assert.Equal(t, []byte("png-data"), store.posters[store.events[0].ID])
}

func TestSubmitForm_CategoryOverride(t *testing.T) {
	store := newMockPersistence()
	h := NewFormHandler(store, FormOptions{Category: models.CategoryArts})

	fields := bakeSaleFields()
	_, err := submit(t, h, multipartRequest(t, fields, nil))
	require.NoError(t, err)
	assert.Equal(t, models.CategoryArts, store.events[0].Category)

	fields[FormCategory] = "music"
	_, err = submit(t, h, multipartRequest(t, fields, nil))
	require.NoError(t, err)
	assert.Equal(t, models.CategoryMusic, store.events[1].Category)

	fields[FormCategory] = "knitting"
	_, err = submit(t, h, multipartRequest(t, fields, nil))
	assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
}

func TestSubmitForm_ValidationMessages(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(f map[string]string)
		want   string
	}{
		{"blank name", func(f map[string]string) { f[FormName] = "   " }, form.MsgNameRequired},
		{"missing winners", func(f map[string]string) { delete(f, FormWinners) }, form.MsgWinnersRequired},
		{"missing deadline", func(f map[string]string) { delete(f, FormSelectionDeadline) }, form.MsgDeadlineRequired},
		{"malformed deadline", func(f map[string]string) { f[FormSelectionDeadline] = "10-01-2025" }, form.MsgDeadlineRequired},
		{"missing time", func(f map[string]string) { delete(f, FormEventTime) }, form.MsgEventTimeRequired},
		{"missing date", func(f map[string]string) { f[FormEventDate] = "" }, form.MsgEventTimeRequired},
		{"winners not integer", func(f map[string]string) { f[FormWinners] = "three" }, form.MsgWinnersInteger},
		{"waitlist not integer", func(f map[string]string) { f[FormWaitlistLimit] = "a few" }, form.MsgWaitlistInteger},
		{"equal to deadline", func(f map[string]string) {
			f[FormEventDate] = "2025/01/10"
			f[FormEventTime] = "00:00"
		}, form.MsgEventAfterDeadline},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMockPersistence()
			h := NewFormHandler(store, FormOptions{})
			fields := bakeSaleFields()
			tt.mutate(fields)

			_, err := submit(t, h, multipartRequest(t, fields, nil))

			assert.Equal(t, http.StatusBadRequest, httpCode(t, err))
			assert.Equal(t, tt.want, httpMessage(t, err))
			assert.Empty(t, store.events)
		})
	}
}

func TestSubmitForm_WaitlistAttached(t *testing.T) {
	store := newMockPersistence()
	h := NewFormHandler(store, FormOptions{})
	fields := bakeSaleFields()
	fields[FormWaitlistLimit] = "15"

	_, err := submit(t, h, multipartRequest(t, fields, nil))

	require.NoError(t, err)
	require.NotNil(t, store.events[0].WaitlistLimit)
	assert.Equal(t, int64(15), *store.events[0].WaitlistLimit)
}

func TestSubmitForm_StoreFailure(t *testing.T) {
	store := newMockPersistence()
	store.storeErr = errors.New("db down")
	h := NewFormHandler(store, FormOptions{})

	_, err := submit(t, h, multipartRequest(t, bakeSaleFields(), nil))

	assert.Equal(t, http.StatusBadGateway, httpCode(t, err))
	assert.Equal(t, form.MsgSaveFailed, httpMessage(t, err))
}

func TestSubmitForm_PosterRejected(t *testing.T) {
	store := newMockPersistence()
	store.posterErr = service.ErrInvalidPoster
	h := NewFormHandler(store, FormOptions{})

	_, err := submit(t, h, multipartRequest(t, bakeSaleFields(), []byte("not an image")))

	assert.Equal(t, http.StatusUnsupportedMediaType, httpCode(t, err))
	assert.Equal(t, form.MsgSaveFailed, httpMessage(t, err))
}

func TestSubmitForm_URLEncoded(t *testing.T) {
	store := newMockPersistence()
	h := NewFormHandler(store, FormOptions{})

	values := url.Values{}
	for k, v := range bakeSaleFields() {
		values.Set(k, v)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/organizer/events", strings.NewReader(values.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)

	rec, err := submit(t, h, req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Empty(t, store.posters)
}
