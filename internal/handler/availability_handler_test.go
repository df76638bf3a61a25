package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehrteam/stundenplan-api/internal/models"
)

type availabilityStoreMock struct {
	marks      []models.Availability
	errMsg     string
	version    uint64
	loaded     []string
	subscribed []string
	toggled    *ToggleRequest
	replaced   []models.AvailabilityEntry
}

func (m *availabilityStoreMock) WeekAvailability(string) []models.Availability { return m.marks }
func (m *availabilityStoreMock) Version() uint64                               { return m.version }
func (m *availabilityStoreMock) Err() string                                   { return m.errMsg }

func (m *availabilityStoreMock) LoadWeek(_ context.Context, weekStart string) {
	m.loaded = append(m.loaded, weekStart)
}

func (m *availabilityStoreMock) SubscribeToWeek(_ context.Context, weekStart string) {
	m.subscribed = append(m.subscribed, weekStart)
}

func (m *availabilityStoreMock) Toggle(_ context.Context, personID, weekStart string, day models.Weekday, slotID string) {
	m.toggled = &ToggleRequest{PersonID: personID, Day: string(day), SlotID: slotID}
}

func (m *availabilityStoreMock) ReplaceWeek(_ context.Context, _, _ string, entries []models.AvailabilityEntry) {
	m.replaced = entries
}

func doRequest(handler gin.HandlerFunc, method, path string, body []byte, params gin.Params) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader(body)
	}
	c.Request, _ = http.NewRequest(method, path, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = params
	handler(c)
	return w
}

func TestAvailabilityGetWeekLoadsAndSubscribes(t *testing.T) {
	mockStore := &availabilityStoreMock{
		marks:   []models.Availability{{PersonID: "anna", WeekStart: "2025-11-03", Day: models.Monday, SlotID: "08-10"}},
		version: 3,
	}
	h := NewAvailabilityHandler(mockStore, nil)

	w := doRequest(h.GetWeek, http.MethodGet, "/weeks/2025-11-03/availability", nil,
		gin.Params{{Key: "week", Value: "2025-11-03"}})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"2025-11-03"}, mockStore.loaded)
	assert.Equal(t, []string{"2025-11-03"}, mockStore.subscribed)
	assert.Contains(t, w.Body.String(), "anna")
	assert.Contains(t, w.Body.String(), `"version":3`)
}

func TestAvailabilityGetWeekRejectsBadWeekKey(t *testing.T) {
	h := NewAvailabilityHandler(&availabilityStoreMock{}, nil)

	// 2025-11-04 is a Tuesday, not a valid week key.
	w := doRequest(h.GetWeek, http.MethodGet, "/weeks/2025-11-04/availability", nil,
		gin.Params{{Key: "week", Value: "2025-11-04"}})

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailabilityToggle(t *testing.T) {
	mockStore := &availabilityStoreMock{}
	h := NewAvailabilityHandler(mockStore, nil)

	payload, _ := json.Marshal(ToggleRequest{PersonID: "anna", Day: "mon", SlotID: "08-10"})
	w := doRequest(h.Toggle, http.MethodPost, "/weeks/2025-11-03/availability/toggle", payload,
		gin.Params{{Key: "week", Value: "2025-11-03"}})

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockStore.toggled)
	assert.Equal(t, "anna", mockStore.toggled.PersonID)
}

func TestAvailabilityToggleRejectsUnknownSlot(t *testing.T) {
	mockStore := &availabilityStoreMock{}
	h := NewAvailabilityHandler(mockStore, nil)

	payload, _ := json.Marshal(ToggleRequest{PersonID: "anna", Day: "mon", SlotID: "20-22"})
	w := doRequest(h.Toggle, http.MethodPost, "/weeks/2025-11-03/availability/toggle", payload,
		gin.Params{{Key: "week", Value: "2025-11-03"}})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, mockStore.toggled)
}

func TestAvailabilityToggleSurfacesStoreError(t *testing.T) {
	mockStore := &availabilityStoreMock{errMsg: "Failed to update availability. Please try again."}
	h := NewAvailabilityHandler(mockStore, nil)

	payload, _ := json.Marshal(ToggleRequest{PersonID: "anna", Day: "mon", SlotID: "08-10"})
	w := doRequest(h.Toggle, http.MethodPost, "/weeks/2025-11-03/availability/toggle", payload,
		gin.Params{{Key: "week", Value: "2025-11-03"}})

	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestAvailabilityReplaceWeek(t *testing.T) {
	mockStore := &availabilityStoreMock{}
	h := NewAvailabilityHandler(mockStore, nil)

	payload, _ := json.Marshal(ReplaceWeekRequest{Entries: []models.AvailabilityEntry{
		{Day: models.Tuesday, SlotID: "10-12"},
	}})
	w := doRequest(h.ReplaceWeek, http.MethodPut, "/weeks/2025-11-03/availability/anna", payload,
		gin.Params{{Key: "week", Value: "2025-11-03"}, {Key: "personID", Value: "anna"}})

	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, mockStore.replaced, 1)
	assert.Equal(t, models.Tuesday, mockStore.replaced[0].Day)
}
