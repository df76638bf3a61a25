package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lehrteam/stundenplan-api/internal/models"
)

type peopleStoreMock struct {
	people     []models.Person
	errMsg     string
	added      *models.Person
	addedName  string
	loadCalled bool
}

func (m *peopleStoreMock) People() []models.Person { return m.people }
func (m *peopleStoreMock) Load(context.Context)    { m.loadCalled = true }
func (m *peopleStoreMock) Err() string             { return m.errMsg }

func (m *peopleStoreMock) AddPerson(_ context.Context, name string) *models.Person {
	m.addedName = name
	return m.added
}

func TestPersonHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockStore := &peopleStoreMock{people: []models.Person{{ID: "p1", Name: "Anna", Color: "#EF4444"}}}
	handler := NewPersonHandler(mockStore, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/people", nil)

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockStore.loadCalled)
	assert.Contains(t, w.Body.String(), "Anna")
}

func TestPersonHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockStore := &peopleStoreMock{added: &models.Person{ID: "p1", Name: "Anna", Color: "#EF4444"}}
	handler := NewPersonHandler(mockStore, nil)

	payload, _ := json.Marshal(CreatePersonRequest{Name: "Anna"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/people", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Anna", mockStore.addedName)
}

func TestPersonHandlerCreateRejectsMissingName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewPersonHandler(&peopleStoreMock{}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/people", strings.NewReader(`{}`))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPersonHandlerCreateSurfacesStoreError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockStore := &peopleStoreMock{errMsg: "Failed to add person. Please try again."}
	handler := NewPersonHandler(mockStore, nil)

	payload, _ := json.Marshal(CreatePersonRequest{Name: "Anna"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/people", bytes.NewReader(payload))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Create(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Failed to add person")
}
