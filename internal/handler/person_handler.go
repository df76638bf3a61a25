package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/lehrteam/stundenplan-api/internal/models"
	appErrors "github.com/lehrteam/stundenplan-api/pkg/errors"
	"github.com/lehrteam/stundenplan-api/pkg/response"
)

type peopleStore interface {
	People() []models.Person
	Load(ctx context.Context)
	AddPerson(ctx context.Context, name string) *models.Person
	Err() string
}

// PersonHandler manages roster endpoints.
type PersonHandler struct {
	store     peopleStore
	validator *validator.Validate
}

// NewPersonHandler constructs handler.
func NewPersonHandler(store peopleStore, validate *validator.Validate) *PersonHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &PersonHandler{store: store, validator: validate}
}

// CreatePersonRequest is the add-person payload.
type CreatePersonRequest struct {
	Name string `json:"name" validate:"required"`
}

// List godoc
// @Summary List people
// @Tags People
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /people [get]
func (h *PersonHandler) List(c *gin.Context) {
	h.store.Load(c.Request.Context())
	meta := map[string]interface{}{}
	if msg := h.store.Err(); msg != "" {
		meta["error"] = msg
	}
	response.JSON(c, http.StatusOK, h.store.People(), meta)
}

// Create godoc
// @Summary Add a person to the roster
// @Tags People
// @Accept json
// @Produce json
// @Param payload body CreatePersonRequest true "Person payload"
// @Success 201 {object} response.Envelope
// @Router /people [post]
func (h *PersonHandler) Create(c *gin.Context) {
	var req CreatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "name is required"))
		return
	}

	person := h.store.AddPerson(c.Request.Context(), req.Name)
	if person == nil {
		if msg := h.store.Err(); msg != "" {
			response.Error(c, appErrors.New(appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, msg))
			return
		}
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "name must not be blank"))
		return
	}
	response.Created(c, person)
}
