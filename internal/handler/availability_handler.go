package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/lehrteam/stundenplan-api/internal/models"
	appErrors "github.com/lehrteam/stundenplan-api/pkg/errors"
	"github.com/lehrteam/stundenplan-api/pkg/response"
	"github.com/lehrteam/stundenplan-api/pkg/week"
)

type availabilityStore interface {
	WeekAvailability(weekStart string) []models.Availability
	LoadWeek(ctx context.Context, weekStart string)
	Toggle(ctx context.Context, personID, weekStart string, day models.Weekday, slotID string)
	ReplaceWeek(ctx context.Context, personID, weekStart string, entries []models.AvailabilityEntry)
	SubscribeToWeek(ctx context.Context, weekStart string)
	Version() uint64
	Err() string
}

// AvailabilityHandler manages weekly availability endpoints.
type AvailabilityHandler struct {
	store     availabilityStore
	validator *validator.Validate
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(store availabilityStore, validate *validator.Validate) *AvailabilityHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &AvailabilityHandler{store: store, validator: validate}
}

// ToggleRequest flips one availability mark.
type ToggleRequest struct {
	PersonID string `json:"person_id" validate:"required"`
	Day      string `json:"day" validate:"required"`
	SlotID   string `json:"slot_id" validate:"required"`
}

// ReplaceWeekRequest swaps out a person's marks for one week.
type ReplaceWeekRequest struct {
	Entries []models.AvailabilityEntry `json:"entries" validate:"dive"`
}

// GetWeek godoc
// @Summary Get availability marks for a week
// @Tags Availability
// @Produce json
// @Param week path string true "Week key (Monday ISO date)"
// @Success 200 {object} response.Envelope
// @Router /weeks/{week}/availability [get]
func (h *AvailabilityHandler) GetWeek(c *gin.Context) {
	weekStart, ok := weekParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	h.store.SubscribeToWeek(ctx, weekStart)
	h.store.LoadWeek(ctx, weekStart)

	meta := map[string]interface{}{"version": h.store.Version()}
	if msg := h.store.Err(); msg != "" {
		meta["error"] = msg
	}
	response.JSON(c, http.StatusOK, h.store.WeekAvailability(weekStart), meta)
}

// Toggle godoc
// @Summary Toggle one availability mark
// @Tags Availability
// @Accept json
// @Produce json
// @Param week path string true "Week key (Monday ISO date)"
// @Param payload body ToggleRequest true "Toggle payload"
// @Success 200 {object} response.Envelope
// @Router /weeks/{week}/availability/toggle [post]
func (h *AvailabilityHandler) Toggle(c *gin.Context) {
	weekStart, ok := weekParam(c)
	if !ok {
		return
	}

	var req ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid toggle payload"))
		return
	}
	day, slotID, ok := cellParams(c, req.Day, req.SlotID)
	if !ok {
		return
	}

	h.store.Toggle(c.Request.Context(), req.PersonID, weekStart, day, slotID)
	if msg := h.store.Err(); msg != "" {
		response.Error(c, appErrors.New(appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, msg))
		return
	}
	response.JSON(c, http.StatusOK, h.store.WeekAvailability(weekStart),
		map[string]interface{}{"version": h.store.Version()})
}

// ReplaceWeek godoc
// @Summary Replace a person's marks for one week
// @Tags Availability
// @Accept json
// @Produce json
// @Param week path string true "Week key (Monday ISO date)"
// @Param personID path string true "Person ID"
// @Param payload body ReplaceWeekRequest true "New week marks"
// @Success 200 {object} response.Envelope
// @Router /weeks/{week}/availability/{personID} [put]
func (h *AvailabilityHandler) ReplaceWeek(c *gin.Context) {
	weekStart, ok := weekParam(c)
	if !ok {
		return
	}
	personID := c.Param("personID")

	var req ReplaceWeekRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	for _, entry := range req.Entries {
		if _, _, ok := cellParams(c, string(entry.Day), entry.SlotID); !ok {
			return
		}
	}

	h.store.ReplaceWeek(c.Request.Context(), personID, weekStart, req.Entries)
	if msg := h.store.Err(); msg != "" {
		response.Error(c, appErrors.New(appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, msg))
		return
	}
	response.JSON(c, http.StatusOK, h.store.WeekAvailability(weekStart),
		map[string]interface{}{"version": h.store.Version()})
}

// weekParam validates the :week path segment.
func weekParam(c *gin.Context) (string, bool) {
	key := c.Param("week")
	if _, err := week.Parse(key); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid week key"))
		return "", false
	}
	return key, true
}

// cellParams validates a day/slot pair against the fixed tables.
func cellParams(c *gin.Context, rawDay, slotID string) (models.Weekday, string, bool) {
	day, err := models.ParseWeekday(rawDay)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid weekday"))
		return "", "", false
	}
	if _, ok := models.SlotByID(slotID); !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown time slot"))
		return "", "", false
	}
	return day, slotID, true
}
