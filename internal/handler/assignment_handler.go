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

type assignmentStore interface {
	WeekAssignments(weekStart string) []models.Assignment
	LoadWeek(ctx context.Context, weekStart string)
	SetPrimary(ctx context.Context, weekStart string, day models.Weekday, slotID string, primaryPersonID *string)
	SubscribeToWeek(ctx context.Context, weekStart string)
	Version() uint64
	Err() string
}

// AssignmentHandler manages primary-assignment endpoints.
type AssignmentHandler struct {
	store     assignmentStore
	validator *validator.Validate
}

// NewAssignmentHandler constructs handler.
func NewAssignmentHandler(store assignmentStore, validate *validator.Validate) *AssignmentHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &AssignmentHandler{store: store, validator: validate}
}

// SetPrimaryRequest designates (or clears) the primary person for a cell.
type SetPrimaryRequest struct {
	Day      string  `json:"day" validate:"required"`
	SlotID   string  `json:"slot_id" validate:"required"`
	PersonID *string `json:"person_id"`
}

// GetWeek godoc
// @Summary Get primary assignments for a week
// @Tags Assignments
// @Produce json
// @Param week path string true "Week key (Monday ISO date)"
// @Success 200 {object} response.Envelope
// @Router /weeks/{week}/assignments [get]
func (h *AssignmentHandler) GetWeek(c *gin.Context) {
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
	response.JSON(c, http.StatusOK, h.store.WeekAssignments(weekStart), meta)
}

// SetPrimary godoc
// @Summary Set or clear the primary person for a cell
// @Tags Assignments
// @Accept json
// @Produce json
// @Param week path string true "Week key (Monday ISO date)"
// @Param payload body SetPrimaryRequest true "Primary assignment payload"
// @Success 200 {object} response.Envelope
// @Router /weeks/{week}/assignments/primary [put]
func (h *AssignmentHandler) SetPrimary(c *gin.Context) {
	weekStart, ok := weekParam(c)
	if !ok {
		return
	}

	var req SetPrimaryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	day, slotID, ok := cellParams(c, req.Day, req.SlotID)
	if !ok {
		return
	}

	h.store.SetPrimary(c.Request.Context(), weekStart, day, slotID, req.PersonID)
	if msg := h.store.Err(); msg != "" {
		response.Error(c, appErrors.New(appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, msg))
		return
	}
	response.JSON(c, http.StatusOK, h.store.WeekAssignments(weekStart),
		map[string]interface{}{"version": h.store.Version()})
}
