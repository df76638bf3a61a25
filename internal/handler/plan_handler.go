package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lehrteam/stundenplan-api/internal/models"
	"github.com/lehrteam/stundenplan-api/pkg/response"
)

type planService interface {
	WeekPlan(weekStart string) *models.WeekPlan
	Version() uint64
}

type weekLoader interface {
	LoadWeek(ctx context.Context, weekStart string)
	SubscribeToWeek(ctx context.Context, weekStart string)
}

// PlanHandler serves the aggregated week grid.
type PlanHandler struct {
	plan    planService
	loaders []weekLoader
}

// NewPlanHandler constructs handler. The loaders are refreshed before
// every plan read so the grid reflects the remote store.
func NewPlanHandler(plan planService, loaders ...weekLoader) *PlanHandler {
	return &PlanHandler{plan: plan, loaders: loaders}
}

// GetWeek godoc
// @Summary Get the aggregated plan for a week
// @Tags Plan
// @Produce json
// @Param week path string true "Week key (Monday ISO date)"
// @Success 200 {object} response.Envelope
// @Router /weeks/{week}/plan [get]
func (h *PlanHandler) GetWeek(c *gin.Context) {
	weekStart, ok := weekParam(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	for _, loader := range h.loaders {
		loader.SubscribeToWeek(ctx, weekStart)
		loader.LoadWeek(ctx, weekStart)
	}

	response.JSON(c, http.StatusOK, h.plan.WeekPlan(weekStart),
		map[string]interface{}{"version": h.plan.Version()})
}
