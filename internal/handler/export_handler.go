package handler

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lehrteam/stundenplan-api/pkg/response"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	pdfContentType  = "application/pdf"
)

type exportService interface {
	XLSX(weekStart string) ([]byte, string, error)
	PDF(weekStart string) ([]byte, string, error)
}

// ExportHandler streams week exports as downloads.
type ExportHandler struct {
	exports exportService
	loaders []weekLoader
}

// NewExportHandler constructs handler.
func NewExportHandler(exports exportService, loaders ...weekLoader) *ExportHandler {
	return &ExportHandler{exports: exports, loaders: loaders}
}

func (h *ExportHandler) refresh(ctx context.Context, weekStart string) {
	for _, loader := range h.loaders {
		loader.LoadWeek(ctx, weekStart)
	}
}

// XLSX godoc
// @Summary Download the week as a spreadsheet
// @Tags Export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param week path string true "Week key (Monday ISO date)"
// @Success 200 {file} binary
// @Router /weeks/{week}/export/xlsx [get]
func (h *ExportHandler) XLSX(c *gin.Context) {
	weekStart, ok := weekParam(c)
	if !ok {
		return
	}
	h.refresh(c.Request.Context(), weekStart)

	raw, name, err := h.exports.XLSX(weekStart)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, xlsxContentType, raw)
}

// PDF godoc
// @Summary Download the week plan as a document
// @Tags Export
// @Produce application/pdf
// @Param week path string true "Week key (Monday ISO date)"
// @Success 200 {file} binary
// @Router /weeks/{week}/export/pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	weekStart, ok := weekParam(c)
	if !ok {
		return
	}
	h.refresh(c.Request.Context(), weekStart)

	raw, name, err := h.exports.PDF(weekStart)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, pdfContentType, raw)
}
