package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/houndlab/orientation-backend-go/internal/service"
	"github.com/houndlab/orientation-backend-go/pkg/response"
)

// LabelHandler handles HTTP requests for label review and export
type LabelHandler struct {
	service *service.LabelService
}

// NewLabelHandler creates a new label handler
func NewLabelHandler(service *service.LabelService) *LabelHandler {
	return &LabelHandler{service: service}
}

// Records handles GET /api/v1/sessions/:id/labels
func (h *LabelHandler) Records(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	records, err := h.service.Records(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Session not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to get label records", err)
		return
	}

	response.Success(c, records)
}

type setLabelRequest struct {
	Label string `json:"label" binding:"required"`
}

// SetManual handles PUT /api/v1/sessions/:id/labels/:segment
func (h *LabelHandler) SetManual(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	segment, err := strconv.Atoi(c.Param("segment"))
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid segment index", err)
		return
	}

	var req setLabelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	record, err := h.service.SetManual(id, segment, req.Label)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Segment not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to set label", err)
		return
	}

	response.Success(c, record)
}

// Summary handles GET /api/v1/sessions/:id/summary
func (h *LabelHandler) Summary(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	summary, err := h.service.Summary(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Session not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to compute summary", err)
		return
	}

	response.Success(c, summary)
}

// Export handles GET /api/v1/sessions/:id/export: the label table as CSV
func (h *LabelHandler) Export(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=session_%d_labels.csv", id))

	if err := h.service.WriteCSV(c.Writer, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Session not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to export labels", err)
		return
	}
}
