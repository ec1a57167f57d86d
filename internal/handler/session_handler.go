package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/houndlab/orientation-backend-go/internal/ingest"
	"github.com/houndlab/orientation-backend-go/internal/models"
	"github.com/houndlab/orientation-backend-go/internal/orientation"
	"github.com/houndlab/orientation-backend-go/internal/service"
	"github.com/houndlab/orientation-backend-go/pkg/response"
)

// SessionHandler handles HTTP requests for labeling sessions
type SessionHandler struct {
	service *service.SessionService
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(service *service.SessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// paramsForm carries the optional classifier constant overrides. Pointers
// distinguish "absent" from zero so unset fields keep their defaults.
type paramsForm struct {
	LikelihoodThreshold    *float64 `form:"likelihoodThreshold" json:"likelihoodThreshold"`
	StraightThreshold      *float64 `form:"straightThreshold" json:"straightThreshold"`
	MinNoseWidth           *float64 `form:"minNoseWidth" json:"minNoseWidth"`
	MaxNoseWidth           *float64 `form:"maxNoseWidth" json:"maxNoseWidth"`
	RayConfidenceThreshold *float64 `form:"rayConfidenceThreshold" json:"rayConfidenceThreshold"`
	ImageWidth             *float64 `form:"imageWidth" json:"imageWidth"`
	ImageHeight            *float64 `form:"imageHeight" json:"imageHeight"`
	ZoneLeftMin            *float64 `form:"zoneLeftMin" json:"zoneLeftMin"`
	ZoneLeftMax            *float64 `form:"zoneLeftMax" json:"zoneLeftMax"`
	ZoneStraightMax        *float64 `form:"zoneStraightMax" json:"zoneStraightMax"`
	ZoneRightMax           *float64 `form:"zoneRightMax" json:"zoneRightMax"`
	TiltMargin             *float64 `form:"tiltMargin" json:"tiltMargin"`
	SkipNaN                *bool    `form:"skipNaN" json:"skipNaN"`
}

// apply merges the overrides into a parameter set
func (f *paramsForm) apply(p orientation.Params) orientation.Params {
	set := func(dst *float64, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.LikelihoodThreshold, f.LikelihoodThreshold)
	set(&p.StraightThreshold, f.StraightThreshold)
	set(&p.MinNoseWidth, f.MinNoseWidth)
	set(&p.MaxNoseWidth, f.MaxNoseWidth)
	set(&p.RayConfidenceThreshold, f.RayConfidenceThreshold)
	set(&p.ImageWidth, f.ImageWidth)
	set(&p.ImageHeight, f.ImageHeight)
	set(&p.ZoneLeftMin, f.ZoneLeftMin)
	set(&p.ZoneLeftMax, f.ZoneLeftMax)
	set(&p.ZoneStraightMax, f.ZoneStraightMax)
	set(&p.ZoneRightMax, f.ZoneRightMax)
	set(&p.TiltMargin, f.TiltMargin)
	if f.SkipNaN != nil {
		p.SkipNaN = *f.SkipNaN
	}
	return p
}

type createSessionForm struct {
	Name     string  `form:"name"`
	FPS      float64 `form:"fps"`
	Duration float64 `form:"duration"`
	Interval float64 `form:"interval"`
	Mode     string  `form:"mode"`
	paramsForm
}

// Create handles POST /api/v1/sessions: a multipart DeepLabCut CSV upload
// plus segmentation and classifier parameters.
func (h *SessionHandler) Create(c *gin.Context) {
	var form createSessionForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid form parameters", err)
		return
	}

	file, header, err := c.Request.FormFile("tracking")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Missing tracking file upload", err)
		return
	}
	defer file.Close()

	frames, err := ingest.ParseDeepLabCut(file)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to parse tracking file", err)
		return
	}

	if form.Name == "" {
		form.Name = strings.TrimSuffix(header.Filename, filepath.Ext(header.Filename))
	}
	if form.Interval <= 0 {
		form.Interval = 1.0
	}
	if form.Mode == "" {
		form.Mode = models.ModeRay
	}

	session, results, err := h.service.Create(service.CreateSessionInput{
		Name:     form.Name,
		Frames:   frames,
		FPS:      form.FPS,
		Duration: form.Duration,
		Interval: form.Interval,
		Mode:     form.Mode,
		Params:   form.apply(orientation.DefaultParams()),
	})
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Failed to create session", err)
		return
	}

	response.Success(c, gin.H{
		"session":  session,
		"segments": results,
	})
}

// List handles GET /api/v1/sessions
func (h *SessionHandler) List(c *gin.Context) {
	var filter models.SessionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	sessions, total, err := h.service.List(filter)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list sessions", err)
		return
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 100
	}
	totalPages := int(total) / filter.PageSize
	if int(total)%filter.PageSize > 0 {
		totalPages++
	}

	response.Success(c, gin.H{
		"data":       sessions,
		"total":      total,
		"page":       filter.Page,
		"pageSize":   filter.PageSize,
		"totalPages": totalPages,
	})
}

// Get handles GET /api/v1/sessions/:id
func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	session, err := h.service.Get(id)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to get session", err)
		return
	}
	if session == nil {
		response.Error(c, http.StatusNotFound, "Session not found", nil)
		return
	}

	response.Success(c, session)
}

// Segments handles GET /api/v1/sessions/:id/segments: the per-segment
// classification results recomputed from the stored frames.
func (h *SessionHandler) Segments(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	session, results, err := h.service.Results(id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Session not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to classify session", err)
		return
	}

	response.Success(c, gin.H{
		"session":  session,
		"segments": results,
	})
}

// Metrics handles GET /api/v1/sessions/:id/metrics
func (h *SessionHandler) Metrics(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var filter models.MetricsFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid query parameters", err)
		return
	}

	metrics, err := h.service.Metrics(id, filter)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Session not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to derive metrics", err)
		return
	}

	response.Success(c, metrics)
}

type reclassifyRequest struct {
	Interval float64 `json:"interval" binding:"required"`
	Mode     string  `json:"mode"`
	paramsForm
}

// Reclassify handles PUT /api/v1/sessions/:id/classification: rerun the
// pipeline with a new interval, mode or constants. Manual edits are reset.
func (h *SessionHandler) Reclassify(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	var req reclassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Mode == "" {
		req.Mode = models.ModeRay
	}

	session, results, err := h.service.Reclassify(id, req.Interval, req.Mode, req.apply(orientation.DefaultParams()))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Session not found", nil)
			return
		}
		response.Error(c, http.StatusBadRequest, "Failed to reclassify session", err)
		return
	}

	response.Success(c, gin.H{
		"session":  session,
		"segments": results,
	})
}

// Delete handles DELETE /api/v1/sessions/:id
func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			response.Error(c, http.StatusNotFound, "Session not found", nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, "Failed to delete session", err)
		return
	}

	response.Success(c, gin.H{"deleted": id})
}

// sessionID parses the :id path parameter, writing the error response on
// failure.
func sessionID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid session ID", err)
		return 0, false
	}
	return id, true
}
