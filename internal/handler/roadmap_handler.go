package handler

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/sukanyaghosh74/sstudize-task/internal/dto"
	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	"github.com/sukanyaghosh74/sstudize-task/internal/service"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
	"github.com/sukanyaghosh74/sstudize-task/pkg/response"
)

type roadmapService interface {
	Generate(ctx context.Context, studentID string, durationWeeks int) (*models.Roadmap, error)
	Replan(ctx context.Context, roadmapID string, newMetrics []models.PerformanceMetric) (*models.Roadmap, error)
	Get(ctx context.Context, roadmapID string) (*models.Roadmap, bool, error)
	Latest(ctx context.Context, studentID string) (*models.Roadmap, error)
	UpdateTaskStatus(ctx context.Context, roadmapID, taskID string, status models.TaskStatus, actualDuration *int, notes string) (*models.Roadmap, error)
}

type roadmapExporter interface {
	ExportRoadmap(ctx context.Context, roadmapID, format string) (*dto.ExportResponse, error)
	Download(ctx context.Context, token string) (*service.ExportDownload, error)
}

// RoadmapHandler wires roadmap generation and lifecycle endpoints.
type RoadmapHandler struct {
	service  roadmapService
	exporter roadmapExporter
}

// NewRoadmapHandler constructs the handler.
func NewRoadmapHandler(service roadmapService, exporter roadmapExporter) *RoadmapHandler {
	return &RoadmapHandler{service: service, exporter: exporter}
}

// Generate godoc
// @Summary Generate roadmap
// @Description Build a personalized study roadmap for a student
// @Tags Roadmaps
// @Accept json
// @Produce json
// @Param payload body dto.GenerateRoadmapRequest true "Generation payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /roadmaps [post]
func (h *RoadmapHandler) Generate(c *gin.Context) {
	var req dto.GenerateRoadmapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}

	roadmap, err := h.service.Generate(c.Request.Context(), req.StudentID, req.DurationWeeks)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, roadmap)
}

// Get godoc
// @Summary Get roadmap
// @Description Fetch a roadmap by ID
// @Tags Roadmaps
// @Produce json
// @Param id path string true "Roadmap ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /roadmaps/{id} [get]
func (h *RoadmapHandler) Get(c *gin.Context) {
	roadmap, cacheHit, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, roadmap, nil, map[string]interface{}{"cache_hit": cacheHit})
}

// Latest godoc
// @Summary Latest roadmap for student
// @Description Fetch the most recently created roadmap for a student
// @Tags Roadmaps
// @Produce json
// @Param studentId query string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /roadmaps/latest [get]
func (h *RoadmapHandler) Latest(c *gin.Context) {
	studentID := strings.TrimSpace(c.Query("studentId"))
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId is required"))
		return
	}

	roadmap, err := h.service.Latest(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, roadmap, nil)
}

// Replan godoc
// @Summary Replan roadmap
// @Description Adjust remaining weeks of a roadmap from new performance data
// @Tags Roadmaps
// @Accept json
// @Produce json
// @Param id path string true "Roadmap ID"
// @Param payload body dto.ReplanRequest true "Replan payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /roadmaps/{id}/replan [post]
func (h *RoadmapHandler) Replan(c *gin.Context) {
	var req dto.ReplanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid replan payload"))
		return
	}

	metrics := make([]models.PerformanceMetric, 0, len(req.NewPerformance))
	now := time.Now().UTC()
	for _, sample := range req.NewPerformance {
		metrics = append(metrics, models.PerformanceMetric{
			ID:       uuid.NewString(),
			Subject:  models.Subject(sample.Subject),
			Score:    sample.Score,
			MaxScore: sample.MaxScore,
			Date:     now,
		})
	}

	roadmap, err := h.service.Replan(c.Request.Context(), c.Param("id"), metrics)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, roadmap, nil)
}

// UpdateTaskStatus godoc
// @Summary Update task status
// @Description Change the status of a single task within a roadmap
// @Tags Roadmaps
// @Accept json
// @Produce json
// @Param id path string true "Roadmap ID"
// @Param taskId path string true "Task ID"
// @Param payload body dto.UpdateTaskStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /roadmaps/{id}/tasks/{taskId} [patch]
func (h *RoadmapHandler) UpdateTaskStatus(c *gin.Context) {
	var req dto.UpdateTaskStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}

	roadmap, err := h.service.UpdateTaskStatus(c.Request.Context(), c.Param("id"), c.Param("taskId"), req.Status, req.ActualDuration, req.Notes)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, roadmap, nil)
}

// Export godoc
// @Summary Export roadmap
// @Description Render a roadmap as a downloadable PDF or CSV file
// @Tags Roadmaps
// @Produce json
// @Param id path string true "Roadmap ID"
// @Param format query string false "pdf or csv" default(pdf)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /roadmaps/{id}/export [get]
func (h *RoadmapHandler) Export(c *gin.Context) {
	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "pdf")))
	if format != "pdf" && format != "csv" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be pdf or csv"))
		return
	}

	res, err := h.exporter.ExportRoadmap(c.Request.Context(), c.Param("id"), format)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, res, nil)
}

// DownloadExport godoc
// @Summary Download exported roadmap
// @Description Stream a previously exported roadmap file via its signed token
// @Tags Roadmaps
// @Produce application/octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} file
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exports/{token} [get]
func (h *RoadmapHandler) DownloadExport(c *gin.Context) {
	result, err := h.exporter.Download(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer result.File.Close() //nolint:errcheck

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Header("Cache-Control", "no-store")
	c.DataFromReader(http.StatusOK, result.SizeBytes, result.MimeType, result.File, nil)
}
