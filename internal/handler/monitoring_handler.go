package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sukanyaghosh74/sstudize-task/internal/dto"
	"github.com/sukanyaghosh74/sstudize-task/internal/service"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
	"github.com/sukanyaghosh74/sstudize-task/pkg/response"
)

// MonitoringHandler exposes agent-driven monitoring endpoints.
type MonitoringHandler struct {
	service *service.MonitoringService
}

// NewMonitoringHandler constructs the handler.
func NewMonitoringHandler(svc *service.MonitoringService) *MonitoringHandler {
	return &MonitoringHandler{service: svc}
}

// GenerateReport godoc
// @Summary Generate weekly monitoring report
// @Description Run all active monitoring agents against a student's current week
// @Tags Monitoring
// @Accept json
// @Produce json
// @Param payload body dto.GenerateReportRequest true "Report payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /monitoring/reports [post]
func (h *MonitoringHandler) GenerateReport(c *gin.Context) {
	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid report payload"))
		return
	}

	report, err := h.service.GenerateWeeklyReport(c.Request.Context(), req.StudentID, req.CurrentWeek)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, report)
}

// RecentReports godoc
// @Summary Recent monitoring reports
// @Description List the most recent reports for a student
// @Tags Monitoring
// @Produce json
// @Param studentId query string true "Student ID"
// @Param limit query int false "Max reports" default(5)
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /monitoring/reports [get]
func (h *MonitoringHandler) RecentReports(c *gin.Context) {
	studentID := strings.TrimSpace(c.Query("studentId"))
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId is required"))
		return
	}

	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "limit must be a positive integer"))
			return
		}
		limit = parsed
	}

	reports, err := h.service.RecentReports(c.Request.Context(), studentID, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, reports, nil)
}

// AgentStatus godoc
// @Summary Monitoring agent status
// @Description Report the active flag of every registered agent
// @Tags Monitoring
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /monitoring/agents [get]
func (h *MonitoringHandler) AgentStatus(c *gin.Context) {
	response.JSON(c, http.StatusOK, dto.AgentStatusResponse{Agents: h.service.AgentStatus()}, nil)
}

// ToggleAgent godoc
// @Summary Toggle monitoring agent
// @Description Flip an agent's active flag
// @Tags Monitoring
// @Produce json
// @Param id path string true "Agent ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /monitoring/agents/{id}/toggle [post]
func (h *MonitoringHandler) ToggleAgent(c *gin.Context) {
	agentID := c.Param("id")
	if _, known := h.service.AgentStatus()[agentID]; !known {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "unknown agent"))
		return
	}

	active := h.service.ToggleAgent(agentID)
	response.JSON(c, http.StatusOK, dto.ToggleAgentResponse{Agent: agentID, Active: active}, nil)
}
