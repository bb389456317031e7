package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sukanyaghosh74/sstudize-task/internal/service"
	"github.com/sukanyaghosh74/sstudize-task/pkg/response"
)

// DashboardHandler serves reviewer dashboards.
type DashboardHandler struct {
	service *service.DashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: svc}
}

// Teacher godoc
// @Summary Teacher dashboard
// @Description Pending workflows and notifications for a teacher
// @Tags Dashboard
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /dashboard/teachers/{id} [get]
func (h *DashboardHandler) Teacher(c *gin.Context) {
	dashboard, err := h.service.TeacherDashboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dashboard, nil)
}

// Parent godoc
// @Summary Parent dashboard
// @Description Pending validations and notifications for a parent
// @Tags Dashboard
// @Produce json
// @Param id path string true "Parent ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /dashboard/parents/{id} [get]
func (h *DashboardHandler) Parent(c *gin.Context) {
	dashboard, err := h.service.ParentDashboard(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, dashboard, nil)
}
