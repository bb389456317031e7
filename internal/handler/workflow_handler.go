package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sukanyaghosh74/sstudize-task/internal/dto"
	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	"github.com/sukanyaghosh74/sstudize-task/internal/service"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
	"github.com/sukanyaghosh74/sstudize-task/pkg/response"
)

// WorkflowHandler exposes the human-in-the-loop feedback workflow endpoints.
type WorkflowHandler struct {
	service *service.WorkflowService
}

// NewWorkflowHandler constructs the handler.
func NewWorkflowHandler(svc *service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{service: svc}
}

// SubmitForReview godoc
// @Summary Submit roadmap for review
// @Description Open a feedback workflow and notify active teachers
// @Tags Workflows
// @Accept json
// @Produce json
// @Param payload body dto.SubmitReviewRequest true "Review payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /workflows [post]
func (h *WorkflowHandler) SubmitForReview(c *gin.Context) {
	var req dto.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid review payload"))
		return
	}

	workflow, err := h.service.SubmitForReview(c.Request.Context(), req.StudentID, req.RoadmapID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, workflow)
}

// TeacherFeedback godoc
// @Summary Submit teacher feedback
// @Description Record teacher feedback and advance the workflow to parent validation
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param payload body dto.FeedbackRequest true "Feedback payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /workflows/{id}/teacher-feedback [post]
func (h *WorkflowHandler) TeacherFeedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feedback payload"))
		return
	}

	workflow, err := h.service.SubmitTeacherFeedback(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, workflow, nil)
}

// ParentFeedback godoc
// @Summary Submit parent feedback
// @Description Record parent feedback and resolve it against the teacher's feedback
// @Tags Workflows
// @Accept json
// @Produce json
// @Param id path string true "Workflow ID"
// @Param payload body dto.FeedbackRequest true "Feedback payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /workflows/{id}/parent-feedback [post]
func (h *WorkflowHandler) ParentFeedback(c *gin.Context) {
	var req dto.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid feedback payload"))
		return
	}

	workflow, err := h.service.SubmitParentFeedback(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, workflow, nil)
}

// Status godoc
// @Summary Workflow status
// @Description Summarize a workflow's stage, status, and resolution
// @Tags Workflows
// @Produce json
// @Param id path string true "Workflow ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /workflows/{id} [get]
func (h *WorkflowHandler) Status(c *gin.Context) {
	view, err := h.service.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, view, nil)
}

// Pending godoc
// @Summary Pending workflows for reviewer
// @Description List workflows waiting on the authenticated teacher or parent
// @Tags Workflows
// @Produce json
// @Param role query string true "teacher or parent"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /workflows/pending [get]
func (h *WorkflowHandler) Pending(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	role := models.ReviewerRole(c.Query("role"))
	if role != models.ReviewerTeacher && role != models.ReviewerParent {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "role must be teacher or parent"))
		return
	}

	views, err := h.service.PendingFor(c.Request.Context(), claims.UserID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, views, nil)
}
