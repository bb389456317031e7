package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sukanyaghosh74/sstudize-task/internal/dto"
	"github.com/sukanyaghosh74/sstudize-task/internal/service"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
	"github.com/sukanyaghosh74/sstudize-task/pkg/response"
)

// RegistryHandler manages teacher and parent registration.
type RegistryHandler struct {
	service *service.RegistryService
}

// NewRegistryHandler constructs the handler.
func NewRegistryHandler(svc *service.RegistryService) *RegistryHandler {
	return &RegistryHandler{service: svc}
}

// RegisterTeacher godoc
// @Summary Register teacher
// @Description Add a teacher to the reviewer registry
// @Tags Registry
// @Accept json
// @Produce json
// @Param payload body dto.RegisterTeacherRequest true "Teacher payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /registry/teachers [post]
func (h *RegistryHandler) RegisterTeacher(c *gin.Context) {
	var req dto.RegisterTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid teacher payload"))
		return
	}

	teacher, err := h.service.RegisterTeacher(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, teacher)
}

// RegisterParent godoc
// @Summary Register parent
// @Description Add a parent to the reviewer registry
// @Tags Registry
// @Accept json
// @Produce json
// @Param payload body dto.RegisterParentRequest true "Parent payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /registry/parents [post]
func (h *RegistryHandler) RegisterParent(c *gin.Context) {
	var req dto.RegisterParentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid parent payload"))
		return
	}

	parent, err := h.service.RegisterParent(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, parent)
}
