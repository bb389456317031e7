package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
)

// TeacherDashboard aggregates everything a teacher sees on login.
type TeacherDashboard struct {
	Teacher          models.Teacher              `json:"teacher"`
	PendingWorkflows []models.WorkflowStatusView `json:"pending_workflows"`
	Notifications    []models.Notification       `json:"notifications"`
}

// ParentDashboard aggregates everything a parent sees on login.
type ParentDashboard struct {
	Parent           models.Parent               `json:"parent"`
	PendingWorkflows []models.WorkflowStatusView `json:"pending_workflows"`
	Notifications    []models.Notification       `json:"notifications"`
}

// DashboardService builds read-only reviewer dashboards by composing the
// registry, workflow and notification queries.
type DashboardService struct {
	registry      *RegistryService
	workflows     *WorkflowService
	notifications *NotificationService
	logger        *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(registry *RegistryService, workflows *WorkflowService, notifications *NotificationService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		registry:      registry,
		workflows:     workflows,
		notifications: notifications,
		logger:        logger,
	}
}

// TeacherDashboard assembles the teacher view.
func (s *DashboardService) TeacherDashboard(ctx context.Context, teacherID string) (*TeacherDashboard, error) {
	teacher, err := s.registry.FindTeacherByID(ctx, teacherID)
	if err != nil {
		return nil, err
	}
	if teacher == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
	}

	pending, err := s.workflows.PendingFor(ctx, teacherID, models.ReviewerTeacher)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notifications.ListForRecipient(ctx, teacherID, 10)
	if err != nil {
		s.logger.Warn("load teacher notifications", zap.Error(err))
	}

	return &TeacherDashboard{
		Teacher:          *teacher,
		PendingWorkflows: pending,
		Notifications:    notifications,
	}, nil
}

// ParentDashboard assembles the parent view.
func (s *DashboardService) ParentDashboard(ctx context.Context, parentID string) (*ParentDashboard, error) {
	parent, err := s.registry.FindParentByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "parent not found")
	}

	pending, err := s.workflows.PendingFor(ctx, parentID, models.ReviewerParent)
	if err != nil {
		return nil, err
	}
	notifications, err := s.notifications.ListForRecipient(ctx, parentID, 10)
	if err != nil {
		s.logger.Warn("load parent notifications", zap.Error(err))
	}

	return &ParentDashboard{
		Parent:           *parent,
		PendingWorkflows: pending,
		Notifications:    notifications,
	}, nil
}
