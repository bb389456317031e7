package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sukanyaghosh74/sstudize-task/internal/dto"
	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
)

type workflowStore interface {
	Save(ctx context.Context, workflow *models.FeedbackWorkflow) error
	FindByID(ctx context.Context, id string) (*models.FeedbackWorkflow, error)
	FindByStage(ctx context.Context, stage models.FeedbackStage) ([]models.FeedbackWorkflow, error)
}

type registryReader interface {
	ActiveTeachers(ctx context.Context) ([]models.Teacher, error)
	ParentsOfStudent(ctx context.Context, studentID string) ([]models.Parent, error)
	FindParentByID(ctx context.Context, id string) (*models.Parent, error)
}

type notificationSender interface {
	Send(ctx context.Context, recipientID, notificationType, title, message string, priority models.TaskPriority)
}

// WorkflowService runs the staged human-review pipeline for generated
// roadmaps: teacher_review, parent_validation, ai_integration, then
// implementation. The current stage is the only ordering guard; submissions
// for the wrong stage are rejected without touching the workflow.
type WorkflowService struct {
	workflows workflowStore
	registry  registryReader
	detector  ConflictDetector
	notifier  notificationSender
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	now       func() time.Time
}

func NewWorkflowService(workflows workflowStore, registry registryReader, detector ConflictDetector, notifier notificationSender, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *WorkflowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if detector == nil {
		detector = NewKeywordConflictDetector()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &WorkflowService{
		workflows: workflows,
		registry:  registry,
		detector:  detector,
		notifier:  notifier,
		validator: validate,
		metrics:   metrics,
		logger:    logger,
		now:       time.Now,
	}
}

// SubmitForReview opens a workflow in teacher_review and notifies every
// active teacher.
func (s *WorkflowService) SubmitForReview(ctx context.Context, studentID, roadmapID string) (*models.FeedbackWorkflow, error) {
	now := s.now()
	workflow := &models.FeedbackWorkflow{
		ID:           uuid.NewString(),
		StudentID:    studentID,
		RoadmapID:    roadmapID,
		CurrentStage: models.StageTeacherReview,
		Status:       models.FeedbackStatusPending,
		CreatedAt:    now,
		LastUpdated:  now,
	}
	if err := s.workflows.Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("save workflow: %w", err)
	}

	if s.notifier != nil {
		teachers, err := s.registry.ActiveTeachers(ctx)
		if err != nil {
			s.logger.Warn("list active teachers", zap.Error(err))
		}
		for _, teacher := range teachers {
			s.notifier.Send(ctx, teacher.ID, "roadmap_review",
				"New Roadmap for Review",
				"Student roadmap requires your review and feedback",
				models.PriorityMedium)
		}
	}

	s.logger.Info("roadmap submitted for review",
		zap.String("workflow_id", workflow.ID),
		zap.String("roadmap_id", roadmapID),
	)
	return workflow, nil
}

// SubmitTeacherFeedback attaches teacher feedback and advances the workflow
// to parent_validation. It is rejected unless the workflow is currently in
// teacher_review.
func (s *WorkflowService) SubmitTeacherFeedback(ctx context.Context, workflowID string, req dto.FeedbackRequest) (*models.FeedbackWorkflow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher feedback payload")
	}

	workflow, err := s.workflows.FindByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "workflow not found")
	}
	if workflow.CurrentStage != models.StageTeacherReview {
		return nil, appErrors.Clone(appErrors.ErrStageOrder,
			fmt.Sprintf("workflow is in %s, teacher feedback requires teacher_review", workflow.CurrentStage))
	}

	now := s.now()
	workflow.TeacherFeedback = &models.TeacherFeedback{
		ID:        uuid.NewString(),
		TeacherID: req.ReviewerID,
		StudentID: workflow.StudentID,
		RoadmapID: workflow.RoadmapID,
		Type:      models.FeedbackType(req.FeedbackType),
		Content:   req.Content,
		Priority:  models.TaskPriority(req.Priority),
		CreatedAt: now,
	}
	workflow.CurrentStage = models.StageParentValidation
	workflow.LastUpdated = now

	if err := s.workflows.Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("save workflow: %w", err)
	}

	if s.notifier != nil {
		parents, err := s.registry.ParentsOfStudent(ctx, workflow.StudentID)
		if err != nil {
			s.logger.Warn("list parents", zap.Error(err), zap.String("student_id", workflow.StudentID))
		}
		for _, parent := range parents {
			if !parent.Active || !parent.Preferences.WeeklyReports {
				continue
			}
			s.notifier.Send(ctx, parent.ID, "feedback_validation",
				"Teacher Feedback Available",
				"Teacher has provided feedback on your child's roadmap",
				models.PriorityMedium)
		}
	}

	s.logger.Info("teacher feedback submitted", zap.String("workflow_id", workflow.ID))
	return workflow, nil
}

// SubmitParentFeedback attaches parent feedback, advances to ai_integration
// and immediately runs conflict analysis. On success the workflow lands in
// implementation with status approved; an integration failure marks it
// rejected without persisting any partial resolution.
func (s *WorkflowService) SubmitParentFeedback(ctx context.Context, workflowID string, req dto.FeedbackRequest) (*models.FeedbackWorkflow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid parent feedback payload")
	}

	workflow, err := s.workflows.FindByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "workflow not found")
	}
	if workflow.CurrentStage != models.StageParentValidation {
		return nil, appErrors.Clone(appErrors.ErrStageOrder,
			fmt.Sprintf("workflow is in %s, parent feedback requires parent_validation", workflow.CurrentStage))
	}

	now := s.now()
	workflow.ParentFeedback = &models.ParentFeedback{
		ID:        uuid.NewString(),
		ParentID:  req.ReviewerID,
		StudentID: workflow.StudentID,
		Type:      models.FeedbackType(req.FeedbackType),
		Content:   req.Content,
		Priority:  models.TaskPriority(req.Priority),
		CreatedAt: now,
	}
	workflow.CurrentStage = models.StageAIIntegration
	workflow.LastUpdated = now

	resolution, err := s.integrate(workflow)
	if err != nil {
		workflow.Resolution = nil
		workflow.Status = models.FeedbackStatusRejected
		if saveErr := s.workflows.Save(ctx, workflow); saveErr != nil {
			return nil, fmt.Errorf("save rejected workflow: %w", saveErr)
		}
		s.logger.Error("feedback integration failed",
			zap.String("workflow_id", workflow.ID),
			zap.Error(err),
		)
		return workflow, nil
	}

	workflow.Resolution = resolution
	workflow.CurrentStage = models.StageImplementation
	workflow.Status = models.FeedbackStatusApproved
	workflow.LastUpdated = s.now()

	if err := s.workflows.Save(ctx, workflow); err != nil {
		return nil, fmt.Errorf("save workflow: %w", err)
	}

	if s.metrics != nil && resolution.Conflict != nil {
		s.metrics.RecordConflicts(resolution.Conflict.ConflictsDetected)
	}

	s.logger.Info("parent feedback integrated",
		zap.String("workflow_id", workflow.ID),
		zap.String("strategy", string(resolution.Strategy)),
	)
	return workflow, nil
}

// integrate analyzes both feedback texts and produces either a balanced
// conflict resolution or a direct integration plan.
func (s *WorkflowService) integrate(workflow *models.FeedbackWorkflow) (*models.Resolution, error) {
	if workflow.TeacherFeedback == nil || workflow.ParentFeedback == nil {
		return nil, fmt.Errorf("workflow %s missing feedback for integration", workflow.ID)
	}

	conflicts := s.detector.Detect(workflow.TeacherFeedback.Content, workflow.ParentFeedback.Content)
	if len(conflicts) > 0 {
		resolution := &models.ConflictResolution{
			ConflictsDetected: len(conflicts),
			Conflicts:         conflicts,
		}
		for range conflicts {
			resolution.Recommendations = append(resolution.Recommendations, models.ResolutionRecommendation{
				Action:      "gradual_adjustment",
				Description: "Implement gradual changes to accommodate both perspectives",
				Timeline:    "2-3 weeks",
				Monitoring:  "Weekly progress review",
			})
		}
		return &models.Resolution{
			Strategy: models.StrategyBalancedApproach,
			Conflict: resolution,
		}, nil
	}

	plan := &models.DirectIntegrationPlan{
		TeacherRecommendations: []models.FeedbackItem{{
			Type:     workflow.TeacherFeedback.Type,
			Content:  workflow.TeacherFeedback.Content,
			Priority: workflow.TeacherFeedback.Priority,
		}},
		ParentRecommendations: []models.FeedbackItem{{
			Type:     workflow.ParentFeedback.Type,
			Content:  workflow.ParentFeedback.Content,
			Priority: workflow.ParentFeedback.Priority,
		}},
		ImplementationSteps: []string{
			"Update roadmap based on feedback",
			"Adjust task priorities and timelines",
			"Notify student of changes",
			"Monitor implementation progress",
		},
	}
	return &models.Resolution{
		Strategy: models.StrategyDirectIntegration,
		Plan:     plan,
	}, nil
}

// Status returns the read-only snapshot for one workflow.
func (s *WorkflowService) Status(ctx context.Context, workflowID string) (*models.WorkflowStatusView, error) {
	workflow, err := s.workflows.FindByID(ctx, workflowID)
	if err != nil {
		return nil, err
	}
	if workflow == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "workflow not found")
	}
	view := statusView(workflow)
	return &view, nil
}

// PendingFor lists workflows awaiting the given reviewer role's action.
// Teachers see teacher_review workflows; parents see parent_validation
// workflows for their own students.
func (s *WorkflowService) PendingFor(ctx context.Context, userID string, role models.ReviewerRole) ([]models.WorkflowStatusView, error) {
	var stage models.FeedbackStage
	switch role {
	case models.ReviewerTeacher:
		stage = models.StageTeacherReview
	case models.ReviewerParent:
		stage = models.StageParentValidation
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unknown reviewer role %q", role))
	}

	workflows, err := s.workflows.FindByStage(ctx, stage)
	if err != nil {
		return nil, err
	}

	allowed := func(models.FeedbackWorkflow) bool { return true }
	if role == models.ReviewerParent {
		parent, err := s.registry.FindParentByID(ctx, userID)
		if err != nil {
			return nil, err
		}
		students := make(map[string]bool)
		if parent != nil {
			for _, studentID := range parent.StudentIDs {
				students[studentID] = true
			}
		}
		allowed = func(w models.FeedbackWorkflow) bool { return students[w.StudentID] }
	}

	views := make([]models.WorkflowStatusView, 0, len(workflows))
	for i := range workflows {
		if !allowed(workflows[i]) {
			continue
		}
		views = append(views, statusView(&workflows[i]))
	}
	sort.Slice(views, func(i, j int) bool { return views[i].CreatedAt.Before(views[j].CreatedAt) })
	return views, nil
}

func statusView(workflow *models.FeedbackWorkflow) models.WorkflowStatusView {
	return models.WorkflowStatusView{
		WorkflowID:         workflow.ID,
		StudentID:          workflow.StudentID,
		RoadmapID:          workflow.RoadmapID,
		CurrentStage:       workflow.CurrentStage,
		Status:             workflow.Status,
		HasTeacherFeedback: workflow.TeacherFeedback != nil,
		HasParentFeedback:  workflow.ParentFeedback != nil,
		CreatedAt:          workflow.CreatedAt,
		LastUpdated:        workflow.LastUpdated,
	}
}
