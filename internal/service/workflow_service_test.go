package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sukanyaghosh74/sstudize-task/internal/dto"
	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
)

type fakeWorkflowRepo struct {
	workflows map[string]*models.FeedbackWorkflow
}

func newFakeWorkflowRepo() *fakeWorkflowRepo {
	return &fakeWorkflowRepo{workflows: make(map[string]*models.FeedbackWorkflow)}
}

func (f *fakeWorkflowRepo) Save(_ context.Context, workflow *models.FeedbackWorkflow) error {
	copied := *workflow
	f.workflows[workflow.ID] = &copied
	return nil
}

func (f *fakeWorkflowRepo) FindByID(_ context.Context, id string) (*models.FeedbackWorkflow, error) {
	workflow, ok := f.workflows[id]
	if !ok {
		return nil, nil
	}
	copied := *workflow
	return &copied, nil
}

func (f *fakeWorkflowRepo) FindByStage(_ context.Context, stage models.FeedbackStage) ([]models.FeedbackWorkflow, error) {
	var out []models.FeedbackWorkflow
	for _, workflow := range f.workflows {
		if workflow.CurrentStage == stage {
			out = append(out, *workflow)
		}
	}
	return out, nil
}

type fakeRegistry struct {
	teachers []models.Teacher
	parents  []models.Parent
}

func (f *fakeRegistry) ActiveTeachers(_ context.Context) ([]models.Teacher, error) {
	var out []models.Teacher
	for _, teacher := range f.teachers {
		if teacher.Active {
			out = append(out, teacher)
		}
	}
	return out, nil
}

func (f *fakeRegistry) ParentsOfStudent(_ context.Context, studentID string) ([]models.Parent, error) {
	var out []models.Parent
	for _, parent := range f.parents {
		for _, id := range parent.StudentIDs {
			if id == studentID {
				out = append(out, parent)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRegistry) FindParentByID(_ context.Context, id string) (*models.Parent, error) {
	for i := range f.parents {
		if f.parents[i].ID == id {
			return &f.parents[i], nil
		}
	}
	return nil, nil
}

type recordedNotification struct {
	RecipientID string
	Type        string
	Title       string
	Priority    models.TaskPriority
}

type fakeNotifier struct {
	sent []recordedNotification
}

func (f *fakeNotifier) Send(_ context.Context, recipientID, notificationType, title, _ string, priority models.TaskPriority) {
	f.sent = append(f.sent, recordedNotification{
		RecipientID: recipientID,
		Type:        notificationType,
		Title:       title,
		Priority:    priority,
	})
}

func testRegistry() *fakeRegistry {
	return &fakeRegistry{
		teachers: []models.Teacher{
			{ID: "teacher_1", Name: "Priya Nair", Active: true},
			{ID: "teacher_2", Name: "Rahul Verma", Active: false},
		},
		parents: []models.Parent{
			{ID: "parent_1", Name: "Sunita Sharma", StudentIDs: []string{"student_001"}, Active: true, Preferences: models.DefaultNotificationPreferences()},
			{ID: "parent_2", Name: "Anil Gupta", StudentIDs: []string{"student_002"}, Active: true, Preferences: models.DefaultNotificationPreferences()},
		},
	}
}

func newTestWorkflowService() (*WorkflowService, *fakeWorkflowRepo, *fakeNotifier) {
	repo := newFakeWorkflowRepo()
	notifier := &fakeNotifier{}
	svc := NewWorkflowService(repo, testRegistry(), nil, notifier, nil, nil, zap.NewNop())
	return svc, repo, notifier
}

func feedbackReq(reviewerID string, feedbackType models.FeedbackType, content string, priority models.TaskPriority) dto.FeedbackRequest {
	return dto.FeedbackRequest{
		ReviewerID:   reviewerID,
		FeedbackType: string(feedbackType),
		Content:      content,
		Priority:     string(priority),
	}
}

func TestWorkflowService_SubmitForReview(t *testing.T) {
	svc, repo, notifier := newTestWorkflowService()

	workflow, err := svc.SubmitForReview(context.Background(), "student_001", "rm1")
	require.NoError(t, err)

	assert.Equal(t, models.StageTeacherReview, workflow.CurrentStage)
	assert.Equal(t, models.FeedbackStatusPending, workflow.Status)
	assert.Contains(t, repo.workflows, workflow.ID)

	// Only the active teacher is notified.
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, "teacher_1", notifier.sent[0].RecipientID)
	assert.Equal(t, "roadmap_review", notifier.sent[0].Type)
}

func TestWorkflowService_FullApprovalPath(t *testing.T) {
	svc, _, notifier := newTestWorkflowService()
	ctx := context.Background()

	workflow, err := svc.SubmitForReview(ctx, "student_001", "rm1")
	require.NoError(t, err)

	workflow, err = svc.SubmitTeacherFeedback(ctx, workflow.ID,
		feedbackReq("teacher_1", models.FeedbackRecommendation, "Add extra practice sessions for mechanics", models.PriorityHigh))
	require.NoError(t, err)
	assert.Equal(t, models.StageParentValidation, workflow.CurrentStage)

	// Parent of student_001 with weekly reports enabled is notified.
	var parentNotified bool
	for _, n := range notifier.sent {
		if n.RecipientID == "parent_1" && n.Type == "feedback_validation" {
			parentNotified = true
		}
	}
	assert.True(t, parentNotified)

	workflow, err = svc.SubmitParentFeedback(ctx, workflow.ID,
		feedbackReq("parent_1", models.FeedbackObservation, "We support the additional sessions", models.PriorityMedium))
	require.NoError(t, err)

	assert.Equal(t, models.StageImplementation, workflow.CurrentStage)
	assert.Equal(t, models.FeedbackStatusApproved, workflow.Status)
	require.NotNil(t, workflow.Resolution)
	assert.Equal(t, models.StrategyDirectIntegration, workflow.Resolution.Strategy)
	require.NotNil(t, workflow.Resolution.Plan)
	assert.Nil(t, workflow.Resolution.Conflict)
	assert.Equal(t, []string{
		"Update roadmap based on feedback",
		"Adjust task priorities and timelines",
		"Notify student of changes",
		"Monitor implementation progress",
	}, workflow.Resolution.Plan.ImplementationSteps)
	require.Len(t, workflow.Resolution.Plan.TeacherRecommendations, 1)
	assert.Equal(t, "Add extra practice sessions for mechanics", workflow.Resolution.Plan.TeacherRecommendations[0].Content)
}

func TestWorkflowService_ConflictingFeedback(t *testing.T) {
	svc, _, _ := newTestWorkflowService()
	ctx := context.Background()

	workflow, err := svc.SubmitForReview(ctx, "student_001", "rm1")
	require.NoError(t, err)

	_, err = svc.SubmitTeacherFeedback(ctx, workflow.ID,
		feedbackReq("teacher_1", models.FeedbackConcern, "Student needs more_time on problem solving", models.PriorityHigh))
	require.NoError(t, err)

	updated, err := svc.SubmitParentFeedback(ctx, workflow.ID,
		feedbackReq("parent_1", models.FeedbackConcern, "Please reduce the study load", models.PriorityMedium))
	require.NoError(t, err)

	require.NotNil(t, updated.Resolution)
	assert.Equal(t, models.StrategyBalancedApproach, updated.Resolution.Strategy)
	require.NotNil(t, updated.Resolution.Conflict)
	assert.Nil(t, updated.Resolution.Plan)
	assert.Equal(t, 1, updated.Resolution.Conflict.ConflictsDetected)
	require.Len(t, updated.Resolution.Conflict.Recommendations, 1)
	rec := updated.Resolution.Conflict.Recommendations[0]
	assert.Equal(t, "gradual_adjustment", rec.Action)
	assert.Equal(t, "2-3 weeks", rec.Timeline)
	assert.Equal(t, models.FeedbackStatusApproved, updated.Status)
}

func TestWorkflowService_OutOfOrderSubmissionRejected(t *testing.T) {
	svc, repo, _ := newTestWorkflowService()
	ctx := context.Background()

	workflow, err := svc.SubmitForReview(ctx, "student_001", "rm1")
	require.NoError(t, err)

	// Parent cannot move first.
	_, err = svc.SubmitParentFeedback(ctx, workflow.ID,
		feedbackReq("parent_1", models.FeedbackObservation, "Looks fine", models.PriorityLow))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrStageOrder.Code, appErr.Code)

	// Stage unchanged.
	stored := repo.workflows[workflow.ID]
	assert.Equal(t, models.StageTeacherReview, stored.CurrentStage)
	assert.Nil(t, stored.ParentFeedback)

	// Teacher cannot submit twice.
	_, err = svc.SubmitTeacherFeedback(ctx, workflow.ID,
		feedbackReq("teacher_1", models.FeedbackRecommendation, "First pass", models.PriorityMedium))
	require.NoError(t, err)
	_, err = svc.SubmitTeacherFeedback(ctx, workflow.ID,
		feedbackReq("teacher_1", models.FeedbackRecommendation, "Second pass", models.PriorityMedium))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrStageOrder.Code, appErrors.FromError(err).Code)
}

func TestWorkflowService_RejectsUnknownFeedbackEnums(t *testing.T) {
	svc, repo, _ := newTestWorkflowService()
	ctx := context.Background()

	workflow, err := svc.SubmitForReview(ctx, "student_001", "rm1")
	require.NoError(t, err)

	_, err = svc.SubmitTeacherFeedback(ctx, workflow.ID, dto.FeedbackRequest{
		ReviewerID:   "teacher_1",
		FeedbackType: "totally-bogus-type",
		Content:      "Needs work",
		Priority:     "high",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	_, err = svc.SubmitTeacherFeedback(ctx, workflow.ID, dto.FeedbackRequest{
		ReviewerID:   "teacher_1",
		FeedbackType: "recommendation",
		Content:      "Needs work",
		Priority:     "bananas",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	// Nothing was persisted and the stage did not advance.
	stored := repo.workflows[workflow.ID]
	assert.Equal(t, models.StageTeacherReview, stored.CurrentStage)
	assert.Nil(t, stored.TeacherFeedback)

	// Same guard on the parent side once the workflow is in parent_validation.
	_, err = svc.SubmitTeacherFeedback(ctx, workflow.ID,
		feedbackReq("teacher_1", models.FeedbackRecommendation, "Needs work", models.PriorityHigh))
	require.NoError(t, err)

	_, err = svc.SubmitParentFeedback(ctx, workflow.ID, dto.FeedbackRequest{
		ReviewerID:   "parent_1",
		FeedbackType: "observation",
		Content:      "Agreed",
		Priority:     "bananas",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	stored = repo.workflows[workflow.ID]
	assert.Equal(t, models.StageParentValidation, stored.CurrentStage)
	assert.Nil(t, stored.ParentFeedback)
}

func TestWorkflowService_UnknownWorkflow(t *testing.T) {
	svc, _, _ := newTestWorkflowService()

	_, err := svc.Status(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestWorkflowService_PendingFor(t *testing.T) {
	svc, _, _ := newTestWorkflowService()
	ctx := context.Background()

	w1, err := svc.SubmitForReview(ctx, "student_001", "rm1")
	require.NoError(t, err)
	w2, err := svc.SubmitForReview(ctx, "student_002", "rm2")
	require.NoError(t, err)

	teacherPending, err := svc.PendingFor(ctx, "teacher_1", models.ReviewerTeacher)
	require.NoError(t, err)
	assert.Len(t, teacherPending, 2)

	// Advance w1 to parent_validation; only student_001's parent sees it.
	_, err = svc.SubmitTeacherFeedback(ctx, w1.ID,
		feedbackReq("teacher_1", models.FeedbackRecommendation, "More practice", models.PriorityMedium))
	require.NoError(t, err)

	parentPending, err := svc.PendingFor(ctx, "parent_1", models.ReviewerParent)
	require.NoError(t, err)
	require.Len(t, parentPending, 1)
	assert.Equal(t, w1.ID, parentPending[0].WorkflowID)
	assert.True(t, parentPending[0].HasTeacherFeedback)

	otherParent, err := svc.PendingFor(ctx, "parent_2", models.ReviewerParent)
	require.NoError(t, err)
	assert.Empty(t, otherParent)

	teacherPending, err = svc.PendingFor(ctx, "teacher_1", models.ReviewerTeacher)
	require.NoError(t, err)
	require.Len(t, teacherPending, 1)
	assert.Equal(t, w2.ID, teacherPending[0].WorkflowID)
}
