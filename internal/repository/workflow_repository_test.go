package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

func TestWorkflowRepository_SaveNew(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewWorkflowRepository(db)

	now := time.Now()
	workflow := &models.FeedbackWorkflow{
		ID:           "wf1",
		StudentID:    "student_001",
		RoadmapID:    "rm1",
		CurrentStage: models.StageTeacherReview,
		Status:       models.FeedbackStatusPending,
		CreatedAt:    now,
		LastUpdated:  now,
	}

	mock.ExpectExec("INSERT INTO feedback_workflows").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), workflow)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowRepository_FindByID_RestoresDocuments(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewWorkflowRepository(db)

	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	teacherFeedback, err := json.Marshal(models.TeacherFeedback{
		ID:        "fb1",
		TeacherID: "teacher_1",
		StudentID: "student_001",
		RoadmapID: "rm1",
		Type:      models.FeedbackRecommendation,
		Content:   "Needs more practice",
		Priority:  models.PriorityHigh,
		CreatedAt: now,
	})
	require.NoError(t, err)
	resolution, err := json.Marshal(models.Resolution{
		Strategy: models.StrategyDirectIntegration,
		Plan: &models.DirectIntegrationPlan{
			ImplementationSteps: []string{"Update roadmap based on feedback"},
		},
	})
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "student_id", "roadmap_id", "current_stage", "status", "teacher_feedback", "parent_feedback", "resolution", "created_at", "last_updated"}).
		AddRow("wf1", "student_001", "rm1", string(models.StageImplementation), string(models.FeedbackStatusApproved),
			string(teacherFeedback), nil, string(resolution), now, now)
	mock.ExpectQuery("SELECT id, student_id, roadmap_id, current_stage").
		WithArgs("wf1").
		WillReturnRows(rows)

	workflow, err := repo.FindByID(context.Background(), "wf1")
	require.NoError(t, err)
	require.NotNil(t, workflow)

	assert.Equal(t, models.StageImplementation, workflow.CurrentStage)
	require.NotNil(t, workflow.TeacherFeedback)
	assert.Equal(t, "Needs more practice", workflow.TeacherFeedback.Content)
	assert.Nil(t, workflow.ParentFeedback)
	require.NotNil(t, workflow.Resolution)
	assert.Equal(t, models.StrategyDirectIntegration, workflow.Resolution.Strategy)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWorkflowRepository_FindByStage(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewWorkflowRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "student_id", "roadmap_id", "current_stage", "status", "teacher_feedback", "parent_feedback", "resolution", "created_at", "last_updated"}).
		AddRow("wf1", "student_001", "rm1", string(models.StageTeacherReview), string(models.FeedbackStatusPending), nil, nil, nil, now, now).
		AddRow("wf2", "student_002", "rm2", string(models.StageTeacherReview), string(models.FeedbackStatusPending), nil, nil, nil, now, now)
	mock.ExpectQuery("SELECT id, student_id, roadmap_id, current_stage").
		WithArgs(string(models.StageTeacherReview)).
		WillReturnRows(rows)

	workflows, err := repo.FindByStage(context.Background(), models.StageTeacherReview)
	require.NoError(t, err)
	assert.Len(t, workflows, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
