package repository

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

func newMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	sqlxdb := sqlx.NewDb(db, "sqlmock")
	return sqlxdb, mock, func() {
		db.Close()
	}
}

func sampleRoadmap() *models.Roadmap {
	start := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	return &models.Roadmap{
		ID:            "rm1",
		StudentID:     "student_001",
		CreatedAt:     start,
		LastUpdated:   start,
		DurationWeeks: 1,
		WeeklyPlans: []models.WeeklyPlan{{
			WeekNumber: 1,
			StartDate:  start,
			EndDate:    start.AddDate(0, 0, 6),
			Tasks: []models.StudyTask{{
				ID:                "task_1_Mathematics_1",
				Title:             "Study Calculus - Mathematics",
				Subject:           models.SubjectMathematics,
				Topic:             "Calculus",
				Priority:          models.PriorityHigh,
				EstimatedDuration: 120,
				DueDate:           start.AddDate(0, 0, 2),
				Status:            models.TaskStatusPending,
			}},
			TotalHours:       2,
			SubjectBreakdown: map[models.Subject]float64{models.SubjectMathematics: 2},
		}},
		OverallGoals:  []string{"Improve Mathematics score from 70 to 90"},
		SuccessMetric: map[string]float64{"Mathematics_improvement": 20},
	}
}

func TestRoadmapRepository_Save(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoadmapRepository(db)

	mock.ExpectExec("INSERT INTO roadmaps").WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.Save(context.Background(), sampleRoadmap())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoadmapRepository_FindByID(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoadmapRepository(db)

	want := sampleRoadmap()
	plans, err := json.Marshal(want.WeeklyPlans)
	require.NoError(t, err)
	goals, err := json.Marshal(want.OverallGoals)
	require.NoError(t, err)
	metrics, err := json.Marshal(want.SuccessMetric)
	require.NoError(t, err)

	rows := sqlmock.NewRows([]string{"id", "student_id", "created_at", "last_updated", "duration_weeks", "weekly_plans", "overall_goals", "success_metrics"}).
		AddRow(want.ID, want.StudentID, want.CreatedAt, want.LastUpdated, want.DurationWeeks, plans, goals, metrics)
	mock.ExpectQuery("SELECT id, student_id, created_at, last_updated, duration_weeks, weekly_plans, overall_goals, success_metrics").
		WithArgs("rm1").
		WillReturnRows(rows)

	got, err := repo.FindByID(context.Background(), "rm1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, want.StudentID, got.StudentID)
	require.Len(t, got.WeeklyPlans, 1)
	assert.Equal(t, "Calculus", got.WeeklyPlans[0].Tasks[0].Topic)
	assert.InDelta(t, 2.0, got.WeeklyPlans[0].SubjectBreakdown[models.SubjectMathematics], 1e-9)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRoadmapRepository_FindByID_Missing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewRoadmapRepository(db)

	mock.ExpectQuery("SELECT id, student_id, created_at").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	got, err := repo.FindByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
