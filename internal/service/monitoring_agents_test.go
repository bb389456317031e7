package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

func intPtr(v int) *int { return &v }

func monitoringFixture(now time.Time) MonitoringContext {
	tasks := []models.StudyTask{
		{ID: "t1", Subject: models.SubjectMathematics, EstimatedDuration: 60, Status: models.TaskStatusCompleted, ActualDuration: intPtr(60)},
		{ID: "t2", Subject: models.SubjectMathematics, EstimatedDuration: 60, Status: models.TaskStatusCompleted, ActualDuration: intPtr(90)},
		{ID: "t3", Subject: models.SubjectPhysics, EstimatedDuration: 60, Status: models.TaskStatusPending},
		{ID: "t4", Subject: models.SubjectPhysics, EstimatedDuration: 60, Status: models.TaskStatusOverdue},
	}
	roadmap := &models.Roadmap{
		ID:        "rm1",
		StudentID: "student_001",
		WeeklyPlans: []models.WeeklyPlan{
			{WeekNumber: 1, Tasks: tasks},
		},
	}
	return MonitoringContext{
		StudentID:    "student_001",
		Roadmap:      roadmap,
		CurrentWeek:  1,
		Now:          now,
		LookbackDays: 14,
	}
}

func TestProgressAgent_Analyze(t *testing.T) {
	agent := NewProgressAgent()
	mctx := monitoringFixture(time.Now())

	raw, err := agent.Analyze(mctx)
	require.NoError(t, err)
	metrics := raw.(models.ProgressMetrics)

	assert.Equal(t, 4, metrics.TotalTasks)
	assert.Equal(t, 2, metrics.CompletedTasks)
	assert.Equal(t, 1, metrics.PendingTasks)
	assert.Equal(t, 1, metrics.OverdueTasks)
	assert.InDelta(t, 0.5, metrics.CompletionRate, 1e-9)
	// t1 within 1.2x, t2 at 1.5x is late.
	assert.Equal(t, 1, metrics.OnTimeTasks)
	assert.InDelta(t, 0.25, metrics.AdherenceRate, 1e-9)
	assert.InDelta(t, 150.0/240.0, metrics.TimeEfficiency, 1e-9)
}

func TestProgressAgent_DetectIrregularities(t *testing.T) {
	agent := NewProgressAgent()
	mctx := monitoringFixture(time.Now())

	irregularities := agent.DetectIrregularities(mctx)
	joined := ""
	for _, ir := range irregularities {
		joined += ir + "\n"
	}
	assert.Contains(t, joined, "Low completion rate")
	assert.Contains(t, joined, "Low adherence rate")
	assert.Contains(t, joined, "1 overdue tasks detected")
}

func TestProgressAgent_WeekOutOfRange(t *testing.T) {
	agent := NewProgressAgent()
	mctx := monitoringFixture(time.Now())
	mctx.CurrentWeek = 9

	_, err := agent.Analyze(mctx)
	assert.ErrorIs(t, err, errInsufficientData)
}

func TestPerformanceAgent_Trends(t *testing.T) {
	agent := NewPerformanceAgent()
	mctx := MonitoringContext{
		PerformanceHistory: []models.PerformanceMetric{
			{Subject: models.SubjectMathematics, Score: 60, MaxScore: 100},
			{Subject: models.SubjectMathematics, Score: 70, MaxScore: 100},
			{Subject: models.SubjectMathematics, Score: 80, MaxScore: 100},
			{Subject: models.SubjectPhysics, Score: 80, MaxScore: 100},
			{Subject: models.SubjectPhysics, Score: 60, MaxScore: 100},
		},
	}

	raw, err := agent.Analyze(mctx)
	require.NoError(t, err)
	metrics := raw.(models.PerformanceMetrics)

	math := metrics.SubjectTrends[models.SubjectMathematics]
	assert.Equal(t, "improving", math.Trend)
	assert.InDelta(t, 70, math.RecentAvg, 1e-9)
	assert.InDelta(t, 60, math.EarlierAvg, 1e-9)

	physics := metrics.SubjectTrends[models.SubjectPhysics]
	assert.Equal(t, "declining", physics.Trend)
	assert.Less(t, physics.ImprovementRate, -0.1)

	irregularities := agent.DetectIrregularities(mctx)
	found := false
	for _, ir := range irregularities {
		if ir == "Performance declining in Physics: -25.0% change" {
			found = true
		}
	}
	assert.True(t, found, "expected physics decline flag, got %v", irregularities)
}

func TestPerformanceAgent_NoHistory(t *testing.T) {
	agent := NewPerformanceAgent()

	_, err := agent.Analyze(MonitoringContext{})
	assert.ErrorIs(t, err, errInsufficientData)
	assert.Equal(t, []string{"No performance history available"}, agent.DetectIrregularities(MonitoringContext{}))
}

func TestHabitAgent_Analyze(t *testing.T) {
	agent := NewHabitAgent()
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	habits := []models.StudyHabit{
		{Subject: models.SubjectMathematics, HoursStudied: 2, Date: now.AddDate(0, 0, -1), FocusQuality: 7, Distractions: []string{"phone"}},
		{Subject: models.SubjectPhysics, HoursStudied: 1, Date: now.AddDate(0, 0, -1), FocusQuality: 5, Distractions: []string{"phone"}},
		{Subject: models.SubjectMathematics, HoursStudied: 3, Date: now.AddDate(0, 0, -2), FocusQuality: 8},
		// Outside 14-day window, must be ignored.
		{Subject: models.SubjectChemistry, HoursStudied: 10, Date: now.AddDate(0, 0, -30), FocusQuality: 2},
	}

	raw, err := agent.Analyze(MonitoringContext{StudyHabits: habits, Now: now, LookbackDays: 14})
	require.NoError(t, err)
	metrics := raw.(models.HabitMetrics)

	assert.Equal(t, 2, metrics.StudyDays)
	assert.InDelta(t, 3.0, metrics.AvgDailyHours, 1e-9)
	assert.InDelta(t, 2.0/14.0, metrics.StudyConsistency, 1e-9)
	assert.InDelta(t, (7+5+8)/3.0, metrics.AvgFocusQuality, 1e-9)
	assert.InDelta(t, 5, metrics.SubjectDistribution[models.SubjectMathematics], 1e-9)
	assert.Equal(t, 2, metrics.CommonDistractions["phone"])
	assert.NotContains(t, metrics.SubjectDistribution, models.SubjectChemistry)
}

func TestHabitAgent_FrequentDistraction(t *testing.T) {
	agent := NewHabitAgent()
	now := time.Now()

	var habits []models.StudyHabit
	for i := 0; i < 6; i++ {
		habits = append(habits, models.StudyHabit{
			Subject:      models.SubjectMathematics,
			HoursStudied: 4,
			Date:         now.AddDate(0, 0, -i),
			FocusQuality: 8,
			Distractions: []string{"social media"},
		})
	}

	irregularities := agent.DetectIrregularities(MonitoringContext{StudyHabits: habits, Now: now, LookbackDays: 14})
	assert.Contains(t, irregularities, "Frequent distraction: social media (6 times)")
}

func TestHabitAgent_NoRecentData(t *testing.T) {
	agent := NewHabitAgent()
	now := time.Now()

	habits := []models.StudyHabit{
		{Subject: models.SubjectMathematics, HoursStudied: 2, Date: now.AddDate(0, 0, -60), FocusQuality: 7},
	}

	_, err := agent.Analyze(MonitoringContext{StudyHabits: habits, Now: now, LookbackDays: 14})
	assert.ErrorIs(t, err, errInsufficientData)
}
