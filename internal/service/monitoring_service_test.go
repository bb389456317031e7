package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

type fakeReportRepo struct {
	inserted []models.MonitoringReport
}

func (f *fakeReportRepo) Insert(_ context.Context, report *models.MonitoringReport) error {
	f.inserted = append(f.inserted, *report)
	return nil
}

func (f *fakeReportRepo) RecentByStudent(_ context.Context, studentID string, limit int) ([]models.MonitoringReport, error) {
	var out []models.MonitoringReport
	for i := len(f.inserted) - 1; i >= 0 && len(out) < limit; i-- {
		if f.inserted[i].StudentID == studentID {
			out = append(out, f.inserted[i])
		}
	}
	return out, nil
}

func monitoredStudent(now time.Time) *models.StudentProfile {
	student := testStudent()
	student.PerformanceHistory = []models.PerformanceMetric{
		{Subject: models.SubjectPhysics, Score: 80, MaxScore: 100, Date: now.AddDate(0, 0, -20)},
		{Subject: models.SubjectPhysics, Score: 55, MaxScore: 100, Date: now.AddDate(0, 0, -2)},
	}
	student.StudyHabits = []models.StudyHabit{
		{Subject: models.SubjectMathematics, HoursStudied: 1, Date: now.AddDate(0, 0, -1), FocusQuality: 4},
		{Subject: models.SubjectPhysics, HoursStudied: 1, Date: now.AddDate(0, 0, -3), FocusQuality: 5},
	}
	return student
}

func newTestMonitoringService(t *testing.T, now time.Time) (*MonitoringService, *fakeReportRepo, *fakeRoadmapRepo) {
	t.Helper()
	students := newFakeStudentRepo(monitoredStudent(now))
	roadmaps := newFakeRoadmapRepo()
	reports := &fakeReportRepo{}

	gen := newTestRoadmapService(students, roadmaps)
	_, err := gen.Generate(context.Background(), "student_001", 4)
	require.NoError(t, err)

	svc := NewMonitoringService(students, roadmaps, reports, nil, nil, zap.NewNop(), MonitoringServiceConfig{})
	svc.now = func() time.Time { return now }
	return svc, reports, roadmaps
}

func TestMonitoringService_GenerateWeeklyReport(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	svc, reports, _ := newTestMonitoringService(t, now)

	report, err := svc.GenerateWeeklyReport(context.Background(), "student_001", 1)
	require.NoError(t, err)

	assert.Equal(t, "student_001", report.StudentID)
	assert.Equal(t, 1, report.WeekNumber)
	assert.Equal(t, now, report.GeneratedAt)
	require.Len(t, reports.inserted, 1)

	// All three agents reported.
	assert.Contains(t, report.AgentResults, "progress")
	assert.Contains(t, report.AgentResults, "performance")
	assert.Contains(t, report.AgentResults, "habits")

	// Nothing completed yet: progress flags plus habit flags surface.
	assert.NotEmpty(t, report.Irregularities)
	assert.Contains(t, report.Recommendations, "Consider breaking down large tasks into smaller, manageable chunks")
	assert.Contains(t, report.Recommendations, "Focus on additional practice and review for Physics")
	assert.Contains(t, report.Recommendations, "Increase daily study time gradually to meet learning goals")
	assert.Contains(t, report.Recommendations, "Improve study environment and minimize distractions")
}

func TestMonitoringService_DisabledAgentContributesNote(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newTestMonitoringService(t, now)

	assert.False(t, svc.ToggleAgent("habits"))
	report, err := svc.GenerateWeeklyReport(context.Background(), "student_001", 1)
	require.NoError(t, err)

	result := report.AgentResults["habits"]
	assert.Equal(t, "agent disabled", result.Note)
	assert.Empty(t, result.Irregularities)
	assert.Nil(t, result.Metrics)

	for _, ir := range report.Irregularities {
		assert.NotContains(t, ir, "study")
	}
}

func TestMonitoringService_InvalidWeekStillReports(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newTestMonitoringService(t, now)

	report, err := svc.GenerateWeeklyReport(context.Background(), "student_001", 99)
	require.NoError(t, err)

	result := report.AgentResults["progress"]
	assert.Contains(t, result.Note, "insufficient data")
	assert.Zero(t, report.TasksCompleted)
}

func TestMonitoringService_ToggleAgent(t *testing.T) {
	now := time.Now()
	svc, _, _ := newTestMonitoringService(t, now)

	status := svc.AgentStatus()
	assert.True(t, status["progress"])
	assert.True(t, status["performance"])
	assert.True(t, status["habits"])

	assert.False(t, svc.ToggleAgent("progress"))
	assert.True(t, svc.ToggleAgent("progress"))
	assert.False(t, svc.ToggleAgent("unknown-agent"))
}

func TestMonitoringService_RecentReports(t *testing.T) {
	now := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	svc, _, _ := newTestMonitoringService(t, now)

	for week := 1; week <= 3; week++ {
		svc.now = func() time.Time { return now.AddDate(0, 0, week*7) }
		_, err := svc.GenerateWeeklyReport(context.Background(), "student_001", week)
		require.NoError(t, err)
	}

	reports, err := svc.RecentReports(context.Background(), "student_001", 2)
	require.NoError(t, err)
	require.Len(t, reports, 2)
	assert.Equal(t, 3, reports[0].WeekNumber)
	assert.Equal(t, 2, reports[1].WeekNumber)
}
