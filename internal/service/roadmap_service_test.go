package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sukanyaghosh74/sstudize-task/internal/catalog"
	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

type fakeStudentRepo struct {
	students map[string]*models.StudentProfile
	swots    map[string]models.SWOTAnalysis
}

func newFakeStudentRepo(students ...*models.StudentProfile) *fakeStudentRepo {
	repo := &fakeStudentRepo{
		students: make(map[string]*models.StudentProfile),
		swots:    make(map[string]models.SWOTAnalysis),
	}
	for _, s := range students {
		repo.students[s.ID] = s
	}
	return repo
}

func (f *fakeStudentRepo) FindByID(_ context.Context, id string) (*models.StudentProfile, error) {
	return f.students[id], nil
}

func (f *fakeStudentRepo) ReplaceSWOT(_ context.Context, studentID string, swot models.SWOTAnalysis) error {
	f.swots[studentID] = swot
	return nil
}

type fakeRoadmapRepo struct {
	saved map[string]*models.Roadmap
}

func newFakeRoadmapRepo() *fakeRoadmapRepo {
	return &fakeRoadmapRepo{saved: make(map[string]*models.Roadmap)}
}

func (f *fakeRoadmapRepo) Save(_ context.Context, roadmap *models.Roadmap) error {
	f.saved[roadmap.ID] = roadmap
	return nil
}

func (f *fakeRoadmapRepo) FindByID(_ context.Context, id string) (*models.Roadmap, error) {
	return f.saved[id], nil
}

func (f *fakeRoadmapRepo) FindLatestByStudent(_ context.Context, studentID string) (*models.Roadmap, error) {
	var latest *models.Roadmap
	for _, r := range f.saved {
		if r.StudentID != studentID {
			continue
		}
		if latest == nil || r.CreatedAt.After(latest.CreatedAt) {
			latest = r
		}
	}
	return latest, nil
}

func defaultCatalogs() *catalog.Catalogs {
	return &catalog.Catalogs{
		ExamTrends:        catalog.DefaultExamTrends(),
		LearningResources: catalog.DefaultLearningResources(),
	}
}

func testStudent() *models.StudentProfile {
	return &models.StudentProfile{
		ID:    "student_001",
		Name:  "Aarav Sharma",
		Age:   17,
		Grade: "12th",
		CurrentScores: map[models.Subject]float64{
			models.SubjectMathematics: 70,
			models.SubjectPhysics:     65,
			models.SubjectChemistry:   60,
		},
		TargetScores: map[models.Subject]float64{
			models.SubjectMathematics: 90,
			models.SubjectPhysics:     85,
			models.SubjectChemistry:   80,
		},
		LearningStyle:        "visual",
		AvailableHoursPerDay: 4,
	}
}

func newTestRoadmapService(students *fakeStudentRepo, roadmaps *fakeRoadmapRepo) *RoadmapService {
	svc := NewRoadmapService(students, roadmaps, defaultCatalogs(), nil, nil, zap.NewNop(), RoadmapServiceConfig{
		DefaultDurationWeeks: 12,
	})
	svc.now = func() time.Time { return time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC) }
	return svc
}

func TestRoadmapService_Generate(t *testing.T) {
	students := newFakeStudentRepo(testStudent())
	roadmaps := newFakeRoadmapRepo()
	svc := newTestRoadmapService(students, roadmaps)

	roadmap, err := svc.Generate(context.Background(), "student_001", 8)
	require.NoError(t, err)
	require.NotNil(t, roadmap)

	assert.Equal(t, "student_001", roadmap.StudentID)
	assert.Equal(t, 8, roadmap.DurationWeeks)
	require.Len(t, roadmap.WeeklyPlans, 8)

	for i, plan := range roadmap.WeeklyPlans {
		assert.Equal(t, i+1, plan.WeekNumber)
		wantStart := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC).AddDate(0, 0, i*7)
		assert.Equal(t, wantStart, plan.StartDate)
		assert.Equal(t, wantStart.AddDate(0, 0, 6), plan.EndDate)
	}

	// Persisted and SWOT snapshot stored.
	assert.Contains(t, roadmaps.saved, roadmap.ID)
	swot, ok := students.swots["student_001"]
	require.True(t, ok)
	assert.Contains(t, swot.Strengths, "Visual learner - benefits from diagrams and charts")
	assert.Contains(t, swot.Opportunities, "Significant improvement potential in Chemistry")
	assert.Contains(t, swot.Opportunities, "Significant improvement potential in Physics")
}

func TestRoadmapService_Generate_StudentMissing(t *testing.T) {
	svc := newTestRoadmapService(newFakeStudentRepo(), newFakeRoadmapRepo())

	_, err := svc.Generate(context.Background(), "nope", 4)
	assert.Error(t, err)
}

func TestRoadmapService_SubjectPriorities_Normalized(t *testing.T) {
	svc := newTestRoadmapService(newFakeStudentRepo(), newFakeRoadmapRepo())

	priorities := svc.subjectPriorities(testStudent())

	maxPriority := 0.0
	for subject, p := range priorities {
		assert.GreaterOrEqual(t, p, 0.0, "priority for %s", subject)
		assert.LessOrEqual(t, p, 1.0, "priority for %s", subject)
		if p > maxPriority {
			maxPriority = p
		}
	}
	assert.InDelta(t, 1.0, maxPriority, 1e-9)
}

func TestRoadmapService_SubjectPriorities_NoGaps(t *testing.T) {
	svc := newTestRoadmapService(newFakeStudentRepo(), newFakeRoadmapRepo())

	student := testStudent()
	student.CurrentScores = map[models.Subject]float64{
		models.SubjectMathematics: 100,
		models.SubjectPhysics:     100,
		models.SubjectChemistry:   100,
		models.SubjectBiology:     100,
		models.SubjectEnglish:     100,
	}
	student.TargetScores = map[models.Subject]float64{
		models.SubjectMathematics: 100,
		models.SubjectPhysics:     100,
		models.SubjectChemistry:   100,
		models.SubjectBiology:     100,
		models.SubjectEnglish:     100,
	}

	priorities := svc.subjectPriorities(student)
	for subject, p := range priorities {
		assert.Zero(t, p, "priority for %s", subject)
	}
}

func TestRoadmapService_WeeklyPlan_HoursBudget(t *testing.T) {
	students := newFakeStudentRepo(testStudent())
	svc := newTestRoadmapService(students, newFakeRoadmapRepo())

	roadmap, err := svc.Generate(context.Background(), "student_001", 4)
	require.NoError(t, err)

	budget := 4.0 * 7
	for _, plan := range roadmap.WeeklyPlans {
		assert.LessOrEqual(t, plan.TotalHours, budget+1e-9)

		breakdownTotal := 0.0
		for _, hours := range plan.SubjectBreakdown {
			breakdownTotal += hours
		}
		assert.InDelta(t, plan.TotalHours, breakdownTotal, 1e-9)

		for _, task := range plan.Tasks {
			assert.GreaterOrEqual(t, task.EstimatedDuration, 30, "task %s", task.ID)
			assert.LessOrEqual(t, task.EstimatedDuration, 120, "task %s", task.ID)
			assert.Equal(t, models.TaskStatusPending, task.Status)
			assert.LessOrEqual(t, len(task.Resources), 2)
			assert.True(t, task.DueDate.After(plan.StartDate))
		}
	}
}

func TestRoadmapService_TaskPriorityFollowsFrequency(t *testing.T) {
	students := newFakeStudentRepo(testStudent())
	svc := newTestRoadmapService(students, newFakeRoadmapRepo())

	roadmap, err := svc.Generate(context.Background(), "student_001", 1)
	require.NoError(t, err)

	trendFreq := make(map[string]int)
	for _, trend := range catalog.DefaultExamTrends() {
		trendFreq[string(trend.Subject)+"/"+trend.Topic] = trend.Frequency
	}

	for _, task := range roadmap.WeeklyPlans[0].Tasks {
		freq, ok := trendFreq[string(task.Subject)+"/"+task.Topic]
		require.True(t, ok, "task topic %s not in catalog", task.Topic)
		if freq > 10 {
			assert.Equal(t, models.PriorityHigh, task.Priority, "task %s", task.ID)
		} else {
			assert.Equal(t, models.PriorityMedium, task.Priority, "task %s", task.ID)
		}
	}
}

func TestRoadmapService_ZeroPriorityWeekIsEmpty(t *testing.T) {
	student := testStudent()
	student.CurrentScores = map[models.Subject]float64{models.SubjectMathematics: 100}
	student.TargetScores = map[models.Subject]float64{models.SubjectMathematics: 100}
	for _, subject := range models.AllSubjects() {
		if subject == models.SubjectMathematics {
			continue
		}
		student.CurrentScores[subject] = 100
		student.TargetScores[subject] = 100
	}

	students := newFakeStudentRepo(student)
	svc := newTestRoadmapService(students, newFakeRoadmapRepo())

	roadmap, err := svc.Generate(context.Background(), student.ID, 2)
	require.NoError(t, err)

	for _, plan := range roadmap.WeeklyPlans {
		assert.Empty(t, plan.Tasks)
		assert.Zero(t, plan.TotalHours)
	}
}

func TestRoadmapService_Replan(t *testing.T) {
	students := newFakeStudentRepo(testStudent())
	roadmaps := newFakeRoadmapRepo()
	svc := newTestRoadmapService(students, roadmaps)

	roadmap, err := svc.Generate(context.Background(), "student_001", 4)
	require.NoError(t, err)

	// Week 1 essentially done; weeks 2+ should be rebuilt.
	for i := range roadmap.WeeklyPlans[0].Tasks {
		roadmap.WeeklyPlans[0].Tasks[i].Status = models.TaskStatusCompleted
	}
	require.Greater(t, roadmap.WeeklyPlans[0].CompletionRate(), 80.0)
	frozenWeek := roadmap.WeeklyPlans[0].Snapshot()

	// Declining chemistry scores should raise its priority.
	newMetrics := []models.PerformanceMetric{
		{Subject: models.SubjectChemistry, Score: 70, MaxScore: 100, Date: time.Now().AddDate(0, 0, -10)},
		{Subject: models.SubjectChemistry, Score: 55, MaxScore: 100, Date: time.Now()},
	}

	updated, err := svc.Replan(context.Background(), roadmap.ID, newMetrics)
	require.NoError(t, err)

	// Completed week untouched.
	assert.Equal(t, len(frozenWeek.Tasks), len(updated.WeeklyPlans[0].Tasks))
	for i, task := range updated.WeeklyPlans[0].Tasks {
		assert.Equal(t, frozenWeek.Tasks[i].Status, task.Status)
	}

	// Regenerated weeks come back with a clean slate.
	for _, plan := range updated.WeeklyPlans[1:] {
		for _, task := range plan.Tasks {
			assert.Equal(t, models.TaskStatusPending, task.Status)
		}
	}

	// Deteriorating subject gets a larger share than before.
	var before, after float64
	for _, p := range roadmaps.saved[roadmap.ID].WeeklyPlans[1:2] {
		after = p.SubjectBreakdown[models.SubjectChemistry]
	}
	before = frozenWeek.SubjectBreakdown[models.SubjectChemistry]
	assert.Greater(t, after, before)
}

func TestRoadmapService_SuccessMetrics(t *testing.T) {
	svc := newTestRoadmapService(newFakeStudentRepo(), newFakeRoadmapRepo())

	metrics := svc.successMetrics(testStudent())
	assert.InDelta(t, 20, metrics["Mathematics_improvement"], 1e-9)
	assert.InDelta(t, 20, metrics["Chemistry_improvement"], 1e-9)
	assert.InDelta(t, 20, metrics["overall_improvement"], 1e-9)
}

func TestPerformanceImprovements(t *testing.T) {
	metrics := []models.PerformanceMetric{
		{Subject: models.SubjectPhysics, Score: 60, MaxScore: 100},
		{Subject: models.SubjectPhysics, Score: 75, MaxScore: 100},
		{Subject: models.SubjectBiology, Score: 40, MaxScore: 50},
	}

	improvements := performanceImprovements(metrics)
	assert.InDelta(t, 15, improvements[models.SubjectPhysics], 1e-9)
	_, ok := improvements[models.SubjectBiology]
	assert.False(t, ok, "single sample must not report an improvement")
}
