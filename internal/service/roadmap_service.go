package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
)

type roadmapCatalog interface {
	TrendsBySubject(subject models.Subject) []models.ExamTrend
	ResourcesBySubject(subject models.Subject) []models.LearningResource
}

type roadmapStudentReader interface {
	FindByID(ctx context.Context, id string) (*models.StudentProfile, error)
	ReplaceSWOT(ctx context.Context, studentID string, swot models.SWOTAnalysis) error
}

type roadmapStore interface {
	Save(ctx context.Context, roadmap *models.Roadmap) error
	FindByID(ctx context.Context, id string) (*models.Roadmap, error)
	FindLatestByStudent(ctx context.Context, studentID string) (*models.Roadmap, error)
}

// RoadmapServiceConfig tunes generation behaviour.
type RoadmapServiceConfig struct {
	DefaultDurationWeeks int
	CacheTTL             time.Duration
	SubjectWeights       map[models.Subject]float64
}

// RoadmapService synthesizes personalized multi-week study roadmaps from a
// student profile and the reference catalogs.
type RoadmapService struct {
	students roadmapStudentReader
	roadmaps roadmapStore
	catalog  roadmapCatalog
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
	cfg      RoadmapServiceConfig
}

// NewRoadmapService wires generator dependencies.
func NewRoadmapService(students roadmapStudentReader, roadmaps roadmapStore, catalog roadmapCatalog, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg RoadmapServiceConfig) *RoadmapService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.DefaultDurationWeeks <= 0 {
		cfg.DefaultDurationWeeks = 12
	}
	if cfg.SubjectWeights == nil {
		cfg.SubjectWeights = defaultSubjectWeights()
	}
	return &RoadmapService{
		students: students,
		roadmaps: roadmaps,
		catalog:  catalog,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		cfg:      cfg,
	}
}

func defaultSubjectWeights() map[models.Subject]float64 {
	return map[models.Subject]float64{
		models.SubjectMathematics: 0.25,
		models.SubjectPhysics:     0.20,
		models.SubjectChemistry:   0.20,
		models.SubjectBiology:     0.15,
		models.SubjectEnglish:     0.20,
	}
}

const fallbackSubjectWeight = 0.2

// Generate builds a fresh roadmap for the student. A new roadmap supersedes
// any previous one; it is never merged into it.
func (s *RoadmapService) Generate(ctx context.Context, studentID string, durationWeeks int) (*models.Roadmap, error) {
	if durationWeeks <= 0 {
		durationWeeks = s.cfg.DefaultDurationWeeks
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	start := s.now()
	swot := s.performSWOT(student)
	student.SWOT = &swot
	if err := s.students.ReplaceSWOT(ctx, student.ID, swot); err != nil {
		return nil, fmt.Errorf("persist swot snapshot: %w", err)
	}

	priorities := s.subjectPriorities(student)

	plans := make([]models.WeeklyPlan, 0, durationWeeks)
	for week := 0; week < durationWeeks; week++ {
		weekStart := start.AddDate(0, 0, week*7)
		weekEnd := weekStart.AddDate(0, 0, 6)
		plans = append(plans, s.buildWeeklyPlan(student, week+1, weekStart, weekEnd, priorities))
	}

	roadmap := &models.Roadmap{
		ID:            uuid.NewString(),
		StudentID:     student.ID,
		CreatedAt:     start,
		LastUpdated:   start,
		DurationWeeks: durationWeeks,
		WeeklyPlans:   plans,
		OverallGoals:  s.overallGoals(student, priorities),
		SuccessMetric: s.successMetrics(student),
	}

	if err := s.roadmaps.Save(ctx, roadmap); err != nil {
		return nil, fmt.Errorf("save roadmap: %w", err)
	}
	if s.metrics != nil {
		s.metrics.ObserveRoadmapGeneration(time.Since(start))
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, roadmapCacheKey(student.ID, "*")); err != nil {
			s.logger.Warn("invalidate roadmap cache", zap.Error(err))
		}
	}

	s.logger.Info("roadmap generated",
		zap.String("student_id", student.ID),
		zap.String("roadmap_id", roadmap.ID),
		zap.Int("weeks", len(plans)),
	)
	return roadmap, nil
}

// Replan adjusts subject priorities from new performance data and regenerates
// every week from the first one whose completion rate is at or below 80%.
// Weeks already above 80% complete are left untouched.
func (s *RoadmapService) Replan(ctx context.Context, roadmapID string, newMetrics []models.PerformanceMetric) (*models.Roadmap, error) {
	roadmap, err := s.roadmaps.FindByID(ctx, roadmapID)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "roadmap not found")
	}
	student, err := s.students.FindByID(ctx, roadmap.StudentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	improvements := performanceImprovements(newMetrics)
	priorities := s.subjectPriorities(student)
	for subject, improvement := range improvements {
		if improvement > 0 {
			priorities[subject] *= 0.8
		} else {
			priorities[subject] *= 1.2
		}
	}

	firstStale := len(roadmap.WeeklyPlans)
	for i, plan := range roadmap.WeeklyPlans {
		if plan.CompletionRate() <= 80 {
			firstStale = i
			break
		}
	}

	for i := firstStale; i < len(roadmap.WeeklyPlans); i++ {
		old := roadmap.WeeklyPlans[i]
		roadmap.WeeklyPlans[i] = s.buildWeeklyPlan(student, old.WeekNumber, old.StartDate, old.EndDate, priorities)
	}
	roadmap.LastUpdated = s.now()

	if err := s.roadmaps.Save(ctx, roadmap); err != nil {
		return nil, fmt.Errorf("save replanned roadmap: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, roadmapCacheKey(roadmap.StudentID, "*")); err != nil {
			s.logger.Warn("invalidate roadmap cache", zap.Error(err))
		}
	}

	s.logger.Info("roadmap replanned",
		zap.String("roadmap_id", roadmap.ID),
		zap.Int("weeks_regenerated", len(roadmap.WeeklyPlans)-firstStale),
	)
	return roadmap, nil
}

// Get returns a roadmap by ID. The boolean reports cache utilisation.
func (s *RoadmapService) Get(ctx context.Context, roadmapID string) (*models.Roadmap, bool, error) {
	key := roadmapCacheKey("", roadmapID)
	var cached models.Roadmap
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return &cached, true, nil
		}
	}
	roadmap, err := s.roadmaps.FindByID(ctx, roadmapID)
	if err != nil {
		return nil, false, err
	}
	if roadmap == nil {
		return nil, false, appErrors.Clone(appErrors.ErrNotFound, "roadmap not found")
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, key, roadmap, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("cache roadmap", zap.Error(err))
		}
	}
	return roadmap, false, nil
}

// UpdateTaskStatus records progress against one roadmap task.
func (s *RoadmapService) UpdateTaskStatus(ctx context.Context, roadmapID, taskID string, status models.TaskStatus, actualDuration *int, notes string) (*models.Roadmap, error) {
	roadmap, err := s.roadmaps.FindByID(ctx, roadmapID)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "roadmap not found")
	}

	found := false
	for i := range roadmap.WeeklyPlans {
		for j := range roadmap.WeeklyPlans[i].Tasks {
			task := &roadmap.WeeklyPlans[i].Tasks[j]
			if task.ID != taskID {
				continue
			}
			task.Status = status
			if actualDuration != nil {
				task.ActualDuration = actualDuration
			}
			if notes != "" {
				task.Notes = notes
			}
			found = true
		}
	}
	if !found {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "task not found in roadmap")
	}

	roadmap.LastUpdated = s.now()
	if err := s.roadmaps.Save(ctx, roadmap); err != nil {
		return nil, fmt.Errorf("save roadmap: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, roadmapCacheKey(roadmap.StudentID, "*")); err != nil {
			s.logger.Warn("invalidate roadmap cache", zap.Error(err))
		}
		if err := s.cache.Invalidate(ctx, roadmapCacheKey("", roadmapID)); err != nil {
			s.logger.Warn("invalidate roadmap cache", zap.Error(err))
		}
	}
	return roadmap, nil
}

// Latest returns the student's most recent roadmap.
func (s *RoadmapService) Latest(ctx context.Context, studentID string) (*models.Roadmap, error) {
	roadmap, err := s.roadmaps.FindLatestByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no roadmap for student")
	}
	return roadmap, nil
}

func (s *RoadmapService) performSWOT(student *models.StudentProfile) models.SWOTAnalysis {
	var swot models.SWOTAnalysis

	for _, subject := range models.AllSubjects() {
		score, ok := student.CurrentScores[subject]
		if !ok {
			continue
		}
		switch {
		case score >= 80:
			swot.Strengths = append(swot.Strengths, fmt.Sprintf("Strong performance in %s", subject))
		case score < 60:
			swot.Weaknesses = append(swot.Weaknesses, fmt.Sprintf("Needs improvement in %s", subject))
		}
	}

	switch student.LearningStyle {
	case "visual":
		swot.Strengths = append(swot.Strengths, "Visual learner - benefits from diagrams and charts")
	case "auditory":
		swot.Strengths = append(swot.Strengths, "Auditory learner - benefits from discussions and lectures")
	}

	for _, subject := range student.WeakSubjects(70) {
		swot.Opportunities = append(swot.Opportunities, fmt.Sprintf("Significant improvement potential in %s", subject))
	}

	if student.AvailableHoursPerDay < 3 {
		swot.Threats = append(swot.Threats, "Limited study time may impact progress")
	}

	if len(swot.Weaknesses) > 0 {
		swot.Recommendations = append(swot.Recommendations, "Focus on weak subjects with additional practice")
	}
	if student.AvailableHoursPerDay < 4 {
		swot.Recommendations = append(swot.Recommendations, "Optimize study schedule for maximum efficiency")
	}

	return swot
}

// subjectPriorities scores each subject by performance gap weighted by exam
// trends, then normalizes by the maximum so results land in [0,1]. If every
// raw priority is non-positive, all priorities are zero.
func (s *RoadmapService) subjectPriorities(student *models.StudentProfile) map[models.Subject]float64 {
	priorities := make(map[models.Subject]float64, len(models.AllSubjects()))

	for _, subject := range models.AllSubjects() {
		current, scored := student.CurrentScores[subject]
		if !scored {
			continue
		}
		target, ok := student.TargetScores[subject]
		if !ok {
			target = 100
		}
		gap := target - current

		trendWeight := 1.0
		if trends := s.catalog.TrendsBySubject(subject); len(trends) > 0 {
			trendWeight = 0
			for _, trend := range trends {
				w := float64(trend.Frequency) * trend.DifficultyLevel / 100
				if w > trendWeight {
					trendWeight = w
				}
			}
		}

		weight, ok := s.cfg.SubjectWeights[subject]
		if !ok {
			weight = fallbackSubjectWeight
		}
		priorities[subject] = math.Max(0, gap*trendWeight*weight)
	}

	maxPriority := 0.0
	for _, p := range priorities {
		if p > maxPriority {
			maxPriority = p
		}
	}
	if maxPriority > 0 {
		for subject := range priorities {
			priorities[subject] /= maxPriority
		}
	}
	return priorities
}

func (s *RoadmapService) buildWeeklyPlan(student *models.StudentProfile, weekNumber int, startDate, endDate time.Time, priorities map[models.Subject]float64) models.WeeklyPlan {
	plan := models.WeeklyPlan{
		WeekNumber:       weekNumber,
		StartDate:        startDate,
		EndDate:          endDate,
		SubjectBreakdown: make(map[models.Subject]float64, len(priorities)),
	}
	for subject := range priorities {
		plan.SubjectBreakdown[subject] = 0
	}

	availableHours := student.AvailableHoursPerDay * 7
	totalPriority := 0.0
	for _, p := range priorities {
		totalPriority += p
	}
	if totalPriority <= 0 {
		return plan
	}

	for _, subject := range sortedSubjects(priorities) {
		priority := priorities[subject]
		subjectHours := priority / totalPriority * availableHours
		plan.SubjectBreakdown[subject] = subjectHours
		plan.Tasks = append(plan.Tasks, s.buildSubjectTasks(subject, subjectHours, weekNumber, startDate)...)
		plan.TotalHours += subjectHours
	}

	return plan
}

// buildSubjectTasks walks the subject's top catalog topics in input order,
// carving up to 2h per task until the budget drops below half an hour.
func (s *RoadmapService) buildSubjectTasks(subject models.Subject, hours float64, weekNumber int, weekStart time.Time) []models.StudyTask {
	trends := s.catalog.TrendsBySubject(subject)
	if len(trends) > 3 {
		trends = trends[:3]
	}
	resources := s.catalog.ResourcesBySubject(subject)

	var tasks []models.StudyTask
	taskHours := 0.0
	counter := 1

	for _, trend := range trends {
		if taskHours >= hours {
			break
		}
		duration := math.Min(2.0, hours-taskHours)
		if duration < 0.5 {
			break
		}

		var attached []models.LearningResource
		for _, resource := range resources {
			if strings.Contains(strings.ToLower(resource.Topic), strings.ToLower(trend.Topic)) {
				attached = append(attached, resource)
				if len(attached) == 2 {
					break
				}
			}
		}

		priority := models.PriorityMedium
		if trend.Frequency > 10 {
			priority = models.PriorityHigh
		}

		tasks = append(tasks, models.StudyTask{
			ID:                fmt.Sprintf("task_%d_%s_%d", weekNumber, subject, counter),
			Title:             fmt.Sprintf("Study %s - %s", trend.Topic, subject),
			Subject:           subject,
			Topic:             trend.Topic,
			Description:       fmt.Sprintf("Focus on %s concepts and practice problems. Difficulty level: %.1f/10", trend.Topic, trend.DifficultyLevel),
			Priority:          priority,
			EstimatedDuration: int(duration * 60),
			DueDate:           weekStart.AddDate(0, 0, counter*2),
			Status:            models.TaskStatusPending,
			Resources:         attached,
		})
		taskHours += duration
		counter++
	}

	return tasks
}

func (s *RoadmapService) overallGoals(student *models.StudentProfile, priorities map[models.Subject]float64) []string {
	var goals []string

	for _, subject := range sortedSubjects(priorities) {
		if priorities[subject] > 0.5 {
			current := student.CurrentScores[subject]
			target, ok := student.TargetScores[subject]
			if !ok {
				target = 100
			}
			goals = append(goals, fmt.Sprintf("Improve %s score from %g to %g", subject, current, target))
		}
	}

	if student.AvailableHoursPerDay < 4 {
		goals = append(goals, "Establish consistent daily study routine")
	}
	if student.LearningStyle == "visual" {
		goals = append(goals, "Utilize visual learning techniques for better retention")
	}

	return goals
}

func (s *RoadmapService) successMetrics(student *models.StudentProfile) map[string]float64 {
	metrics := make(map[string]float64)

	for _, subject := range models.AllSubjects() {
		current, scored := student.CurrentScores[subject]
		if !scored {
			continue
		}
		target, ok := student.TargetScores[subject]
		if !ok {
			target = 100
		}
		metrics[fmt.Sprintf("%s_improvement", subject)] = target - current
	}

	currentAvg := meanOfMap(student.CurrentScores)
	targetAvg := meanOfMap(student.TargetScores)
	metrics["overall_improvement"] = targetAvg - currentAvg

	return metrics
}

// performanceImprovements groups new scores by subject and reports the delta
// between the latest and earliest percentage for subjects with >1 sample.
func performanceImprovements(metrics []models.PerformanceMetric) map[models.Subject]float64 {
	grouped := make(map[models.Subject][]float64)
	for _, metric := range metrics {
		grouped[metric.Subject] = append(grouped[metric.Subject], metric.Percentage())
	}

	improvements := make(map[models.Subject]float64)
	for subject, scores := range grouped {
		if len(scores) > 1 {
			improvements[subject] = scores[len(scores)-1] - scores[0]
		}
	}
	return improvements
}

func sortedSubjects(priorities map[models.Subject]float64) []models.Subject {
	subjects := make([]models.Subject, 0, len(priorities))
	for subject := range priorities {
		subjects = append(subjects, subject)
	}
	sort.Slice(subjects, func(i, j int) bool { return subjects[i] < subjects[j] })
	return subjects
}

func meanOfMap(scores map[models.Subject]float64) float64 {
	if len(scores) == 0 {
		return 0
	}
	total := 0.0
	for _, score := range scores {
		total += score
	}
	return total / float64(len(scores))
}

func roadmapCacheKey(studentID, roadmapID string) string {
	if studentID != "" {
		return fmt.Sprintf("roadmap:%s:%s", studentID, roadmapID)
	}
	return fmt.Sprintf("roadmap:id:%s", roadmapID)
}
