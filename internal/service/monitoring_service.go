package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
)

type monitoringStudentReader interface {
	FindByID(ctx context.Context, id string) (*models.StudentProfile, error)
}

type monitoringRoadmapReader interface {
	FindLatestByStudent(ctx context.Context, studentID string) (*models.Roadmap, error)
}

type reportStore interface {
	Insert(ctx context.Context, report *models.MonitoringReport) error
	RecentByStudent(ctx context.Context, studentID string, limit int) ([]models.MonitoringReport, error)
}

// MonitoringServiceConfig tunes report generation.
type MonitoringServiceConfig struct {
	CacheTTL       time.Duration
	RecentReports  int
	LookbackDays   int
	EscalationTrip int
}

// MonitoringService coordinates the monitoring agents over one shared
// read-only context and assembles weekly reports. A failing or disabled
// agent contributes a diagnostic note; it never aborts the report.
type MonitoringService struct {
	students monitoringStudentReader
	roadmaps monitoringRoadmapReader
	reports  reportStore
	cache    *CacheService
	metrics  *MetricsService
	logger   *zap.Logger
	now      func() time.Time
	cfg      MonitoringServiceConfig

	mu     sync.RWMutex
	agents []MonitoringAgent
	active map[string]bool
}

// NewMonitoringService registers the three standard agents.
func NewMonitoringService(students monitoringStudentReader, roadmaps monitoringRoadmapReader, reports reportStore, cache *CacheService, metrics *MetricsService, logger *zap.Logger, cfg MonitoringServiceConfig) *MonitoringService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.RecentReports <= 0 {
		cfg.RecentReports = 5
	}
	if cfg.LookbackDays <= 0 {
		cfg.LookbackDays = 14
	}
	if cfg.EscalationTrip <= 0 {
		cfg.EscalationTrip = 5
	}
	agents := []MonitoringAgent{NewProgressAgent(), NewPerformanceAgent(), NewHabitAgent()}
	active := make(map[string]bool, len(agents))
	for _, agent := range agents {
		active[agent.ID()] = true
	}
	return &MonitoringService{
		students: students,
		roadmaps: roadmaps,
		reports:  reports,
		cache:    cache,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
		cfg:      cfg,
		agents:   agents,
		active:   active,
	}
}

// GenerateWeeklyReport runs all active agents for the given week of the
// student's latest roadmap and persists one immutable report.
func (s *MonitoringService) GenerateWeeklyReport(ctx context.Context, studentID string, currentWeek int) (*models.MonitoringReport, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	roadmap, err := s.roadmaps.FindLatestByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no roadmap for student")
	}

	mctx := MonitoringContext{
		StudentID:          student.ID,
		Roadmap:            roadmap,
		CurrentWeek:        currentWeek,
		PerformanceHistory: student.PerformanceHistory,
		StudyHabits:        student.StudyHabits,
		Now:                s.now(),
		LookbackDays:       s.cfg.LookbackDays,
	}

	agentResults := make(map[string]models.AgentResult)
	var irregularities []string

	s.mu.RLock()
	agents := append([]MonitoringAgent(nil), s.agents...)
	active := make(map[string]bool, len(s.active))
	for id, on := range s.active {
		active[id] = on
	}
	s.mu.RUnlock()

	for _, agent := range agents {
		result := models.AgentResult{Agent: agent.Name()}
		if !active[agent.ID()] {
			result.Note = "agent disabled"
			agentResults[agent.ID()] = result
			continue
		}

		metrics, err := agent.Analyze(mctx)
		switch {
		case errors.Is(err, errInsufficientData):
			result.Note = err.Error()
		case err != nil:
			s.logger.Error("monitoring agent failed",
				zap.String("agent", agent.ID()),
				zap.Error(err),
			)
			result.Note = fmt.Sprintf("agent error: %v", err)
		default:
			result.Metrics = metrics
			result.Irregularities = agent.DetectIrregularities(mctx)
			irregularities = append(irregularities, result.Irregularities...)
		}
		agentResults[agent.ID()] = result
	}

	report := &models.MonitoringReport{
		ID:              uuid.NewString(),
		StudentID:       student.ID,
		WeekNumber:      currentWeek,
		GeneratedAt:     mctx.Now,
		AdherenceRate:   0,
		Irregularities:  irregularities,
		Recommendations: s.recommendations(agentResults, len(irregularities)),
		AgentResults:    agentResults,
	}
	if progress, ok := agentResults["progress"].Metrics.(models.ProgressMetrics); ok {
		report.TasksCompleted = progress.CompletedTasks
		report.TasksPending = progress.PendingTasks
		report.TasksOverdue = progress.OverdueTasks
		report.AdherenceRate = progress.AdherenceRate
	}

	if err := s.reports.Insert(ctx, report); err != nil {
		return nil, fmt.Errorf("save monitoring report: %w", err)
	}
	if s.metrics != nil {
		s.metrics.RecordReportGenerated()
	}
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, reportCacheKey(student.ID)+":*"); err != nil {
			s.logger.Warn("invalidate report cache", zap.Error(err))
		}
	}

	s.logger.Info("weekly report generated",
		zap.String("student_id", student.ID),
		zap.Int("week", currentWeek),
		zap.Int("irregularities", len(irregularities)),
	)
	return report, nil
}

// recommendations maps aggregated agent conditions to advice strings.
func (s *MonitoringService) recommendations(results map[string]models.AgentResult, irregularityCount int) []string {
	var recs []string

	if progress, ok := results["progress"].Metrics.(models.ProgressMetrics); ok {
		if progress.CompletionRate < 0.8 {
			recs = append(recs, "Consider breaking down large tasks into smaller, manageable chunks")
		}
		if progress.AdherenceRate < 0.7 {
			recs = append(recs, "Improve time management by setting realistic deadlines and using timers")
		}
	}

	if performance, ok := results["performance"].Metrics.(models.PerformanceMetrics); ok {
		for _, subject := range models.AllSubjects() {
			if trend, ok := performance.SubjectTrends[subject]; ok && trend.ImprovementRate < -0.1 {
				recs = append(recs, fmt.Sprintf("Focus on additional practice and review for %s", subject))
			}
		}
	}

	if habits, ok := results["habits"].Metrics.(models.HabitMetrics); ok {
		if habits.AvgDailyHours < 2 {
			recs = append(recs, "Increase daily study time gradually to meet learning goals")
		}
		if habits.AvgFocusQuality < 6 {
			recs = append(recs, "Improve study environment and minimize distractions")
		}
	}

	if irregularityCount > s.cfg.EscalationTrip {
		recs = append(recs, "Consider scheduling a consultation with academic advisor")
	}
	return recs
}

// RecentReports returns the newest reports for a student, most recent first.
func (s *MonitoringService) RecentReports(ctx context.Context, studentID string, limit int) ([]models.MonitoringReport, error) {
	if limit <= 0 {
		limit = s.cfg.RecentReports
	}

	key := reportCacheKey(studentID) + fmt.Sprintf(":%d", limit)
	var cached []models.MonitoringReport
	if s.cache != nil {
		if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
			return cached, nil
		}
	}

	reports, err := s.reports.RecentByStudent(ctx, studentID, limit)
	if err != nil {
		return nil, err
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].GeneratedAt.After(reports[j].GeneratedAt) })

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, reports, s.cfg.CacheTTL); err != nil {
			s.logger.Warn("cache reports", zap.Error(err))
		}
	}
	return reports, nil
}

// AgentStatus reports each registered agent's active flag.
func (s *MonitoringService) AgentStatus() map[string]bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	status := make(map[string]bool, len(s.active))
	for id, on := range s.active {
		status[id] = on
	}
	return status
}

// ToggleAgent flips an agent's active flag and returns the new state.
// Unknown agent IDs report false without side effects.
func (s *MonitoringService) ToggleAgent(agentID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.active[agentID]; !ok {
		return false
	}
	s.active[agentID] = !s.active[agentID]
	return s.active[agentID]
}

func reportCacheKey(studentID string) string {
	return fmt.Sprintf("reports:%s", studentID)
}
