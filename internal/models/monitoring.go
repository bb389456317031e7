package models

import "time"

// ProgressMetrics summarizes task completion for one roadmap week.
type ProgressMetrics struct {
	CompletionRate float64 `json:"completion_rate"`
	AdherenceRate  float64 `json:"adherence_rate"`
	TimeEfficiency float64 `json:"time_efficiency"`
	TotalTasks     int     `json:"total_tasks"`
	CompletedTasks int     `json:"completed_tasks"`
	PendingTasks   int     `json:"pending_tasks"`
	OverdueTasks   int     `json:"overdue_tasks"`
	OnTimeTasks    int     `json:"on_time_tasks"`
}

// SubjectTrend captures improvement and consistency statistics for one subject.
type SubjectTrend struct {
	ImprovementRate float64 `json:"improvement_rate"`
	Consistency     float64 `json:"consistency"`
	RecentAvg       float64 `json:"recent_avg"`
	EarlierAvg      float64 `json:"earlier_avg"`
	Trend           string  `json:"trend"`
}

// PerformanceMetrics aggregates score trends across a student's history.
type PerformanceMetrics struct {
	SubjectTrends      map[Subject]SubjectTrend `json:"subject_trends"`
	OverallAvg         float64                  `json:"overall_avg"`
	OverallConsistency float64                  `json:"overall_consistency"`
	TotalAssessments   int                      `json:"total_assessments"`
	RecentPerformance  []float64                `json:"recent_performance"`
}

// HabitMetrics summarizes study habit patterns over the lookback window.
type HabitMetrics struct {
	AvgDailyHours       float64             `json:"avg_daily_hours"`
	StudyConsistency    float64             `json:"study_consistency"`
	AvgFocusQuality     float64             `json:"avg_focus_quality"`
	SubjectDistribution map[Subject]float64 `json:"subject_distribution"`
	CommonDistractions  map[string]int      `json:"common_distractions"`
	StudyDays           int                 `json:"study_days"`
	TotalStudyHours     float64             `json:"total_study_hours"`
}

// AgentResult holds one agent's analysis output alongside its irregularities.
// Note is set instead of Metrics when the agent failed, was disabled, or had
// insufficient data to analyze.
type AgentResult struct {
	Agent          string      `json:"agent"`
	Metrics        interface{} `json:"metrics,omitempty"`
	Irregularities []string    `json:"irregularities"`
	Note           string      `json:"note,omitempty"`
}

// SystemMetrics represents system level instrumentation captured for diagnostics.
type SystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}

// MonitoringReport is an immutable weekly snapshot appended to the report
// history; it is never mutated after creation.
type MonitoringReport struct {
	ID             string                 `db:"id" json:"id"`
	StudentID      string                 `db:"student_id" json:"student_id"`
	WeekNumber     int                    `db:"week_number" json:"week_number"`
	GeneratedAt    time.Time              `db:"generated_at" json:"generated_at"`
	TasksCompleted int                    `db:"tasks_completed" json:"tasks_completed"`
	TasksPending   int                    `db:"tasks_pending" json:"tasks_pending"`
	TasksOverdue   int                    `db:"tasks_overdue" json:"tasks_overdue"`
	AdherenceRate  float64                `db:"adherence_rate" json:"adherence_rate"`
	Irregularities []string               `json:"irregularities"`
	Recommendations []string              `json:"recommendations"`
	AgentResults   map[string]AgentResult `json:"agent_results"`
}
