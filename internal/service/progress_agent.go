package service

import (
	"fmt"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

// ProgressAgent tracks task completion against the current roadmap week.
type ProgressAgent struct {
	completionThreshold float64
	adherenceThreshold  float64
	timeDeviation       float64
}

func NewProgressAgent() *ProgressAgent {
	return &ProgressAgent{
		completionThreshold: 0.8,
		adherenceThreshold:  0.7,
		timeDeviation:       0.3,
	}
}

func (a *ProgressAgent) ID() string   { return "progress" }
func (a *ProgressAgent) Name() string { return "Progress Tracking Agent" }

func (a *ProgressAgent) Analyze(mctx MonitoringContext) (interface{}, error) {
	metrics, err := a.analyze(mctx)
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

func (a *ProgressAgent) analyze(mctx MonitoringContext) (models.ProgressMetrics, error) {
	if mctx.Roadmap == nil || mctx.CurrentWeek < 1 || mctx.CurrentWeek > len(mctx.Roadmap.WeeklyPlans) {
		return models.ProgressMetrics{}, fmt.Errorf("week %d outside roadmap range: %w", mctx.CurrentWeek, errInsufficientData)
	}
	plan := mctx.Roadmap.WeeklyPlans[mctx.CurrentWeek-1].Snapshot()

	var metrics models.ProgressMetrics
	metrics.TotalTasks = len(plan.Tasks)

	totalEstimated := 0
	totalActual := 0
	for _, task := range plan.Tasks {
		switch task.Status {
		case models.TaskStatusCompleted:
			metrics.CompletedTasks++
			if task.ActualDuration != nil && float64(*task.ActualDuration) <= float64(task.EstimatedDuration)*1.2 {
				metrics.OnTimeTasks++
			}
		case models.TaskStatusPending:
			metrics.PendingTasks++
		case models.TaskStatusOverdue:
			metrics.OverdueTasks++
		}
		totalEstimated += task.EstimatedDuration
		if task.ActualDuration != nil {
			totalActual += *task.ActualDuration
		}
	}

	if metrics.TotalTasks > 0 {
		metrics.CompletionRate = float64(metrics.CompletedTasks) / float64(metrics.TotalTasks)
		metrics.AdherenceRate = float64(metrics.OnTimeTasks) / float64(metrics.TotalTasks)
	}
	metrics.TimeEfficiency = 1
	if totalEstimated > 0 {
		metrics.TimeEfficiency = float64(totalActual) / float64(totalEstimated)
	}
	return metrics, nil
}

func (a *ProgressAgent) DetectIrregularities(mctx MonitoringContext) []string {
	metrics, err := a.analyze(mctx)
	if err != nil {
		return []string{"Invalid roadmap or week data"}
	}

	var irregularities []string
	if metrics.CompletionRate < a.completionThreshold {
		irregularities = append(irregularities, fmt.Sprintf(
			"Low completion rate: %.1f%% (threshold: %.1f%%)",
			metrics.CompletionRate*100, a.completionThreshold*100))
	}
	if metrics.AdherenceRate < a.adherenceThreshold {
		irregularities = append(irregularities, fmt.Sprintf(
			"Low adherence rate: %.1f%% (threshold: %.1f%%)",
			metrics.AdherenceRate*100, a.adherenceThreshold*100))
	}
	if metrics.TimeEfficiency > 1+a.timeDeviation {
		irregularities = append(irregularities, fmt.Sprintf(
			"Tasks taking longer than estimated: %.1f%% of estimated time",
			metrics.TimeEfficiency*100))
	}
	if metrics.OverdueTasks > 0 {
		irregularities = append(irregularities, fmt.Sprintf("%d overdue tasks detected", metrics.OverdueTasks))
	}
	return irregularities
}
