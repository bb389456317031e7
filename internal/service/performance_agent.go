package service

import (
	"fmt"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

// PerformanceAgent analyzes score trends per subject across a student's
// assessment history.
type PerformanceAgent struct {
	consistencyThreshold float64
	declineThreshold     float64
}

func NewPerformanceAgent() *PerformanceAgent {
	return &PerformanceAgent{
		consistencyThreshold: 0.8,
		declineThreshold:     -0.1,
	}
}

func (a *PerformanceAgent) ID() string   { return "performance" }
func (a *PerformanceAgent) Name() string { return "Performance Analysis Agent" }

func (a *PerformanceAgent) Analyze(mctx MonitoringContext) (interface{}, error) {
	metrics, err := a.analyze(mctx)
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

func (a *PerformanceAgent) analyze(mctx MonitoringContext) (models.PerformanceMetrics, error) {
	history := mctx.PerformanceHistory
	if len(history) == 0 {
		return models.PerformanceMetrics{}, fmt.Errorf("no performance history: %w", errInsufficientData)
	}

	bySubject := make(map[models.Subject][]float64)
	allScores := make([]float64, 0, len(history))
	for _, metric := range history {
		pct := metric.Percentage()
		bySubject[metric.Subject] = append(bySubject[metric.Subject], pct)
		allScores = append(allScores, pct)
	}

	subjectTrends := make(map[models.Subject]models.SubjectTrend)
	for subject, scores := range bySubject {
		if len(scores) < 2 {
			continue
		}
		recentAvg := scores[len(scores)-1]
		if len(scores) >= 3 {
			recentAvg = mean(scores[len(scores)-3:])
		}
		earlierAvg := scores[0]
		if len(scores) >= 6 {
			earlierAvg = mean(scores[:len(scores)-3])
		}
		improvement := 0.0
		if earlierAvg > 0 {
			improvement = (recentAvg - earlierAvg) / earlierAvg
		}
		consistency := 0.0
		if m := mean(scores); m > 0 {
			consistency = 1 - stddev(scores)/m
		}
		trend := "declining"
		if improvement > 0 {
			trend = "improving"
		}
		subjectTrends[subject] = models.SubjectTrend{
			ImprovementRate: improvement,
			Consistency:     consistency,
			RecentAvg:       recentAvg,
			EarlierAvg:      earlierAvg,
			Trend:           trend,
		}
	}

	overallConsistency := 0.0
	if m := mean(allScores); m > 0 {
		overallConsistency = 1 - stddev(allScores)/m
	}
	recent := allScores
	if len(recent) > 5 {
		recent = recent[len(recent)-5:]
	}

	return models.PerformanceMetrics{
		SubjectTrends:      subjectTrends,
		OverallAvg:         mean(allScores),
		OverallConsistency: overallConsistency,
		TotalAssessments:   len(history),
		RecentPerformance:  recent,
	}, nil
}

func (a *PerformanceAgent) DetectIrregularities(mctx MonitoringContext) []string {
	metrics, err := a.analyze(mctx)
	if err != nil {
		return []string{"No performance history available"}
	}

	var irregularities []string
	if metrics.OverallConsistency < a.consistencyThreshold {
		irregularities = append(irregularities, fmt.Sprintf(
			"Inconsistent performance: %.1f%% consistency (threshold: %.1f%%)",
			metrics.OverallConsistency*100, a.consistencyThreshold*100))
	}
	for _, subject := range models.AllSubjects() {
		trend, ok := metrics.SubjectTrends[subject]
		if !ok {
			continue
		}
		if trend.ImprovementRate < a.declineThreshold {
			irregularities = append(irregularities, fmt.Sprintf(
				"Performance declining in %s: %.1f%% change", subject, trend.ImprovementRate*100))
		} else if trend.Consistency < a.consistencyThreshold {
			irregularities = append(irregularities, fmt.Sprintf(
				"Inconsistent performance in %s: %.1f%% consistency", subject, trend.Consistency*100))
		}
	}
	return irregularities
}
