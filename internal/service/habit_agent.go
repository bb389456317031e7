package service

import (
	"fmt"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

// HabitAgent monitors study patterns over a recent lookback window.
type HabitAgent struct {
	minDailyHours         float64
	maxDailyHours         float64
	consistencyThreshold  float64
	focusQualityThreshold float64
}

func NewHabitAgent() *HabitAgent {
	return &HabitAgent{
		minDailyHours:         2.0,
		maxDailyHours:         8.0,
		consistencyThreshold:  0.7,
		focusQualityThreshold: 6.0,
	}
}

func (a *HabitAgent) ID() string   { return "habits" }
func (a *HabitAgent) Name() string { return "Study Habit Agent" }

func (a *HabitAgent) Analyze(mctx MonitoringContext) (interface{}, error) {
	metrics, err := a.analyze(mctx)
	if err != nil {
		return nil, err
	}
	return metrics, nil
}

func (a *HabitAgent) analyze(mctx MonitoringContext) (models.HabitMetrics, error) {
	if len(mctx.StudyHabits) == 0 {
		return models.HabitMetrics{}, fmt.Errorf("no study habit data: %w", errInsufficientData)
	}

	lookback := mctx.LookbackDays
	if lookback <= 0 {
		lookback = 14
	}
	cutoff := mctx.Now.AddDate(0, 0, -lookback)

	var recent []models.StudyHabit
	for _, habit := range mctx.StudyHabits {
		if !habit.Date.Before(cutoff) {
			recent = append(recent, habit)
		}
	}
	if len(recent) == 0 {
		return models.HabitMetrics{}, fmt.Errorf("no recent study habit data: %w", errInsufficientData)
	}

	dailyHours := make(map[string]float64)
	subjectHours := make(map[models.Subject]float64)
	distractions := make(map[string]int)
	focusScores := make([]float64, 0, len(recent))
	for _, habit := range recent {
		dailyHours[habit.Date.Format("2006-01-02")] += habit.HoursStudied
		subjectHours[habit.Subject] += habit.HoursStudied
		focusScores = append(focusScores, habit.FocusQuality)
		for _, d := range habit.Distractions {
			distractions[d]++
		}
	}

	perDay := make([]float64, 0, len(dailyHours))
	total := 0.0
	for _, hours := range dailyHours {
		perDay = append(perDay, hours)
		total += hours
	}

	return models.HabitMetrics{
		AvgDailyHours:       mean(perDay),
		StudyConsistency:    float64(len(dailyHours)) / float64(lookback),
		AvgFocusQuality:     mean(focusScores),
		SubjectDistribution: subjectHours,
		CommonDistractions:  distractions,
		StudyDays:           len(dailyHours),
		TotalStudyHours:     total,
	}, nil
}

func (a *HabitAgent) DetectIrregularities(mctx MonitoringContext) []string {
	metrics, err := a.analyze(mctx)
	if err != nil {
		return []string{"No recent study habit data available"}
	}

	var irregularities []string
	if metrics.AvgDailyHours < a.minDailyHours {
		irregularities = append(irregularities, fmt.Sprintf(
			"Low daily study hours: %.1fh (minimum: %.1fh)", metrics.AvgDailyHours, a.minDailyHours))
	}
	if metrics.AvgDailyHours > a.maxDailyHours {
		irregularities = append(irregularities, fmt.Sprintf(
			"Excessive daily study hours: %.1fh (maximum: %.1fh)", metrics.AvgDailyHours, a.maxDailyHours))
	}
	if metrics.StudyConsistency < a.consistencyThreshold {
		irregularities = append(irregularities, fmt.Sprintf(
			"Inconsistent study schedule: %.1f%% consistency (threshold: %.1f%%)",
			metrics.StudyConsistency*100, a.consistencyThreshold*100))
	}
	if metrics.AvgFocusQuality < a.focusQualityThreshold {
		irregularities = append(irregularities, fmt.Sprintf(
			"Low focus quality: %.1f/10 (threshold: %.1f/10)",
			metrics.AvgFocusQuality, a.focusQualityThreshold))
	}

	topName, topCount := "", 0
	for name, count := range metrics.CommonDistractions {
		if count > topCount || (count == topCount && name < topName) {
			topName, topCount = name, count
		}
	}
	if topCount > 5 {
		irregularities = append(irregularities, fmt.Sprintf(
			"Frequent distraction: %s (%d times)", topName, topCount))
	}
	return irregularities
}
