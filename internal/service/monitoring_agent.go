package service

import (
	"errors"
	"math"
	"time"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

// errInsufficientData marks analyses that lack enough history to be
// meaningful. It is reported as a diagnostic note, never as a failure.
var errInsufficientData = errors.New("insufficient data")

// MonitoringContext is the shared read-only input handed to every agent.
// Agents must not mutate it; plan data is snapshotted before analysis.
type MonitoringContext struct {
	StudentID          string
	Roadmap            *models.Roadmap
	CurrentWeek        int
	PerformanceHistory []models.PerformanceMetric
	StudyHabits        []models.StudyHabit
	Now                time.Time
	LookbackDays       int
}

// MonitoringAgent is a side-effect-free analyzer over a MonitoringContext.
type MonitoringAgent interface {
	ID() string
	Name() string
	Analyze(mctx MonitoringContext) (interface{}, error)
	DetectIrregularities(mctx MonitoringContext) []string
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total / float64(len(values))
}

func stddev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sum := 0.0
	for _, v := range values {
		d := v - m
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(values)))
}
