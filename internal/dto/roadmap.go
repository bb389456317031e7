package dto

import "github.com/sukanyaghosh74/sstudize-task/internal/models"

// GenerateRoadmapRequest captures POST /roadmaps payload.
type GenerateRoadmapRequest struct {
	StudentID     string `json:"studentId" validate:"required"`
	DurationWeeks int    `json:"durationWeeks" validate:"omitempty,min=1,max=52"`
}

// ReplanRequest carries new performance samples for a roadmap update.
type ReplanRequest struct {
	NewPerformance []PerformanceSample `json:"newPerformance" validate:"required,min=1,dive"`
}

// PerformanceSample is one score observation inside a replan request.
type PerformanceSample struct {
	Subject  string  `json:"subject" validate:"required"`
	Score    float64 `json:"score" validate:"min=0"`
	MaxScore float64 `json:"maxScore" validate:"required,gt=0"`
}

// UpdateTaskStatusRequest captures PATCH on a roadmap task.
type UpdateTaskStatusRequest struct {
	Status         models.TaskStatus `json:"status" validate:"required,oneof=pending in_progress completed overdue skipped"`
	ActualDuration *int              `json:"actualDuration,omitempty" validate:"omitempty,min=0"`
	Notes          string            `json:"notes,omitempty"`
}

// RoadmapSummary is a compact roadmap listing entry.
type RoadmapSummary struct {
	ID              string  `json:"id"`
	StudentID       string  `json:"studentId"`
	DurationWeeks   int     `json:"durationWeeks"`
	OverallProgress float64 `json:"overallProgress"`
}
