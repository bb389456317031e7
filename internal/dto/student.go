package dto

import "time"

// CreateStudentRequest captures POST /students payload.
type CreateStudentRequest struct {
	Name                 string             `json:"name" validate:"required"`
	Age                  int                `json:"age" validate:"required,min=5,max=25"`
	Grade                string             `json:"grade" validate:"required"`
	TargetScores         map[string]float64 `json:"targetScores" validate:"required,min=1"`
	CurrentScores        map[string]float64 `json:"currentScores" validate:"required,min=1"`
	LearningStyle        string             `json:"learningStyle" validate:"omitempty,oneof=visual auditory kinesthetic reading"`
	AvailableHoursPerDay float64            `json:"availableHoursPerDay" validate:"required,gt=0,lte=16"`
	PreferredStudyTimes  []string           `json:"preferredStudyTimes,omitempty"`
}

// RecordPerformanceRequest appends one assessment result.
type RecordPerformanceRequest struct {
	Subject  string    `json:"subject" validate:"required"`
	Score    float64   `json:"score" validate:"min=0"`
	MaxScore float64   `json:"maxScore" validate:"required,gt=0"`
	Date     time.Time `json:"date" validate:"required"`
	TestType string    `json:"testType" validate:"omitempty"`
}

// RecordHabitRequest appends one study session.
type RecordHabitRequest struct {
	Subject      string    `json:"subject" validate:"required"`
	HoursStudied float64   `json:"hoursStudied" validate:"required,gt=0,lte=24"`
	Date         time.Time `json:"date" validate:"required"`
	FocusQuality float64   `json:"focusQuality" validate:"required,min=1,max=10"`
	Distractions []string  `json:"distractions,omitempty"`
}
