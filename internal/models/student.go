package models

import "time"

// PerformanceMetric is one assessment result in a student's append-only history.
type PerformanceMetric struct {
	ID        string    `db:"id" json:"id"`
	StudentID string    `db:"student_id" json:"student_id"`
	Subject   Subject   `db:"subject" json:"subject"`
	Score     float64   `db:"score" json:"score"`
	MaxScore  float64   `db:"max_score" json:"max_score"`
	Date      time.Time `db:"date" json:"date"`
	TestType  string    `db:"test_type" json:"test_type"`
}

// Percentage normalizes the score against the maximum achievable score.
func (m PerformanceMetric) Percentage() float64 {
	if m.MaxScore <= 0 {
		return 0
	}
	return m.Score / m.MaxScore * 100
}

// StudyHabit is one logged study session in a student's append-only habit log.
type StudyHabit struct {
	ID           string    `db:"id" json:"id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	Subject      Subject   `db:"subject" json:"subject"`
	HoursStudied float64   `db:"hours_studied" json:"hours_studied"`
	Date         time.Time `db:"date" json:"date"`
	FocusQuality float64   `db:"focus_quality" json:"focus_quality"`
	Distractions []string  `json:"distractions,omitempty"`
}

// StudentProfile aggregates everything the planner knows about a student.
// History slices are append-only; the SWOT snapshot is replaced wholesale.
type StudentProfile struct {
	ID                   string              `db:"id" json:"id"`
	Name                 string              `db:"name" json:"name"`
	Age                  int                 `db:"age" json:"age"`
	Grade                string              `db:"grade" json:"grade"`
	TargetScores         map[Subject]float64 `json:"target_scores"`
	CurrentScores        map[Subject]float64 `json:"current_scores"`
	PerformanceHistory   []PerformanceMetric `json:"performance_history,omitempty"`
	StudyHabits          []StudyHabit        `json:"study_habits,omitempty"`
	SWOT                 *SWOTAnalysis       `json:"swot_analysis,omitempty"`
	LearningStyle        string              `db:"learning_style" json:"learning_style"`
	AvailableHoursPerDay float64             `db:"available_hours_per_day" json:"available_hours_per_day"`
	PreferredStudyTimes  []string            `json:"preferred_study_times,omitempty"`
}

// WeakSubjects returns subjects scoring below the threshold.
func (p StudentProfile) WeakSubjects(threshold float64) []Subject {
	var weak []Subject
	for _, subject := range AllSubjects() {
		if score, ok := p.CurrentScores[subject]; ok && score < threshold {
			weak = append(weak, subject)
		}
	}
	return weak
}

// StrongSubjects returns subjects scoring at or above the threshold.
func (p StudentProfile) StrongSubjects(threshold float64) []Subject {
	var strong []Subject
	for _, subject := range AllSubjects() {
		if score, ok := p.CurrentScores[subject]; ok && score >= threshold {
			strong = append(strong, subject)
		}
	}
	return strong
}
