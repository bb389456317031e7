package models

import "time"

// Subject identifies an academic subject tracked by the planner.
type Subject string

const (
	SubjectPhysics     Subject = "Physics"
	SubjectChemistry   Subject = "Chemistry"
	SubjectMathematics Subject = "Mathematics"
	SubjectBiology     Subject = "Biology"
	SubjectEnglish     Subject = "English"
)

// AllSubjects lists every subject in a stable order.
func AllSubjects() []Subject {
	return []Subject{SubjectPhysics, SubjectChemistry, SubjectMathematics, SubjectBiology, SubjectEnglish}
}

// TaskStatus tracks the lifecycle of a study task.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusOverdue    TaskStatus = "overdue"
	TaskStatusSkipped    TaskStatus = "skipped"
)

// TaskPriority ranks how urgent a task or notification is.
type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// StudyTask is the atomic unit of scheduled work inside a weekly plan.
// Status, ActualDuration and Notes are the only fields mutated after creation.
type StudyTask struct {
	ID                string             `db:"id" json:"id"`
	Title             string             `db:"title" json:"title"`
	Subject           Subject            `db:"subject" json:"subject"`
	Topic             string             `db:"topic" json:"topic"`
	Description       string             `db:"description" json:"description"`
	Priority          TaskPriority       `db:"priority" json:"priority"`
	EstimatedDuration int                `db:"estimated_duration" json:"estimated_duration"`
	DueDate           time.Time          `db:"due_date" json:"due_date"`
	Status            TaskStatus         `db:"status" json:"status"`
	Resources         []LearningResource `json:"resources,omitempty"`
	ActualDuration    *int               `db:"actual_duration" json:"actual_duration,omitempty"`
	Notes             string             `db:"notes" json:"notes,omitempty"`
}

// Clone returns a deep copy so monitoring snapshots never alias live tasks.
func (t StudyTask) Clone() StudyTask {
	copied := t
	if t.ActualDuration != nil {
		d := *t.ActualDuration
		copied.ActualDuration = &d
	}
	copied.Resources = append([]LearningResource(nil), t.Resources...)
	return copied
}

// WeeklyPlan groups one week's tasks with its hour allocation.
type WeeklyPlan struct {
	WeekNumber       int                 `json:"week_number"`
	StartDate        time.Time           `json:"start_date"`
	EndDate          time.Time           `json:"end_date"`
	Tasks            []StudyTask         `json:"tasks"`
	TotalHours       float64             `json:"total_hours"`
	SubjectBreakdown map[Subject]float64 `json:"subject_breakdown"`
}

// CompletionRate returns the fraction of completed tasks as a percentage.
func (p WeeklyPlan) CompletionRate() float64 {
	if len(p.Tasks) == 0 {
		return 0
	}
	completed := 0
	for _, task := range p.Tasks {
		if task.Status == TaskStatusCompleted {
			completed++
		}
	}
	return float64(completed) / float64(len(p.Tasks)) * 100
}

// Snapshot returns a deep copy of the plan with cloned tasks.
func (p WeeklyPlan) Snapshot() WeeklyPlan {
	copied := p
	copied.Tasks = make([]StudyTask, len(p.Tasks))
	for i, task := range p.Tasks {
		copied.Tasks[i] = task.Clone()
	}
	copied.SubjectBreakdown = make(map[Subject]float64, len(p.SubjectBreakdown))
	for subject, hours := range p.SubjectBreakdown {
		copied.SubjectBreakdown[subject] = hours
	}
	return copied
}

// Roadmap is a multi-week personalized study plan. A regeneration supersedes
// the previous roadmap; plans are never merged.
type Roadmap struct {
	ID            string             `db:"id" json:"id"`
	StudentID     string             `db:"student_id" json:"student_id"`
	CreatedAt     time.Time          `db:"created_at" json:"created_at"`
	LastUpdated   time.Time          `db:"last_updated" json:"last_updated"`
	DurationWeeks int                `db:"duration_weeks" json:"duration_weeks"`
	WeeklyPlans   []WeeklyPlan       `json:"weekly_plans"`
	OverallGoals  []string           `json:"overall_goals"`
	SuccessMetric map[string]float64 `json:"success_metrics"`
}

// OverallProgress averages completion rates across all weekly plans.
func (r Roadmap) OverallProgress() float64 {
	if len(r.WeeklyPlans) == 0 {
		return 0
	}
	total := 0.0
	for _, plan := range r.WeeklyPlans {
		total += plan.CompletionRate()
	}
	return total / float64(len(r.WeeklyPlans))
}

// SWOTAnalysis captures the derived strengths/weaknesses snapshot for a student.
type SWOTAnalysis struct {
	Strengths       []string `json:"strengths"`
	Weaknesses      []string `json:"weaknesses"`
	Opportunities   []string `json:"opportunities"`
	Threats         []string `json:"threats"`
	Recommendations []string `json:"recommendations"`
}
