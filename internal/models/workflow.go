package models

import "time"

// FeedbackStage is the position of a workflow in the review pipeline.
// Stages only ever advance forward.
type FeedbackStage string

const (
	StageTeacherReview    FeedbackStage = "teacher_review"
	StageParentValidation FeedbackStage = "parent_validation"
	StageAIIntegration    FeedbackStage = "ai_integration"
	StageImplementation   FeedbackStage = "implementation"
)

// FeedbackStatus is the outcome state of a workflow.
type FeedbackStatus string

const (
	FeedbackStatusPending     FeedbackStatus = "pending"
	FeedbackStatusUnderReview FeedbackStatus = "under_review"
	FeedbackStatusApproved    FeedbackStatus = "approved"
	FeedbackStatusRejected    FeedbackStatus = "rejected"
	FeedbackStatusImplemented FeedbackStatus = "implemented"
)

// FeedbackType categorizes a feedback submission.
type FeedbackType string

const (
	FeedbackRoadmapReview      FeedbackType = "roadmap_review"
	FeedbackProgressAssessment FeedbackType = "progress_assessment"
	FeedbackRecommendation     FeedbackType = "recommendation"
	FeedbackObservation        FeedbackType = "observation"
	FeedbackConcern            FeedbackType = "concern"
	FeedbackSuggestion         FeedbackType = "suggestion"
)

// TeacherFeedback is a teacher's review of a submitted roadmap.
type TeacherFeedback struct {
	ID          string       `db:"id" json:"id"`
	TeacherID   string       `db:"teacher_id" json:"teacher_id"`
	StudentID   string       `db:"student_id" json:"student_id"`
	RoadmapID   string       `db:"roadmap_id" json:"roadmap_id"`
	Type        FeedbackType `db:"feedback_type" json:"feedback_type"`
	Content     string       `db:"content" json:"content"`
	Priority    TaskPriority `db:"priority" json:"priority"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	IsAddressed bool         `db:"is_addressed" json:"is_addressed"`
}

// ParentFeedback is a parent's validation input on a workflow.
type ParentFeedback struct {
	ID          string       `db:"id" json:"id"`
	ParentID    string       `db:"parent_id" json:"parent_id"`
	StudentID   string       `db:"student_id" json:"student_id"`
	Type        FeedbackType `db:"feedback_type" json:"feedback_type"`
	Content     string       `db:"content" json:"content"`
	Priority    TaskPriority `db:"priority" json:"priority"`
	CreatedAt   time.Time    `db:"created_at" json:"created_at"`
	IsAddressed bool         `db:"is_addressed" json:"is_addressed"`
}

// FeedbackConflict records one opposing teacher/parent concern pair.
type FeedbackConflict struct {
	Type           string `json:"type"`
	TeacherConcern string `json:"teacher_concern"`
	ParentConcern  string `json:"parent_concern"`
	Description    string `json:"description"`
}

// ResolutionStrategy labels how feedback was integrated.
type ResolutionStrategy string

const (
	StrategyBalancedApproach  ResolutionStrategy = "balanced_approach"
	StrategyDirectIntegration ResolutionStrategy = "direct_integration_plan"
)

// ConflictResolution is issued when opposing feedback was detected: a uniform
// gradual-adjustment plan with weekly monitoring.
type ConflictResolution struct {
	ConflictsDetected int                        `json:"conflicts_detected"`
	Conflicts         []FeedbackConflict         `json:"conflicts"`
	Recommendations   []ResolutionRecommendation `json:"recommendations"`
}

// ResolutionRecommendation describes one gradual-adjustment action.
type ResolutionRecommendation struct {
	Action      string `json:"action"`
	Description string `json:"description"`
	Timeline    string `json:"timeline"`
	Monitoring  string `json:"monitoring"`
}

// FeedbackItem echoes one party's feedback inside an integration plan.
type FeedbackItem struct {
	Type     FeedbackType `json:"type"`
	Content  string       `json:"content"`
	Priority TaskPriority `json:"priority"`
}

// DirectIntegrationPlan is issued when no conflicts were found.
type DirectIntegrationPlan struct {
	TeacherRecommendations []FeedbackItem `json:"teacher_recommendations"`
	ParentRecommendations  []FeedbackItem `json:"parent_recommendations"`
	ImplementationSteps    []string       `json:"implementation_steps"`
}

// Resolution is the tagged union carried by a workflow once it reaches
// ai_integration: exactly one of Conflict or Plan is set.
type Resolution struct {
	Strategy ResolutionStrategy     `json:"strategy"`
	Conflict *ConflictResolution    `json:"conflict_resolution,omitempty"`
	Plan     *DirectIntegrationPlan `json:"integration_plan,omitempty"`
}

// FeedbackWorkflow tracks one roadmap through the staged review pipeline.
// Invariants: the stage only advances forward; parent feedback requires
// teacher feedback; the resolution is only set from ai_integration onward.
type FeedbackWorkflow struct {
	ID              string           `db:"id" json:"id"`
	StudentID       string           `db:"student_id" json:"student_id"`
	RoadmapID       string           `db:"roadmap_id" json:"roadmap_id"`
	CurrentStage    FeedbackStage    `db:"current_stage" json:"current_stage"`
	Status          FeedbackStatus   `db:"status" json:"status"`
	TeacherFeedback *TeacherFeedback `json:"teacher_feedback,omitempty"`
	ParentFeedback  *ParentFeedback  `json:"parent_feedback,omitempty"`
	Resolution      *Resolution      `json:"resolution,omitempty"`
	CreatedAt       time.Time        `db:"created_at" json:"created_at"`
	LastUpdated     time.Time        `db:"last_updated" json:"last_updated"`
}

// WorkflowStatusView is the read-only snapshot returned by status queries.
type WorkflowStatusView struct {
	WorkflowID         string         `json:"workflow_id"`
	StudentID          string         `json:"student_id"`
	RoadmapID          string         `json:"roadmap_id"`
	CurrentStage       FeedbackStage  `json:"current_stage"`
	Status             FeedbackStatus `json:"status"`
	HasTeacherFeedback bool           `json:"has_teacher_feedback"`
	HasParentFeedback  bool           `json:"has_parent_feedback"`
	CreatedAt          time.Time      `json:"created_at"`
	LastUpdated        time.Time      `json:"last_updated"`
}

// ReviewerRole identifies which party a pending-workflow query concerns.
type ReviewerRole string

const (
	ReviewerTeacher ReviewerRole = "teacher"
	ReviewerParent  ReviewerRole = "parent"
)

// Teacher is a registered reviewer for roadmap submissions.
type Teacher struct {
	ID             string    `db:"id" json:"id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email"`
	Subjects       []Subject `json:"subjects"`
	ExpertiseLevel string    `db:"expertise_level" json:"expertise_level"`
	MaxStudents    int       `db:"max_students" json:"max_students"`
	Active         bool      `db:"active" json:"active"`
}

// NotificationPreferences gates which notifications a parent receives.
type NotificationPreferences struct {
	DailyUpdates       bool `json:"daily_updates"`
	WeeklyReports      bool `json:"weekly_reports"`
	UrgentAlerts       bool `json:"urgent_alerts"`
	PerformanceChanges bool `json:"performance_changes"`
}

// DefaultNotificationPreferences enables everything except daily updates.
func DefaultNotificationPreferences() NotificationPreferences {
	return NotificationPreferences{
		WeeklyReports:      true,
		UrgentAlerts:       true,
		PerformanceChanges: true,
	}
}

// Parent is a registered guardian linked to one or more students.
type Parent struct {
	ID          string                  `db:"id" json:"id"`
	Name        string                  `db:"name" json:"name"`
	Email       string                  `db:"email" json:"email"`
	StudentIDs  []string                `json:"student_ids"`
	Preferences NotificationPreferences `json:"notification_preferences"`
	Active      bool                    `db:"active" json:"active"`
}
