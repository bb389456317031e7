package dto

// SubmitReviewRequest opens a feedback workflow for a roadmap.
type SubmitReviewRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	RoadmapID string `json:"roadmapId" validate:"required"`
}

// FeedbackRequest carries one reviewer's feedback submission.
type FeedbackRequest struct {
	ReviewerID   string `json:"reviewerId" validate:"required"`
	FeedbackType string `json:"feedbackType" validate:"required,oneof=roadmap_review progress_assessment recommendation observation concern suggestion"`
	Content      string `json:"content" validate:"required"`
	Priority     string `json:"priority" validate:"required,oneof=low medium high critical"`
}

// RegisterTeacherRequest captures POST /registry/teachers payload.
type RegisterTeacherRequest struct {
	Name           string   `json:"name" validate:"required"`
	Email          string   `json:"email" validate:"required,email"`
	Subjects       []string `json:"subjects" validate:"required,min=1"`
	ExpertiseLevel string   `json:"expertiseLevel" validate:"required,oneof=beginner intermediate expert"`
	MaxStudents    int      `json:"maxStudents" validate:"omitempty,min=1"`
}

// RegisterParentRequest captures POST /registry/parents payload.
type RegisterParentRequest struct {
	Name       string   `json:"name" validate:"required"`
	Email      string   `json:"email" validate:"required,email"`
	StudentIDs []string `json:"studentIds" validate:"required,min=1"`
}
