package catalog

import (
	"time"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

// DefaultExamTrends returns the built-in exam trend table used when no
// catalog file is provisioned.
func DefaultExamTrends() []models.ExamTrend {
	now := time.Now().UTC()
	return []models.ExamTrend{
		{Subject: models.SubjectMathematics, Topic: "Calculus", Frequency: 15, DifficultyLevel: 8.5, Weightage: 25.0, LastAsked: now},
		{Subject: models.SubjectMathematics, Topic: "Algebra", Frequency: 12, DifficultyLevel: 7.0, Weightage: 20.0, LastAsked: now},
		{Subject: models.SubjectPhysics, Topic: "Mechanics", Frequency: 10, DifficultyLevel: 8.0, Weightage: 30.0, LastAsked: now},
		{Subject: models.SubjectPhysics, Topic: "Thermodynamics", Frequency: 8, DifficultyLevel: 7.5, Weightage: 20.0, LastAsked: now},
		{Subject: models.SubjectChemistry, Topic: "Organic Chemistry", Frequency: 12, DifficultyLevel: 9.0, Weightage: 35.0, LastAsked: now},
		{Subject: models.SubjectChemistry, Topic: "Physical Chemistry", Frequency: 9, DifficultyLevel: 8.0, Weightage: 25.0, LastAsked: now},
	}
}

// DefaultLearningResources returns the built-in resource catalog.
func DefaultLearningResources() []models.LearningResource {
	return []models.LearningResource{
		{
			ID:              "res_001",
			Title:           "Calculus Fundamentals",
			ResourceType:    "video",
			Subject:         models.SubjectMathematics,
			Topic:           "Calculus",
			DifficultyLevel: 7.0,
			EstimatedTime:   120,
			URL:             "https://example.com/calc-fundamentals",
			Description:     "Comprehensive video series on calculus basics",
		},
		{
			ID:              "res_002",
			Title:           "Physics Mechanics Problems",
			ResourceType:    "practice_test",
			Subject:         models.SubjectPhysics,
			Topic:           "Mechanics",
			DifficultyLevel: 8.0,
			EstimatedTime:   90,
			URL:             "https://example.com/mechanics-problems",
			Description:     "Practice problems with solutions",
		},
		{
			ID:              "res_003",
			Title:           "Organic Chemistry Textbook",
			ResourceType:    "pdf",
			Subject:         models.SubjectChemistry,
			Topic:           "Organic Chemistry",
			DifficultyLevel: 8.5,
			EstimatedTime:   180,
			URL:             "https://example.com/org-chem-textbook",
			Description:     "Complete textbook on organic chemistry",
		},
	}
}
