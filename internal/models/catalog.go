package models

import "time"

// ExamTrend describes how often a topic appears in exams and how hard it is.
type ExamTrend struct {
	Subject         Subject   `db:"subject" json:"subject" yaml:"subject"`
	Topic           string    `db:"topic" json:"topic" yaml:"topic"`
	Frequency       int       `db:"frequency" json:"frequency" yaml:"frequency"`
	DifficultyLevel float64   `db:"difficulty_level" json:"difficulty_level" yaml:"difficulty_level"`
	Weightage       float64   `db:"weightage" json:"weightage" yaml:"weightage"`
	LastAsked       time.Time `db:"last_asked" json:"last_asked" yaml:"last_asked"`
}

// LearningResource is a catalog entry attachable to study tasks.
type LearningResource struct {
	ID              string  `db:"id" json:"id" yaml:"id"`
	Title           string  `db:"title" json:"title" yaml:"title"`
	ResourceType    string  `db:"resource_type" json:"resource_type" yaml:"resource_type"`
	Subject         Subject `db:"subject" json:"subject" yaml:"subject"`
	Topic           string  `db:"topic" json:"topic" yaml:"topic"`
	DifficultyLevel float64 `db:"difficulty_level" json:"difficulty_level" yaml:"difficulty_level"`
	EstimatedTime   int     `db:"estimated_time" json:"estimated_time" yaml:"estimated_time"`
	URL             string  `db:"url" json:"url,omitempty" yaml:"url"`
	Description     string  `db:"description" json:"description,omitempty" yaml:"description"`
}
