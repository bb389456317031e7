package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

// StudentRepository manages persistence for student profiles and their
// append-only performance and habit histories.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

type studentRow struct {
	ID                   string         `db:"id"`
	Name                 string         `db:"name"`
	Age                  int            `db:"age"`
	Grade                string         `db:"grade"`
	TargetScores         []byte         `db:"target_scores"`
	CurrentScores        []byte         `db:"current_scores"`
	SWOT                 sql.NullString `db:"swot"`
	LearningStyle        string         `db:"learning_style"`
	AvailableHoursPerDay float64        `db:"available_hours_per_day"`
	PreferredStudyTimes  []byte         `db:"preferred_study_times"`
}

// Create inserts a new student profile.
func (r *StudentRepository) Create(ctx context.Context, student *models.StudentProfile) error {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	targets, err := json.Marshal(student.TargetScores)
	if err != nil {
		return fmt.Errorf("marshal target scores: %w", err)
	}
	currents, err := json.Marshal(student.CurrentScores)
	if err != nil {
		return fmt.Errorf("marshal current scores: %w", err)
	}
	times, err := json.Marshal(student.PreferredStudyTimes)
	if err != nil {
		return fmt.Errorf("marshal study times: %w", err)
	}

	const query = `INSERT INTO students (id, name, age, grade, target_scores, current_scores, learning_style, available_hours_per_day, preferred_study_times, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(ctx, query,
		student.ID, student.Name, student.Age, student.Grade,
		targets, currents, student.LearningStyle, student.AvailableHoursPerDay,
		times, time.Now()); err != nil {
		return fmt.Errorf("insert student: %w", err)
	}
	return nil
}

// FindByID assembles the full profile including history and habits. Returns
// nil when the student does not exist.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentProfile, error) {
	const query = `SELECT id, name, age, grade, target_scores, current_scores, swot, learning_style, available_hours_per_day, preferred_study_times
        FROM students WHERE id = $1 LIMIT 1`
	var row studentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find student: %w", err)
	}

	student := &models.StudentProfile{
		ID:                   row.ID,
		Name:                 row.Name,
		Age:                  row.Age,
		Grade:                row.Grade,
		LearningStyle:        row.LearningStyle,
		AvailableHoursPerDay: row.AvailableHoursPerDay,
	}
	if err := json.Unmarshal(row.TargetScores, &student.TargetScores); err != nil {
		return nil, fmt.Errorf("unmarshal target scores: %w", err)
	}
	if err := json.Unmarshal(row.CurrentScores, &student.CurrentScores); err != nil {
		return nil, fmt.Errorf("unmarshal current scores: %w", err)
	}
	if len(row.PreferredStudyTimes) > 0 {
		if err := json.Unmarshal(row.PreferredStudyTimes, &student.PreferredStudyTimes); err != nil {
			return nil, fmt.Errorf("unmarshal study times: %w", err)
		}
	}
	if row.SWOT.Valid && row.SWOT.String != "" {
		var swot models.SWOTAnalysis
		if err := json.Unmarshal([]byte(row.SWOT.String), &swot); err != nil {
			return nil, fmt.Errorf("unmarshal swot: %w", err)
		}
		student.SWOT = &swot
	}

	history, err := r.performanceHistory(ctx, id)
	if err != nil {
		return nil, err
	}
	student.PerformanceHistory = history

	habits, err := r.studyHabits(ctx, id)
	if err != nil {
		return nil, err
	}
	student.StudyHabits = habits

	return student, nil
}

func (r *StudentRepository) performanceHistory(ctx context.Context, studentID string) ([]models.PerformanceMetric, error) {
	const query = `SELECT id, student_id, subject, score, max_score, date, test_type
        FROM performance_metrics WHERE student_id = $1 ORDER BY date ASC`
	var metrics []models.PerformanceMetric
	if err := r.db.SelectContext(ctx, &metrics, query, studentID); err != nil {
		return nil, fmt.Errorf("load performance history: %w", err)
	}
	return metrics, nil
}

type habitRow struct {
	ID           string    `db:"id"`
	StudentID    string    `db:"student_id"`
	Subject      string    `db:"subject"`
	HoursStudied float64   `db:"hours_studied"`
	Date         time.Time `db:"date"`
	FocusQuality float64   `db:"focus_quality"`
	Distractions []byte    `db:"distractions"`
}

func (r *StudentRepository) studyHabits(ctx context.Context, studentID string) ([]models.StudyHabit, error) {
	const query = `SELECT id, student_id, subject, hours_studied, date, focus_quality, distractions
        FROM study_habits WHERE student_id = $1 ORDER BY date ASC`
	var rows []habitRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("load study habits: %w", err)
	}
	habits := make([]models.StudyHabit, 0, len(rows))
	for _, row := range rows {
		habit := models.StudyHabit{
			ID:           row.ID,
			StudentID:    row.StudentID,
			Subject:      models.Subject(row.Subject),
			HoursStudied: row.HoursStudied,
			Date:         row.Date,
			FocusQuality: row.FocusQuality,
		}
		if len(row.Distractions) > 0 {
			if err := json.Unmarshal(row.Distractions, &habit.Distractions); err != nil {
				return nil, fmt.Errorf("unmarshal distractions: %w", err)
			}
		}
		habits = append(habits, habit)
	}
	return habits, nil
}

// AppendPerformance records one assessment result.
func (r *StudentRepository) AppendPerformance(ctx context.Context, metric *models.PerformanceMetric) error {
	if metric.ID == "" {
		metric.ID = uuid.NewString()
	}
	const query = `INSERT INTO performance_metrics (id, student_id, subject, score, max_score, date, test_type)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query,
		metric.ID, metric.StudentID, metric.Subject, metric.Score,
		metric.MaxScore, metric.Date, metric.TestType); err != nil {
		return fmt.Errorf("insert performance metric: %w", err)
	}
	return nil
}

// AppendHabit records one study session.
func (r *StudentRepository) AppendHabit(ctx context.Context, habit *models.StudyHabit) error {
	if habit.ID == "" {
		habit.ID = uuid.NewString()
	}
	distractions, err := json.Marshal(habit.Distractions)
	if err != nil {
		return fmt.Errorf("marshal distractions: %w", err)
	}
	const query = `INSERT INTO study_habits (id, student_id, subject, hours_studied, date, focus_quality, distractions)
        VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if _, err := r.db.ExecContext(ctx, query,
		habit.ID, habit.StudentID, habit.Subject, habit.HoursStudied,
		habit.Date, habit.FocusQuality, distractions); err != nil {
		return fmt.Errorf("insert study habit: %w", err)
	}
	return nil
}

// ReplaceSWOT overwrites the stored SWOT snapshot wholesale.
func (r *StudentRepository) ReplaceSWOT(ctx context.Context, studentID string, swot models.SWOTAnalysis) error {
	payload, err := json.Marshal(swot)
	if err != nil {
		return fmt.Errorf("marshal swot: %w", err)
	}
	const query = `UPDATE students SET swot = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, studentID, payload); err != nil {
		return fmt.Errorf("update swot: %w", err)
	}
	return nil
}

// UpdateScores replaces the current score map after new assessments land.
func (r *StudentRepository) UpdateScores(ctx context.Context, studentID string, currentScores map[models.Subject]float64) error {
	payload, err := json.Marshal(currentScores)
	if err != nil {
		return fmt.Errorf("marshal current scores: %w", err)
	}
	const query = `UPDATE students SET current_scores = $2 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, studentID, payload); err != nil {
		return fmt.Errorf("update current scores: %w", err)
	}
	return nil
}
