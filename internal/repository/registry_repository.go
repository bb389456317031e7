package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

// RegistryRepository stores the reviewer registries: teachers and parents.
type RegistryRepository struct {
	db *sqlx.DB
}

// NewRegistryRepository constructs a RegistryRepository.
func NewRegistryRepository(db *sqlx.DB) *RegistryRepository {
	return &RegistryRepository{db: db}
}

type teacherRow struct {
	ID             string `db:"id"`
	Name           string `db:"name"`
	Email          string `db:"email"`
	Subjects       []byte `db:"subjects"`
	ExpertiseLevel string `db:"expertise_level"`
	MaxStudents    int    `db:"max_students"`
	Active         bool   `db:"active"`
}

// SaveTeacher upserts a teacher registration.
func (r *RegistryRepository) SaveTeacher(ctx context.Context, teacher *models.Teacher) error {
	if teacher.ID == "" {
		teacher.ID = uuid.NewString()
	}
	subjects, err := json.Marshal(teacher.Subjects)
	if err != nil {
		return fmt.Errorf("marshal subjects: %w", err)
	}
	const query = `INSERT INTO teachers (id, name, email, subjects, expertise_level, max_students, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            email = EXCLUDED.email,
            subjects = EXCLUDED.subjects,
            expertise_level = EXCLUDED.expertise_level,
            max_students = EXCLUDED.max_students,
            active = EXCLUDED.active`
	if _, err := r.db.ExecContext(ctx, query,
		teacher.ID, teacher.Name, teacher.Email, subjects,
		teacher.ExpertiseLevel, teacher.MaxStudents, teacher.Active); err != nil {
		return fmt.Errorf("save teacher: %w", err)
	}
	return nil
}

// ActiveTeachers lists every active teacher.
func (r *RegistryRepository) ActiveTeachers(ctx context.Context) ([]models.Teacher, error) {
	const query = `SELECT id, name, email, subjects, expertise_level, max_students, active
        FROM teachers WHERE active = TRUE ORDER BY name ASC`
	var rows []teacherRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list active teachers: %w", err)
	}
	teachers := make([]models.Teacher, 0, len(rows))
	for _, row := range rows {
		teacher, err := row.toModel()
		if err != nil {
			return nil, err
		}
		teachers = append(teachers, *teacher)
	}
	return teachers, nil
}

// FindTeacherByID returns one teacher, or nil when absent.
func (r *RegistryRepository) FindTeacherByID(ctx context.Context, id string) (*models.Teacher, error) {
	const query = `SELECT id, name, email, subjects, expertise_level, max_students, active
        FROM teachers WHERE id = $1 LIMIT 1`
	var row teacherRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find teacher: %w", err)
	}
	return row.toModel()
}

func (row teacherRow) toModel() (*models.Teacher, error) {
	teacher := &models.Teacher{
		ID:             row.ID,
		Name:           row.Name,
		Email:          row.Email,
		ExpertiseLevel: row.ExpertiseLevel,
		MaxStudents:    row.MaxStudents,
		Active:         row.Active,
	}
	if len(row.Subjects) > 0 {
		if err := json.Unmarshal(row.Subjects, &teacher.Subjects); err != nil {
			return nil, fmt.Errorf("unmarshal subjects: %w", err)
		}
	}
	return teacher, nil
}

type parentRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Email       string `db:"email"`
	StudentIDs  []byte `db:"student_ids"`
	Preferences []byte `db:"notification_preferences"`
	Active      bool   `db:"active"`
}

// SaveParent upserts a parent registration.
func (r *RegistryRepository) SaveParent(ctx context.Context, parent *models.Parent) error {
	if parent.ID == "" {
		parent.ID = uuid.NewString()
	}
	studentIDs, err := json.Marshal(parent.StudentIDs)
	if err != nil {
		return fmt.Errorf("marshal student ids: %w", err)
	}
	preferences, err := json.Marshal(parent.Preferences)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	const query = `INSERT INTO parents (id, name, email, student_ids, notification_preferences, active)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (id) DO UPDATE SET
            name = EXCLUDED.name,
            email = EXCLUDED.email,
            student_ids = EXCLUDED.student_ids,
            notification_preferences = EXCLUDED.notification_preferences,
            active = EXCLUDED.active`
	if _, err := r.db.ExecContext(ctx, query,
		parent.ID, parent.Name, parent.Email, studentIDs, preferences, parent.Active); err != nil {
		return fmt.Errorf("save parent: %w", err)
	}
	return nil
}

// ParentsOfStudent lists parents linked to the given student.
func (r *RegistryRepository) ParentsOfStudent(ctx context.Context, studentID string) ([]models.Parent, error) {
	const query = `SELECT id, name, email, student_ids, notification_preferences, active
        FROM parents WHERE student_ids @> $1 ORDER BY name ASC`
	needle, err := json.Marshal([]string{studentID})
	if err != nil {
		return nil, fmt.Errorf("marshal student id filter: %w", err)
	}
	var rows []parentRow
	if err := r.db.SelectContext(ctx, &rows, query, needle); err != nil {
		return nil, fmt.Errorf("list parents of student: %w", err)
	}
	parents := make([]models.Parent, 0, len(rows))
	for _, row := range rows {
		parent, err := row.toModel()
		if err != nil {
			return nil, err
		}
		parents = append(parents, *parent)
	}
	return parents, nil
}

// FindParentByID returns one parent, or nil when absent.
func (r *RegistryRepository) FindParentByID(ctx context.Context, id string) (*models.Parent, error) {
	const query = `SELECT id, name, email, student_ids, notification_preferences, active
        FROM parents WHERE id = $1 LIMIT 1`
	var row parentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find parent: %w", err)
	}
	return row.toModel()
}

func (row parentRow) toModel() (*models.Parent, error) {
	parent := &models.Parent{
		ID:     row.ID,
		Name:   row.Name,
		Email:  row.Email,
		Active: row.Active,
	}
	if len(row.StudentIDs) > 0 {
		if err := json.Unmarshal(row.StudentIDs, &parent.StudentIDs); err != nil {
			return nil, fmt.Errorf("unmarshal student ids: %w", err)
		}
	}
	if len(row.Preferences) > 0 {
		if err := json.Unmarshal(row.Preferences, &parent.Preferences); err != nil {
			return nil, fmt.Errorf("unmarshal preferences: %w", err)
		}
	} else {
		parent.Preferences = models.DefaultNotificationPreferences()
	}
	return parent, nil
}
