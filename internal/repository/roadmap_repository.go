package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

// RoadmapRepository persists roadmaps with their weekly plans stored as one
// JSON document; the plan structure is read and written wholesale.
type RoadmapRepository struct {
	db *sqlx.DB
}

// NewRoadmapRepository constructs a RoadmapRepository.
func NewRoadmapRepository(db *sqlx.DB) *RoadmapRepository {
	return &RoadmapRepository{db: db}
}

type roadmapRow struct {
	ID            string    `db:"id"`
	StudentID     string    `db:"student_id"`
	CreatedAt     time.Time `db:"created_at"`
	LastUpdated   time.Time `db:"last_updated"`
	DurationWeeks int       `db:"duration_weeks"`
	WeeklyPlans   []byte    `db:"weekly_plans"`
	OverallGoals  []byte    `db:"overall_goals"`
	SuccessMetric []byte    `db:"success_metrics"`
}

// Save upserts a roadmap.
func (r *RoadmapRepository) Save(ctx context.Context, roadmap *models.Roadmap) error {
	plans, err := json.Marshal(roadmap.WeeklyPlans)
	if err != nil {
		return fmt.Errorf("marshal weekly plans: %w", err)
	}
	goals, err := json.Marshal(roadmap.OverallGoals)
	if err != nil {
		return fmt.Errorf("marshal goals: %w", err)
	}
	metrics, err := json.Marshal(roadmap.SuccessMetric)
	if err != nil {
		return fmt.Errorf("marshal success metrics: %w", err)
	}

	const query = `INSERT INTO roadmaps (id, student_id, created_at, last_updated, duration_weeks, weekly_plans, overall_goals, success_metrics)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (id) DO UPDATE SET
            last_updated = EXCLUDED.last_updated,
            weekly_plans = EXCLUDED.weekly_plans,
            overall_goals = EXCLUDED.overall_goals,
            success_metrics = EXCLUDED.success_metrics`
	if _, err := r.db.ExecContext(ctx, query,
		roadmap.ID, roadmap.StudentID, roadmap.CreatedAt, roadmap.LastUpdated,
		roadmap.DurationWeeks, plans, goals, metrics); err != nil {
		return fmt.Errorf("save roadmap: %w", err)
	}
	return nil
}

// FindByID returns a roadmap by identifier, or nil when absent.
func (r *RoadmapRepository) FindByID(ctx context.Context, id string) (*models.Roadmap, error) {
	const query = `SELECT id, student_id, created_at, last_updated, duration_weeks, weekly_plans, overall_goals, success_metrics
        FROM roadmaps WHERE id = $1 LIMIT 1`
	var row roadmapRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find roadmap: %w", err)
	}
	return row.toModel()
}

// FindLatestByStudent returns the student's most recently created roadmap,
// or nil when the student has none.
func (r *RoadmapRepository) FindLatestByStudent(ctx context.Context, studentID string) (*models.Roadmap, error) {
	const query = `SELECT id, student_id, created_at, last_updated, duration_weeks, weekly_plans, overall_goals, success_metrics
        FROM roadmaps WHERE student_id = $1 ORDER BY created_at DESC LIMIT 1`
	var row roadmapRow
	if err := r.db.GetContext(ctx, &row, query, studentID); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find latest roadmap: %w", err)
	}
	return row.toModel()
}

func (row roadmapRow) toModel() (*models.Roadmap, error) {
	roadmap := &models.Roadmap{
		ID:            row.ID,
		StudentID:     row.StudentID,
		CreatedAt:     row.CreatedAt,
		LastUpdated:   row.LastUpdated,
		DurationWeeks: row.DurationWeeks,
	}
	if err := json.Unmarshal(row.WeeklyPlans, &roadmap.WeeklyPlans); err != nil {
		return nil, fmt.Errorf("unmarshal weekly plans: %w", err)
	}
	if len(row.OverallGoals) > 0 {
		if err := json.Unmarshal(row.OverallGoals, &roadmap.OverallGoals); err != nil {
			return nil, fmt.Errorf("unmarshal goals: %w", err)
		}
	}
	if len(row.SuccessMetric) > 0 {
		if err := json.Unmarshal(row.SuccessMetric, &roadmap.SuccessMetric); err != nil {
			return nil, fmt.Errorf("unmarshal success metrics: %w", err)
		}
	}
	return roadmap, nil
}
