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

// WorkflowRepository persists feedback workflows. Attached feedback and the
// resolution travel with the workflow row as JSON documents.
type WorkflowRepository struct {
	db *sqlx.DB
}

// NewWorkflowRepository constructs a WorkflowRepository.
func NewWorkflowRepository(db *sqlx.DB) *WorkflowRepository {
	return &WorkflowRepository{db: db}
}

type workflowRow struct {
	ID              string         `db:"id"`
	StudentID       string         `db:"student_id"`
	RoadmapID       string         `db:"roadmap_id"`
	CurrentStage    string         `db:"current_stage"`
	Status          string         `db:"status"`
	TeacherFeedback sql.NullString `db:"teacher_feedback"`
	ParentFeedback  sql.NullString `db:"parent_feedback"`
	Resolution      sql.NullString `db:"resolution"`
	CreatedAt       time.Time      `db:"created_at"`
	LastUpdated     time.Time      `db:"last_updated"`
}

// Save upserts a workflow with its attached documents.
func (r *WorkflowRepository) Save(ctx context.Context, workflow *models.FeedbackWorkflow) error {
	teacherFeedback, err := marshalNullable(workflow.TeacherFeedback)
	if err != nil {
		return fmt.Errorf("marshal teacher feedback: %w", err)
	}
	parentFeedback, err := marshalNullable(workflow.ParentFeedback)
	if err != nil {
		return fmt.Errorf("marshal parent feedback: %w", err)
	}
	resolution, err := marshalNullable(workflow.Resolution)
	if err != nil {
		return fmt.Errorf("marshal resolution: %w", err)
	}

	const query = `INSERT INTO feedback_workflows (id, student_id, roadmap_id, current_stage, status, teacher_feedback, parent_feedback, resolution, created_at, last_updated)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        ON CONFLICT (id) DO UPDATE SET
            current_stage = EXCLUDED.current_stage,
            status = EXCLUDED.status,
            teacher_feedback = EXCLUDED.teacher_feedback,
            parent_feedback = EXCLUDED.parent_feedback,
            resolution = EXCLUDED.resolution,
            last_updated = EXCLUDED.last_updated`
	if _, err := r.db.ExecContext(ctx, query,
		workflow.ID, workflow.StudentID, workflow.RoadmapID,
		workflow.CurrentStage, workflow.Status,
		teacherFeedback, parentFeedback, resolution,
		workflow.CreatedAt, workflow.LastUpdated); err != nil {
		return fmt.Errorf("save workflow: %w", err)
	}
	return nil
}

// FindByID returns a workflow by identifier, or nil when absent.
func (r *WorkflowRepository) FindByID(ctx context.Context, id string) (*models.FeedbackWorkflow, error) {
	const query = `SELECT id, student_id, roadmap_id, current_stage, status, teacher_feedback, parent_feedback, resolution, created_at, last_updated
        FROM feedback_workflows WHERE id = $1 LIMIT 1`
	var row workflowRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("find workflow: %w", err)
	}
	return row.toModel()
}

// FindByStage lists workflows sitting at one stage.
func (r *WorkflowRepository) FindByStage(ctx context.Context, stage models.FeedbackStage) ([]models.FeedbackWorkflow, error) {
	const query = `SELECT id, student_id, roadmap_id, current_stage, status, teacher_feedback, parent_feedback, resolution, created_at, last_updated
        FROM feedback_workflows WHERE current_stage = $1 ORDER BY created_at ASC`
	var rows []workflowRow
	if err := r.db.SelectContext(ctx, &rows, query, stage); err != nil {
		return nil, fmt.Errorf("list workflows by stage: %w", err)
	}
	workflows := make([]models.FeedbackWorkflow, 0, len(rows))
	for _, row := range rows {
		workflow, err := row.toModel()
		if err != nil {
			return nil, err
		}
		workflows = append(workflows, *workflow)
	}
	return workflows, nil
}

func (row workflowRow) toModel() (*models.FeedbackWorkflow, error) {
	workflow := &models.FeedbackWorkflow{
		ID:           row.ID,
		StudentID:    row.StudentID,
		RoadmapID:    row.RoadmapID,
		CurrentStage: models.FeedbackStage(row.CurrentStage),
		Status:       models.FeedbackStatus(row.Status),
		CreatedAt:    row.CreatedAt,
		LastUpdated:  row.LastUpdated,
	}
	if row.TeacherFeedback.Valid && row.TeacherFeedback.String != "" {
		var feedback models.TeacherFeedback
		if err := json.Unmarshal([]byte(row.TeacherFeedback.String), &feedback); err != nil {
			return nil, fmt.Errorf("unmarshal teacher feedback: %w", err)
		}
		workflow.TeacherFeedback = &feedback
	}
	if row.ParentFeedback.Valid && row.ParentFeedback.String != "" {
		var feedback models.ParentFeedback
		if err := json.Unmarshal([]byte(row.ParentFeedback.String), &feedback); err != nil {
			return nil, fmt.Errorf("unmarshal parent feedback: %w", err)
		}
		workflow.ParentFeedback = &feedback
	}
	if row.Resolution.Valid && row.Resolution.String != "" {
		var resolution models.Resolution
		if err := json.Unmarshal([]byte(row.Resolution.String), &resolution); err != nil {
			return nil, fmt.Errorf("unmarshal resolution: %w", err)
		}
		workflow.Resolution = &resolution
	}
	return workflow, nil
}

// marshalNullable marshals a pointer document, mapping nil to SQL NULL. The
// interface value must be a typed pointer or nil.
func marshalNullable(doc interface{}) (interface{}, error) {
	switch v := doc.(type) {
	case *models.TeacherFeedback:
		if v == nil {
			return nil, nil
		}
	case *models.ParentFeedback:
		if v == nil {
			return nil, nil
		}
	case *models.Resolution:
		if v == nil {
			return nil, nil
		}
	case nil:
		return nil, nil
	}
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return payload, nil
}
