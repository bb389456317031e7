package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

// ReportRepository appends monitoring reports to an immutable history.
type ReportRepository struct {
	db *sqlx.DB
}

// NewReportRepository constructs a ReportRepository.
func NewReportRepository(db *sqlx.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

type reportRow struct {
	ID              string    `db:"id"`
	StudentID       string    `db:"student_id"`
	WeekNumber      int       `db:"week_number"`
	GeneratedAt     time.Time `db:"generated_at"`
	TasksCompleted  int       `db:"tasks_completed"`
	TasksPending    int       `db:"tasks_pending"`
	TasksOverdue    int       `db:"tasks_overdue"`
	AdherenceRate   float64   `db:"adherence_rate"`
	Irregularities  []byte    `db:"irregularities"`
	Recommendations []byte    `db:"recommendations"`
	AgentResults    []byte    `db:"agent_results"`
}

// Insert appends one report. Reports are never updated afterwards.
func (r *ReportRepository) Insert(ctx context.Context, report *models.MonitoringReport) error {
	irregularities, err := json.Marshal(report.Irregularities)
	if err != nil {
		return fmt.Errorf("marshal irregularities: %w", err)
	}
	recommendations, err := json.Marshal(report.Recommendations)
	if err != nil {
		return fmt.Errorf("marshal recommendations: %w", err)
	}
	agentResults, err := json.Marshal(report.AgentResults)
	if err != nil {
		return fmt.Errorf("marshal agent results: %w", err)
	}

	const query = `INSERT INTO monitoring_reports (id, student_id, week_number, generated_at, tasks_completed, tasks_pending, tasks_overdue, adherence_rate, irregularities, recommendations, agent_results)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := r.db.ExecContext(ctx, query,
		report.ID, report.StudentID, report.WeekNumber, report.GeneratedAt,
		report.TasksCompleted, report.TasksPending, report.TasksOverdue,
		report.AdherenceRate, irregularities, recommendations, agentResults); err != nil {
		return fmt.Errorf("insert monitoring report: %w", err)
	}
	return nil
}

// RecentByStudent returns the newest reports for a student, most recent
// first.
func (r *ReportRepository) RecentByStudent(ctx context.Context, studentID string, limit int) ([]models.MonitoringReport, error) {
	const query = `SELECT id, student_id, week_number, generated_at, tasks_completed, tasks_pending, tasks_overdue, adherence_rate, irregularities, recommendations, agent_results
        FROM monitoring_reports WHERE student_id = $1 ORDER BY generated_at DESC LIMIT $2`
	var rows []reportRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID, limit); err != nil {
		return nil, fmt.Errorf("list monitoring reports: %w", err)
	}

	reports := make([]models.MonitoringReport, 0, len(rows))
	for _, row := range rows {
		report := models.MonitoringReport{
			ID:             row.ID,
			StudentID:      row.StudentID,
			WeekNumber:     row.WeekNumber,
			GeneratedAt:    row.GeneratedAt,
			TasksCompleted: row.TasksCompleted,
			TasksPending:   row.TasksPending,
			TasksOverdue:   row.TasksOverdue,
			AdherenceRate:  row.AdherenceRate,
		}
		if len(row.Irregularities) > 0 {
			if err := json.Unmarshal(row.Irregularities, &report.Irregularities); err != nil {
				return nil, fmt.Errorf("unmarshal irregularities: %w", err)
			}
		}
		if len(row.Recommendations) > 0 {
			if err := json.Unmarshal(row.Recommendations, &report.Recommendations); err != nil {
				return nil, fmt.Errorf("unmarshal recommendations: %w", err)
			}
		}
		if len(row.AgentResults) > 0 {
			if err := json.Unmarshal(row.AgentResults, &report.AgentResults); err != nil {
				return nil, fmt.Errorf("unmarshal agent results: %w", err)
			}
		}
		reports = append(reports, report)
	}
	return reports, nil
}
