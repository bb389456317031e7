package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

// CatalogRepository reads DB-provisioned exam trends and learning resources.
// When both tables are empty the file-based catalogs remain authoritative.
type CatalogRepository struct {
	db *sqlx.DB
}

// NewCatalogRepository creates the repository.
func NewCatalogRepository(db *sqlx.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListExamTrends returns every provisioned exam trend.
func (r *CatalogRepository) ListExamTrends(ctx context.Context) ([]models.ExamTrend, error) {
	const query = `SELECT subject, topic, frequency, difficulty_level, weightage, last_asked
        FROM exam_trends ORDER BY subject ASC, frequency DESC`

	var trends []models.ExamTrend
	if err := r.db.SelectContext(ctx, &trends, query); err != nil {
		return nil, err
	}
	return trends, nil
}

// ListLearningResources returns every provisioned learning resource.
func (r *CatalogRepository) ListLearningResources(ctx context.Context) ([]models.LearningResource, error) {
	const query = `SELECT id, title, resource_type, subject, topic, difficulty_level, estimated_time, url, description
        FROM learning_resources ORDER BY subject ASC, id ASC`

	var resources []models.LearningResource
	if err := r.db.SelectContext(ctx, &resources, query); err != nil {
		return nil, err
	}
	return resources, nil
}
