package catalog

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
)

// Catalogs holds the reference data consulted during roadmap generation.
// Loaded once at startup and treated as read-only afterwards.
type Catalogs struct {
	ExamTrends        []models.ExamTrend
	LearningResources []models.LearningResource
}

// Load reads the catalog files, falling back to built-in defaults when a file
// is missing. A missing file is never fatal.
func Load(trendsFile, resourcesFile string, logger *zap.Logger) (*Catalogs, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	trends, err := loadExamTrends(trendsFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		logger.Warn("exam trends file not found, using default data", zap.String("file", trendsFile))
		trends = DefaultExamTrends()
	}

	resources, err := loadLearningResources(resourcesFile)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		logger.Warn("learning resources file not found, using default data", zap.String("file", resourcesFile))
		resources = DefaultLearningResources()
	}

	return &Catalogs{ExamTrends: trends, LearningResources: resources}, nil
}

// TrendsBySubject returns the exam trends for one subject in catalog order.
func (c *Catalogs) TrendsBySubject(subject models.Subject) []models.ExamTrend {
	var trends []models.ExamTrend
	for _, trend := range c.ExamTrends {
		if trend.Subject == subject {
			trends = append(trends, trend)
		}
	}
	return trends
}

// ResourcesBySubject returns the learning resources for one subject.
func (c *Catalogs) ResourcesBySubject(subject models.Subject) []models.LearningResource {
	var resources []models.LearningResource
	for _, resource := range c.LearningResources {
		if resource.Subject == subject {
			resources = append(resources, resource)
		}
	}
	return resources
}

func loadExamTrends(path string) ([]models.ExamTrend, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var trends []models.ExamTrend
	if err := yaml.Unmarshal(raw, &trends); err != nil {
		return nil, fmt.Errorf("parse exam trends %s: %w", path, err)
	}
	return trends, nil
}

func loadLearningResources(path string) ([]models.LearningResource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var resources []models.LearningResource
	if err := yaml.Unmarshal(raw, &resources); err != nil {
		return nil, fmt.Errorf("parse learning resources %s: %w", path, err)
	}
	return resources, nil
}
