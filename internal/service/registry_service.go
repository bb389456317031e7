package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sukanyaghosh74/sstudize-task/internal/dto"
	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
)

type registryRepository interface {
	SaveTeacher(ctx context.Context, teacher *models.Teacher) error
	SaveParent(ctx context.Context, parent *models.Parent) error
	ActiveTeachers(ctx context.Context) ([]models.Teacher, error)
	ParentsOfStudent(ctx context.Context, studentID string) ([]models.Parent, error)
	FindTeacherByID(ctx context.Context, id string) (*models.Teacher, error)
	FindParentByID(ctx context.Context, id string) (*models.Parent, error)
}

// RegistryService manages the reviewer registries used by the feedback
// pipeline.
type RegistryService struct {
	repo      registryRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRegistryService constructs a RegistryService.
func NewRegistryService(repo registryRepository, validate *validator.Validate, logger *zap.Logger) *RegistryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &RegistryService{repo: repo, validator: validate, logger: logger}
}

// RegisterTeacher adds an active teacher to the registry.
func (s *RegistryService) RegisterTeacher(ctx context.Context, req dto.RegisterTeacherRequest) (*models.Teacher, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid teacher payload")
	}

	subjects := make([]models.Subject, 0, len(req.Subjects))
	for _, subject := range req.Subjects {
		subjects = append(subjects, models.Subject(subject))
	}
	maxStudents := req.MaxStudents
	if maxStudents <= 0 {
		maxStudents = 50
	}

	teacher := &models.Teacher{
		Name:           req.Name,
		Email:          req.Email,
		Subjects:       subjects,
		ExpertiseLevel: req.ExpertiseLevel,
		MaxStudents:    maxStudents,
		Active:         true,
	}
	if err := s.repo.SaveTeacher(ctx, teacher); err != nil {
		return nil, err
	}

	s.logger.Info("teacher registered", zap.String("teacher_id", teacher.ID), zap.String("name", teacher.Name))
	return teacher, nil
}

// RegisterParent adds an active parent with default notification
// preferences.
func (s *RegistryService) RegisterParent(ctx context.Context, req dto.RegisterParentRequest) (*models.Parent, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid parent payload")
	}

	parent := &models.Parent{
		Name:        req.Name,
		Email:       req.Email,
		StudentIDs:  req.StudentIDs,
		Preferences: models.DefaultNotificationPreferences(),
		Active:      true,
	}
	if err := s.repo.SaveParent(ctx, parent); err != nil {
		return nil, err
	}

	s.logger.Info("parent registered", zap.String("parent_id", parent.ID), zap.String("name", parent.Name))
	return parent, nil
}

// ActiveTeachers lists all active teachers.
func (s *RegistryService) ActiveTeachers(ctx context.Context) ([]models.Teacher, error) {
	return s.repo.ActiveTeachers(ctx)
}

// ParentsOfStudent lists active parents linked to a student.
func (s *RegistryService) ParentsOfStudent(ctx context.Context, studentID string) ([]models.Parent, error) {
	return s.repo.ParentsOfStudent(ctx, studentID)
}

// FindParentByID returns one parent, or nil when absent.
func (s *RegistryService) FindParentByID(ctx context.Context, id string) (*models.Parent, error) {
	return s.repo.FindParentByID(ctx, id)
}

// FindTeacherByID returns one teacher, or nil when absent.
func (s *RegistryService) FindTeacherByID(ctx context.Context, id string) (*models.Teacher, error) {
	return s.repo.FindTeacherByID(ctx, id)
}
