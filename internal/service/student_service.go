package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/sukanyaghosh74/sstudize-task/internal/dto"
	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
)

type studentRepository interface {
	Create(ctx context.Context, student *models.StudentProfile) error
	FindByID(ctx context.Context, id string) (*models.StudentProfile, error)
	AppendPerformance(ctx context.Context, metric *models.PerformanceMetric) error
	AppendHabit(ctx context.Context, habit *models.StudyHabit) error
	UpdateScores(ctx context.Context, studentID string, currentScores map[models.Subject]float64) error
}

// StudentService maintains student profiles and their append-only histories.
type StudentService struct {
	repo      studentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs a StudentService.
func NewStudentService(repo studentRepository, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &StudentService{repo: repo, validator: validate, logger: logger}
}

// Create registers a new student profile.
func (s *StudentService) Create(ctx context.Context, req dto.CreateStudentRequest) (*models.StudentProfile, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid student payload")
	}

	student := &models.StudentProfile{
		Name:                 req.Name,
		Age:                  req.Age,
		Grade:                req.Grade,
		TargetScores:         toSubjectScores(req.TargetScores),
		CurrentScores:        toSubjectScores(req.CurrentScores),
		LearningStyle:        req.LearningStyle,
		AvailableHoursPerDay: req.AvailableHoursPerDay,
		PreferredStudyTimes:  req.PreferredStudyTimes,
	}
	if err := s.repo.Create(ctx, student); err != nil {
		return nil, err
	}

	s.logger.Info("student created", zap.String("student_id", student.ID))
	return student, nil
}

// Get returns the full assembled profile.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentProfile, error) {
	student, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return student, nil
}

// RecordPerformance appends an assessment result and refreshes the
// student's current score for that subject.
func (s *StudentService) RecordPerformance(ctx context.Context, studentID string, req dto.RecordPerformanceRequest) (*models.PerformanceMetric, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid performance payload")
	}

	student, err := s.Get(ctx, studentID)
	if err != nil {
		return nil, err
	}

	metric := &models.PerformanceMetric{
		StudentID: studentID,
		Subject:   models.Subject(req.Subject),
		Score:     req.Score,
		MaxScore:  req.MaxScore,
		Date:      req.Date,
		TestType:  req.TestType,
	}
	if err := s.repo.AppendPerformance(ctx, metric); err != nil {
		return nil, err
	}

	if student.CurrentScores == nil {
		student.CurrentScores = make(map[models.Subject]float64)
	}
	student.CurrentScores[metric.Subject] = metric.Percentage()
	if err := s.repo.UpdateScores(ctx, studentID, student.CurrentScores); err != nil {
		s.logger.Warn("update current scores", zap.Error(err), zap.String("student_id", studentID))
	}

	return metric, nil
}

// RecordHabit appends one study session.
func (s *StudentService) RecordHabit(ctx context.Context, studentID string, req dto.RecordHabitRequest) (*models.StudyHabit, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid habit payload")
	}

	if _, err := s.Get(ctx, studentID); err != nil {
		return nil, err
	}

	habit := &models.StudyHabit{
		StudentID:    studentID,
		Subject:      models.Subject(req.Subject),
		HoursStudied: req.HoursStudied,
		Date:         req.Date,
		FocusQuality: req.FocusQuality,
		Distractions: req.Distractions,
	}
	if habit.Date.IsZero() {
		habit.Date = time.Now()
	}
	if err := s.repo.AppendHabit(ctx, habit); err != nil {
		return nil, err
	}
	return habit, nil
}

func toSubjectScores(in map[string]float64) map[models.Subject]float64 {
	out := make(map[models.Subject]float64, len(in))
	for subject, score := range in {
		out[models.Subject(subject)] = score
	}
	return out
}
