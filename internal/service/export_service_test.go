package service

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
	"github.com/sukanyaghosh74/sstudize-task/pkg/storage"
)

type fakeExportRoadmaps struct {
	roadmap *models.Roadmap
}

func (f *fakeExportRoadmaps) FindByID(_ context.Context, id string) (*models.Roadmap, error) {
	if f.roadmap == nil || f.roadmap.ID != id {
		return nil, nil
	}
	return f.roadmap, nil
}

func exportTestRoadmap() *models.Roadmap {
	return &models.Roadmap{
		ID:        "rm-1",
		StudentID: "student_001",
		WeeklyPlans: []models.WeeklyPlan{{
			WeekNumber: 1,
			Tasks: []models.StudyTask{{
				ID:                "task-1",
				Subject:           models.SubjectPhysics,
				Topic:             "Kinematics",
				Priority:          models.PriorityHigh,
				EstimatedDuration: 60,
				DueDate:           time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
				Status:            models.TaskStatusPending,
			}},
		}},
	}
}

func newTestExportService(t *testing.T) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	return NewExportService(&fakeExportRoadmaps{roadmap: exportTestRoadmap()}, store, signer, zap.NewNop())
}

func TestExportServiceExportAndDownloadCSV(t *testing.T) {
	svc := newTestExportService(t)
	ctx := context.Background()

	res, err := svc.ExportRoadmap(ctx, "rm-1", "csv")
	require.NoError(t, err)
	assert.Equal(t, "csv", res.Format)
	assert.Greater(t, res.SizeBytes, int64(0))
	require.True(t, strings.HasPrefix(res.URL, "/exports/"))
	assert.False(t, res.ExpiresAt.IsZero())

	token := strings.TrimPrefix(res.URL, "/exports/")
	download, err := svc.Download(ctx, token)
	require.NoError(t, err)
	defer download.File.Close()

	assert.Equal(t, res.FileName, download.Filename)
	assert.Equal(t, "text/csv", download.MimeType)
	assert.Equal(t, res.SizeBytes, download.SizeBytes)

	body, err := io.ReadAll(download.File)
	require.NoError(t, err)
	assert.Contains(t, string(body), "Kinematics")
}

func TestExportServiceDownloadRejectsForgedToken(t *testing.T) {
	svc := newTestExportService(t)
	ctx := context.Background()

	res, err := svc.ExportRoadmap(ctx, "rm-1", "csv")
	require.NoError(t, err)
	token := strings.TrimPrefix(res.URL, "/exports/")

	_, err = svc.Download(ctx, token+"tampered")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestExportServiceDownloadUnknownRoadmap(t *testing.T) {
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	svc := NewExportService(&fakeExportRoadmaps{}, store, signer, zap.NewNop())

	token, _, err := signer.Generate("rm-gone", "roadmap_rm-gone_1.csv")
	require.NoError(t, err)

	_, err = svc.Download(context.Background(), token)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newTestExportService(t)

	_, err := svc.ExportRoadmap(context.Background(), "rm-1", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
