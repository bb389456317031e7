package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/sukanyaghosh74/sstudize-task/internal/dto"
	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
	"github.com/sukanyaghosh74/sstudize-task/pkg/export"
	"github.com/sukanyaghosh74/sstudize-task/pkg/storage"
)

type exportRoadmapReader interface {
	FindByID(ctx context.Context, id string) (*models.Roadmap, error)
}

// ExportDownload aggregates a resolved download: an open file handle plus the
// metadata needed to stream it. The caller owns closing File.
type ExportDownload struct {
	File      *os.File
	Filename  string
	MimeType  string
	SizeBytes int64
	ExpiresAt time.Time
}

// ExportService renders roadmaps into downloadable PDF or CSV artifacts
// stored on local disk behind signed URLs.
type ExportService struct {
	roadmaps exportRoadmapReader
	pdf      *export.PDFExporter
	csv      *export.CSVExporter
	store    *storage.LocalStorage
	signer   *storage.SignedURLSigner
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService wires export dependencies.
func NewExportService(roadmaps exportRoadmapReader, store *storage.LocalStorage, signer *storage.SignedURLSigner, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		roadmaps: roadmaps,
		pdf:      export.NewPDFExporter(),
		csv:      export.NewCSVExporter(),
		store:    store,
		signer:   signer,
		logger:   logger,
		now:      time.Now,
	}
}

// ExportRoadmap renders the roadmap's task table in the requested format and
// returns a signed download reference.
func (s *ExportService) ExportRoadmap(ctx context.Context, roadmapID, format string) (*dto.ExportResponse, error) {
	roadmap, err := s.roadmaps.FindByID(ctx, roadmapID)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "roadmap not found")
	}

	dataset := roadmapDataset(roadmap)
	title := fmt.Sprintf("Study Roadmap %s", roadmap.ID)

	var payload []byte
	var ext string
	switch strings.ToLower(format) {
	case "pdf":
		payload, err = s.pdf.Render(dataset, title)
		ext = "pdf"
	case "csv":
		payload, err = s.csv.Render(dataset)
		ext = "csv"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", ext, err)
	}

	fileName := fmt.Sprintf("roadmap_%s_%d.%s", roadmap.ID, s.now().Unix(), ext)
	if _, err := s.store.Save(fileName, payload); err != nil {
		return nil, fmt.Errorf("store export: %w", err)
	}

	token, expiresAt, err := s.signer.Generate(roadmap.ID, fileName)
	if err != nil {
		return nil, fmt.Errorf("sign export url: %w", err)
	}

	s.logger.Info("roadmap exported",
		zap.String("roadmap_id", roadmap.ID),
		zap.String("format", ext),
		zap.Int("bytes", len(payload)),
	)
	return &dto.ExportResponse{
		FileName:  fileName,
		Format:    ext,
		SizeBytes: int64(len(payload)),
		URL:       fmt.Sprintf("/exports/%s", token),
		ExpiresAt: expiresAt,
	}, nil
}

// Download redeems a signed token and opens the stored export artifact for
// streaming. The roadmap referenced by the token must still exist.
func (s *ExportService) Download(ctx context.Context, token string) (*ExportDownload, error) {
	roadmapID, relPath, expiresAt, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid or expired download token")
	}

	roadmap, err := s.roadmaps.FindByID(ctx, roadmapID)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "roadmap not found")
	}

	file, err := s.store.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file no longer available")
	}
	info, err := file.Stat()
	if err != nil {
		file.Close() //nolint:errcheck
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read export metadata")
	}

	return &ExportDownload{
		File:      file,
		Filename:  filepath.Base(relPath),
		MimeType:  exportMimeType(relPath),
		SizeBytes: info.Size(),
		ExpiresAt: expiresAt,
	}, nil
}

// Cleanup removes stored exports older than ttl and returns deleted names.
func (s *ExportService) Cleanup(ttl time.Duration) ([]string, error) {
	return s.store.CleanupOlderThan(ttl)
}

func exportMimeType(relPath string) string {
	switch strings.ToLower(filepath.Ext(relPath)) {
	case ".pdf":
		return "application/pdf"
	case ".csv":
		return "text/csv"
	default:
		return "application/octet-stream"
	}
}

// roadmapDataset flattens the weekly plans into one task table.
func roadmapDataset(roadmap *models.Roadmap) export.Dataset {
	dataset := export.Dataset{
		Headers: []string{"Week", "Subject", "Topic", "Priority", "Duration (min)", "Due Date", "Status"},
	}
	for _, plan := range roadmap.WeeklyPlans {
		for _, task := range plan.Tasks {
			dataset.Rows = append(dataset.Rows, map[string]string{
				"Week":           strconv.Itoa(plan.WeekNumber),
				"Subject":        string(task.Subject),
				"Topic":          task.Topic,
				"Priority":       string(task.Priority),
				"Duration (min)": strconv.Itoa(task.EstimatedDuration),
				"Due Date":       task.DueDate.Format("2006-01-02"),
				"Status":         string(task.Status),
			})
		}
	}
	return dataset
}
