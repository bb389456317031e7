package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sukanyaghosh74/sstudize-task/internal/dto"
	"github.com/sukanyaghosh74/sstudize-task/internal/models"
	"github.com/sukanyaghosh74/sstudize-task/internal/service"
	appErrors "github.com/sukanyaghosh74/sstudize-task/pkg/errors"
)

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type fakeRoadmapSrv struct {
	roadmap    *models.Roadmap
	err        error
	cacheHit   bool
	lastID     string
	lastWeeks  int
	lastStatus models.TaskStatus
}

func (f *fakeRoadmapSrv) Generate(_ context.Context, studentID string, durationWeeks int) (*models.Roadmap, error) {
	f.lastID = studentID
	f.lastWeeks = durationWeeks
	return f.roadmap, f.err
}

func (f *fakeRoadmapSrv) Replan(_ context.Context, roadmapID string, _ []models.PerformanceMetric) (*models.Roadmap, error) {
	f.lastID = roadmapID
	return f.roadmap, f.err
}

func (f *fakeRoadmapSrv) Get(_ context.Context, roadmapID string) (*models.Roadmap, bool, error) {
	f.lastID = roadmapID
	return f.roadmap, f.cacheHit, f.err
}

func (f *fakeRoadmapSrv) Latest(_ context.Context, studentID string) (*models.Roadmap, error) {
	f.lastID = studentID
	return f.roadmap, f.err
}

func (f *fakeRoadmapSrv) UpdateTaskStatus(_ context.Context, roadmapID, _ string, status models.TaskStatus, _ *int, _ string) (*models.Roadmap, error) {
	f.lastID = roadmapID
	f.lastStatus = status
	return f.roadmap, f.err
}

type fakeExporterSrv struct {
	res        *dto.ExportResponse
	download   *service.ExportDownload
	err        error
	lastFormat string
	lastToken  string
}

func (f *fakeExporterSrv) ExportRoadmap(_ context.Context, _ string, format string) (*dto.ExportResponse, error) {
	f.lastFormat = format
	return f.res, f.err
}

func (f *fakeExporterSrv) Download(_ context.Context, token string) (*service.ExportDownload, error) {
	f.lastToken = token
	return f.download, f.err
}

func TestRoadmapHandlerGenerateSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeRoadmapSrv{roadmap: &models.Roadmap{ID: "roadmap_1", StudentID: "student_001"}}
	handler := NewRoadmapHandler(srv, &fakeExporterSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	body := `{"studentId":"student_001","durationWeeks":8}`
	c.Request = httptest.NewRequest(http.MethodPost, "/roadmaps", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Generate(c)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "student_001", srv.lastID)
	assert.Equal(t, 8, srv.lastWeeks)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "roadmap_1", envelope.Data["id"])
}

func TestRoadmapHandlerGenerateInvalidPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRoadmapHandler(&fakeRoadmapSrv{}, &fakeExporterSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/roadmaps", strings.NewReader("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Generate(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoadmapHandlerGetReportsCacheHit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeRoadmapSrv{roadmap: &models.Roadmap{ID: "roadmap_1"}, cacheHit: true}
	handler := NewRoadmapHandler(srv, &fakeExporterSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/roadmaps/roadmap_1", nil)
	c.Params = gin.Params{{Key: "id", Value: "roadmap_1"}}

	handler.Get(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "roadmap_1", srv.lastID)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Meta["cache_hit"])
}

func TestRoadmapHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRoadmapHandler(&fakeRoadmapSrv{err: appErrors.ErrNotFound}, &fakeExporterSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/roadmaps/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRoadmapHandlerLatestRequiresStudent(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewRoadmapHandler(&fakeRoadmapSrv{}, &fakeExporterSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/roadmaps/latest", nil)

	handler.Latest(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoadmapHandlerUpdateTaskStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeRoadmapSrv{roadmap: &models.Roadmap{ID: "roadmap_1"}}
	handler := NewRoadmapHandler(srv, &fakeExporterSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	body := `{"status":"completed","actualDuration":45}`
	c.Request = httptest.NewRequest(http.MethodPatch, "/roadmaps/roadmap_1/tasks/task_1", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: "roadmap_1"}, {Key: "taskId", Value: "task_1"}}

	handler.UpdateTaskStatus(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.TaskStatusCompleted, srv.lastStatus)
}

func TestRoadmapHandlerExportRejectsUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := &fakeExporterSrv{}
	handler := NewRoadmapHandler(&fakeRoadmapSrv{}, exporter)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/roadmaps/roadmap_1/export?format=xlsx", nil)
	c.Params = gin.Params{{Key: "id", Value: "roadmap_1"}}

	handler.Export(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, exporter.lastFormat)
}

func TestRoadmapHandlerExportDefaultsToPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := &fakeExporterSrv{res: &dto.ExportResponse{FileName: "roadmap.pdf", Format: "pdf"}}
	handler := NewRoadmapHandler(&fakeRoadmapSrv{}, exporter)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/roadmaps/roadmap_1/export", nil)
	c.Params = gin.Params{{Key: "id", Value: "roadmap_1"}}

	handler.Export(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pdf", exporter.lastFormat)
}

func TestRoadmapHandlerDownloadExportStreamsFile(t *testing.T) {
	gin.SetMode(gin.TestMode)
	content := "Week,Subject\n1,physics\n"
	path := filepath.Join(t.TempDir(), "roadmap.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	file, err := os.Open(path)
	require.NoError(t, err)

	exporter := &fakeExporterSrv{download: &service.ExportDownload{
		File:      file,
		Filename:  "roadmap.csv",
		MimeType:  "text/csv",
		SizeBytes: int64(len(content)),
	}}
	handler := NewRoadmapHandler(&fakeRoadmapSrv{}, exporter)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/tok123", nil)
	c.Params = gin.Params{{Key: "token", Value: "tok123"}}

	handler.DownloadExport(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok123", exporter.lastToken)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "roadmap.csv")
	assert.Equal(t, content, rec.Body.String())
}

func TestRoadmapHandlerDownloadExportRejectsBadToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := &fakeExporterSrv{err: appErrors.ErrForbidden}
	handler := NewRoadmapHandler(&fakeRoadmapSrv{}, exporter)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/exports/garbage", nil)
	c.Params = gin.Params{{Key: "token", Value: "garbage"}}

	handler.DownloadExport(c)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
