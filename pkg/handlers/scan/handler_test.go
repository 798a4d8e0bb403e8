package scan

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/de-tools/sec-atlas/pkg/models/api"
	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/de-tools/sec-atlas/pkg/services/checks"
	storesql "github.com/de-tools/sec-atlas/pkg/store/sql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockScanner struct {
	mock.Mock
}

func (m *mockScanner) ListCategories() []domain.Category {
	args := m.Called()
	return args.Get(0).([]domain.Category)
}

func (m *mockScanner) Scan(ctx context.Context, categories []domain.Category) (api.ScanResponse, error) {
	args := m.Called(ctx, categories)
	return args.Get(0).(api.ScanResponse), args.Error(1)
}

type mockReports struct {
	mock.Mock
}

func (m *mockReports) Latest(ctx context.Context) (*api.ReportDocument, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*api.ReportDocument), args.Error(1)
}

func sampleResponse() api.ScanResponse {
	return api.ScanResponse{
		Report: api.ReportDocument{
			ScanDate:             "2025-06-01T10:00:05Z",
			Region:               "us-east-1",
			TotalVulnerabilities: 1,
			Vulnerabilities: []api.Vulnerability{
				{Severity: api.SeverityHigh, Resource: "S3 Bucket: b", Issue: "public", Recommendation: "block"},
			},
		},
		Summary: map[api.Severity]int{api.SeverityCritical: 0, api.SeverityHigh: 1, api.SeverityMedium: 0, api.SeverityLow: 0},
		Skipped: []api.SkippedCategory{{Category: "iam", Reason: "denied"}},
	}
}

func TestHandler_ListChecks(t *testing.T) {
	scanner := new(mockScanner)
	scanner.On("ListCategories").Return([]domain.Category{domain.CategoryStorage, domain.CategoryIdentity})
	h := NewHandler(scanner, new(mockReports))

	rec := httptest.NewRecorder()
	h.ListChecks(rec, httptest.NewRequest(http.MethodGet, "/api/v1/checks", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var got []api.Check
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, []api.Check{{Category: "s3"}, {Category: "iam"}}, got)
}

func TestHandler_RunScan(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		categories     []domain.Category
		result         api.ScanResponse
		err            error
		expectedStatus int
	}{
		{
			name:           "all categories",
			body:           "",
			categories:     nil,
			result:         sampleResponse(),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "selected categories",
			body:           `{"checks": ["s3", "iam"]}`,
			categories:     []domain.Category{domain.CategoryStorage, domain.CategoryIdentity},
			result:         sampleResponse(),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "category names are normalised",
			body:           `{"checks": [" S3", "IAM", ""]}`,
			categories:     []domain.Category{domain.CategoryStorage, domain.CategoryIdentity},
			result:         sampleResponse(),
			expectedStatus: http.StatusOK,
		},
		{
			name:           "unknown category",
			body:           `{"checks": ["gcs"]}`,
			categories:     []domain.Category{"gcs"},
			err:            fmt.Errorf("category %q is not registered: %w", "gcs", checks.ErrUnknownCategory),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "sink failure",
			body:           `{}`,
			categories:     nil,
			err:            errors.New("failed to write report: disk full"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			scanner := new(mockScanner)
			scanner.On("Scan", mock.Anything, tc.categories).Return(tc.result, tc.err)
			h := NewHandler(scanner, new(mockReports))

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/scans", strings.NewReader(tc.body))
			h.RunScan(rec, req)

			assert.Equal(t, tc.expectedStatus, rec.Code)
			scanner.AssertExpectations(t)
			if tc.expectedStatus != http.StatusOK {
				return
			}

			var got api.ScanResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
			assert.Equal(t, tc.result, got)
		})
	}
}

func TestHandler_RunScan_InvalidBody(t *testing.T) {
	scanner := new(mockScanner)
	h := NewHandler(scanner, new(mockReports))

	rec := httptest.NewRecorder()
	h.RunScan(rec, httptest.NewRequest(http.MethodPost, "/api/v1/scans", strings.NewReader("{")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	scanner.AssertNotCalled(t, "Scan", mock.Anything, mock.Anything)
}

func TestHandler_GetLatestReport(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		doc := sampleResponse().Report
		reports := new(mockReports)
		reports.On("Latest", mock.Anything).Return(&doc, nil)

		rec := httptest.NewRecorder()
		NewHandler(new(mockScanner), reports).GetLatestReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scans/latest", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		var got api.ReportDocument
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, doc, got)
	})

	t.Run("none stored", func(t *testing.T) {
		reports := new(mockReports)
		reports.On("Latest", mock.Anything).Return(nil, storesql.ErrNoReports)

		rec := httptest.NewRecorder()
		NewHandler(new(mockScanner), reports).GetLatestReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scans/latest", nil))

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("store failure", func(t *testing.T) {
		reports := new(mockReports)
		reports.On("Latest", mock.Anything).Return(nil, errors.New("connection reset"))

		rec := httptest.NewRecorder()
		NewHandler(new(mockScanner), reports).GetLatestReport(rec, httptest.NewRequest(http.MethodGet, "/api/v1/scans/latest", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}
