package sql

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/sec-atlas/pkg/models/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport() api.ReportDocument {
	return api.ReportDocument{
		ScanDate:             "2025-06-01T10:00:05Z",
		Region:               "us-east-1",
		TotalVulnerabilities: 1,
		Vulnerabilities: []api.Vulnerability{
			{Severity: api.SeverityHigh, Resource: "RDS Instance: db-1", Issue: "Database instance is publicly accessible", Recommendation: "Disable public access"},
		},
	}
}

func TestNewReportStore_NilDB(t *testing.T) {
	store, err := NewReportStore(nil)
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestReportStore_Add(t *testing.T) {
	// Given
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	doc := sampleReport()
	document, err := json.Marshal(doc)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(insertReport)).
		WithArgs(time.Date(2025, 6, 1, 10, 0, 5, 0, time.UTC), "us-east-1", 1, string(document)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	store, err := NewReportStore(db)
	require.NoError(t, err)

	// When
	id, err := store.Add(context.Background(), doc)

	// Then
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReportStore_Add_Errors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewReportStore(db)
	require.NoError(t, err)

	t.Run("invalid scan date", func(t *testing.T) {
		doc := sampleReport()
		doc.ScanDate = "yesterday"
		_, err := store.Add(context.Background(), doc)
		assert.ErrorContains(t, err, "invalid scan date")
	})

	t.Run("insert failure", func(t *testing.T) {
		errExpected := errors.New("disk full")
		mock.ExpectQuery(regexp.QuoteMeta(insertReport)).WillReturnError(errExpected)

		err := store.Write(context.Background(), sampleReport())
		assert.ErrorIs(t, err, errExpected)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestReportStore_Latest(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	store, err := NewReportStore(db)
	require.NoError(t, err)

	t.Run("returns stored document", func(t *testing.T) {
		document, err := json.Marshal(sampleReport())
		require.NoError(t, err)
		mock.ExpectQuery(regexp.QuoteMeta(selectLatestReport)).
			WillReturnRows(sqlmock.NewRows([]string{"document"}).AddRow(string(document)))

		doc, err := store.Latest(context.Background())

		require.NoError(t, err)
		assert.Equal(t, sampleReport(), *doc)
	})

	t.Run("empty table", func(t *testing.T) {
		mock.ExpectQuery(regexp.QuoteMeta(selectLatestReport)).
			WillReturnRows(sqlmock.NewRows([]string{"document"}))

		_, err := store.Latest(context.Background())

		assert.ErrorIs(t, err, ErrNoReports)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
