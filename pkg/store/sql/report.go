package sql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/de-tools/sec-atlas/pkg/models/api"
	"github.com/rs/zerolog"
)

var ErrNoReports = errors.New("no report has been stored yet")

// ReportStore persists report documents, one row per completed scan
type ReportStore interface {
	Add(ctx context.Context, doc api.ReportDocument) (int64, error)
	Latest(ctx context.Context) (*api.ReportDocument, error)
	// Write stores the document and satisfies the scan report sink contract
	Write(ctx context.Context, doc api.ReportDocument) error
}

type reportStore struct {
	db *sql.DB
}

func NewReportStore(db *sql.DB) (ReportStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return &reportStore{db: db}, nil
}

const insertReport = `
		INSERT INTO scan_reports (scan_date, region, total_vulnerabilities, document)
		VALUES (?, ?, ?, ?)
		RETURNING id`

const selectLatestReport = `
		SELECT document
		FROM scan_reports
		ORDER BY id DESC
		LIMIT 1`

func (s *reportStore) Add(ctx context.Context, doc api.ReportDocument) (int64, error) {
	scanDate, err := time.Parse(time.RFC3339, doc.ScanDate)
	if err != nil {
		return 0, fmt.Errorf("invalid scan date %q: %w", doc.ScanDate, err)
	}

	document, err := json.Marshal(doc)
	if err != nil {
		return 0, fmt.Errorf("marshal report: %w", err)
	}

	var id int64
	err = s.db.QueryRowContext(ctx, insertReport, scanDate.UTC(), doc.Region, doc.TotalVulnerabilities, string(document)).
		Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert report: %w", err)
	}

	zerolog.Ctx(ctx).Info().Int64("report_id", id).Str("region", doc.Region).Msg("report stored")
	return id, nil
}

func (s *reportStore) Latest(ctx context.Context) (*api.ReportDocument, error) {
	var document string
	err := s.db.QueryRowContext(ctx, selectLatestReport).Scan(&document)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoReports
	}
	if err != nil {
		return nil, fmt.Errorf("query latest report: %w", err)
	}

	var doc api.ReportDocument
	if err := json.Unmarshal([]byte(document), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &doc, nil
}

func (s *reportStore) Write(ctx context.Context, doc api.ReportDocument) error {
	_, err := s.Add(ctx, doc)
	return err
}
