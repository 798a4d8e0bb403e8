package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/de-tools/sec-atlas/pkg/models/api"
	"github.com/rs/zerolog"
)

const fileTimeLayout = "20060102_150405"

// FileSink writes each report document as an indented JSON file into a directory
type FileSink struct {
	dir   string
	clock func() time.Time
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir, clock: time.Now}
}

// FileName returns security_report_<YYYYMMDD_HHMMSS>.json stamped with the scan date
func (s *FileSink) FileName(doc api.ReportDocument) string {
	stamp, err := time.Parse(time.RFC3339, doc.ScanDate)
	if err != nil {
		stamp = s.clock()
	}
	return fmt.Sprintf("security_report_%s.json", stamp.UTC().Format(fileTimeLayout))
}

func (s *FileSink) Write(ctx context.Context, doc api.ReportDocument) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	path := filepath.Join(s.dir, s.FileName(doc))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	zerolog.Ctx(ctx).Info().Str("path", path).Msg("report saved")
	return nil
}
