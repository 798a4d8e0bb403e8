package terminal

import (
	"bytes"
	"context"
	"testing"

	"github.com/de-tools/sec-atlas/pkg/models/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReporter_Write(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewReporter(&buf)

	err := reporter.Write(context.Background(), api.ReportDocument{
		ScanDate:             "2025-06-01T10:00:05Z",
		Region:               "us-east-1",
		TotalVulnerabilities: 2,
		Vulnerabilities: []api.Vulnerability{
			{Severity: api.SeverityCritical, Resource: "Security Group: sg-1 (web)", Issue: "Inbound tcp traffic open to 0.0.0.0/0 on port 22", Recommendation: "Restrict"},
			{Severity: api.SeverityMedium, Resource: "RDS Instance: db-1", Issue: "Database storage is not encrypted at rest", Recommendation: "Encrypt"},
		},
	})

	require.NoError(t, err)
	out := buf.String()
	assert.Contains(t, out, "Security scan of us-east-1 at 2025-06-01T10:00:05Z")
	assert.Contains(t, out, "Total vulnerabilities: 2")
	assert.Contains(t, out, "CRITICAL: 1")
	assert.Contains(t, out, "HIGH: 0")
	assert.Contains(t, out, "MEDIUM: 1")
	assert.Contains(t, out, "LOW: 0")
}

func TestReporter_WriteSkipped(t *testing.T) {
	t.Run("lists categories", func(t *testing.T) {
		var buf bytes.Buffer
		err := NewReporter(&buf).WriteSkipped([]api.SkippedCategory{{Category: "iam", Reason: "access denied"}})

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "=== Skipped categories ===")
		assert.Contains(t, buf.String(), "- iam: access denied")
	})

	t.Run("nothing skipped", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, NewReporter(&buf).WriteSkipped(nil))
		assert.Empty(t, buf.String())
	})
}
