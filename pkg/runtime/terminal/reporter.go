package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/de-tools/sec-atlas/pkg/adapters"
	"github.com/de-tools/sec-atlas/pkg/models/api"
)

const summaryTemplate = `
Security scan of {{.Report.Region}} at {{.Report.ScanDate}}
Total vulnerabilities: {{.Report.TotalVulnerabilities}}
{{range .Severities}}
{{.}}: {{index $.Summary .}}{{end}}
`

const skippedTemplate = `
=== Skipped categories ===
{{range .}}
- {{.Category}}: {{.Reason}}{{end}}
`

// Reporter outputs reports to the console in a formatted text form
type Reporter struct {
	writer  io.Writer
	summary *template.Template
	skipped *template.Template
}

// NewReporter creates a new console reporter
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer:  writer,
		summary: template.Must(template.New("summary").Parse(summaryTemplate)),
		skipped: template.Must(template.New("skipped").Parse(skippedTemplate)),
	}
}

func (c *Reporter) Write(_ context.Context, doc api.ReportDocument) error {
	data := struct {
		Report     api.ReportDocument
		Summary    map[api.Severity]int
		Severities []api.Severity
	}{
		Report:     doc,
		Summary:    adapters.SummarizeSeverities(doc.Vulnerabilities),
		Severities: api.Severities,
	}

	if err := c.summary.Execute(c.writer, data); err != nil {
		return fmt.Errorf("failed to render report summary: %w", err)
	}
	return nil
}

// WriteSkipped prints the categories that could not be evaluated. Nothing is printed when there are none.
func (c *Reporter) WriteSkipped(skipped []api.SkippedCategory) error {
	if len(skipped) == 0 {
		return nil
	}
	if err := c.skipped.Execute(c.writer, skipped); err != nil {
		return fmt.Errorf("failed to render skipped categories: %w", err)
	}
	return nil
}
