package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/de-tools/sec-atlas/pkg/models/api"
)

type TableConfig struct {
	SeverityWidth int
	ResourceWidth int
	IssueWidth    int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		SeverityWidth: 8,
		ResourceWidth: 48,
		IssueWidth:    72,
	}
}

// Reporter renders the vulnerabilities of a report as a fixed-width table
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Write(_ context.Context, doc api.ReportDocument) error {
	funcMap := template.FuncMap{
		"formatRow": func(severity, resource, issue string) string {
			return fmt.Sprintf("| %-*s | %-*s | %-*s |",
				c.config.SeverityWidth, severity,
				c.config.ResourceWidth, truncate(resource, c.config.ResourceWidth),
				c.config.IssueWidth, truncate(issue, c.config.IssueWidth))
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+",
				strings.Repeat("-", c.config.SeverityWidth+2),
				strings.Repeat("-", c.config.ResourceWidth+2),
				strings.Repeat("-", c.config.IssueWidth+2))
		},
	}

	tmpl := `
{{separator}}
{{formatRow "Severity" "Resource" "Issue"}}
{{separator}}
{{range .Vulnerabilities}}{{formatRow (print .Severity) .Resource .Issue}}
{{end}}{{separator}}
`

	t, err := template.New("table").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, doc)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
