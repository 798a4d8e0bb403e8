package api

type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

// Severities lists every severity from the most to the least severe
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

type Vulnerability struct {
	Severity       Severity `json:"severity"`
	Resource       string   `json:"resource"`
	Issue          string   `json:"issue"`
	Recommendation string   `json:"recommendation"`
}

// ReportDocument is the persisted result of a completed scan.
type ReportDocument struct {
	ScanDate             string          `json:"scan_date"`
	Region               string          `json:"region"`
	TotalVulnerabilities int             `json:"total_vulnerabilities"`
	Vulnerabilities      []Vulnerability `json:"vulnerabilities"`
}

type SkippedCategory struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// ScanResponse is returned by the web API. Skipped categories are reported next to
// the document rather than inside it.
type ScanResponse struct {
	Report  ReportDocument    `json:"report"`
	Summary map[Severity]int  `json:"summary"`
	Skipped []SkippedCategory `json:"skipped"`
}

// ScanRequest selects the categories to scan. An empty list scans every category.
type ScanRequest struct {
	Checks []string `json:"checks"`
}

type Check struct {
	Category string `json:"category"`
}
