package domain

import (
	"fmt"
	"strings"
)

type Severity int

const (
	SeverityLow Severity = iota
	SeverityMedium
	SeverityHigh
	SeverityCritical
)

var severityNames = map[Severity]string{
	SeverityLow:      "LOW",
	SeverityMedium:   "MEDIUM",
	SeverityHigh:     "HIGH",
	SeverityCritical: "CRITICAL",
}

// Severities lists every severity ordered by decreasing urgency.
var Severities = []Severity{SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow}

func (s Severity) String() string {
	if name, ok := severityNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Severity(%d)", int(s))
}

func (s Severity) Valid() bool {
	_, ok := severityNames[s]
	return ok
}

func ParseSeverity(v string) (Severity, error) {
	for s, name := range severityNames {
		if strings.EqualFold(name, v) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown severity %q", v)
}

// Category identifies the resource category a check inspects.
type Category string

const (
	CategoryStorage  Category = "s3"
	CategoryNetwork  Category = "ec2"
	CategoryIdentity Category = "iam"
	CategoryDatabase Category = "rds"
)

// ParseCategories normalises category names: trimmed, lower-cased, empty entries dropped.
func ParseCategories(names ...string) []Category {
	var categories []Category
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			categories = append(categories, Category(name))
		}
	}
	return categories
}

// Finding is a single detected misconfiguration. Values are never modified once created.
type Finding struct {
	Category       Category
	Severity       Severity
	Resource       string
	Issue          string
	Recommendation string
}

func NewFinding(category Category, severity Severity, resource, issue, recommendation string) (Finding, error) {
	f := Finding{
		Category:       category,
		Severity:       severity,
		Resource:       resource,
		Issue:          issue,
		Recommendation: recommendation,
	}
	if err := f.Validate(); err != nil {
		return Finding{}, err
	}
	return f, nil
}

func (f Finding) Validate() error {
	if !f.Severity.Valid() {
		return fmt.Errorf("invalid severity %d", int(f.Severity))
	}
	if strings.TrimSpace(f.Resource) == "" {
		return fmt.Errorf("finding resource cannot be empty")
	}
	if strings.TrimSpace(f.Issue) == "" {
		return fmt.Errorf("finding issue cannot be empty")
	}
	if strings.TrimSpace(f.Recommendation) == "" {
		return fmt.Errorf("finding recommendation cannot be empty")
	}
	return nil
}

// CategoryFailure records a category whose checks were skipped during a scan.
type CategoryFailure struct {
	Category Category
	Err      error
}

func (f CategoryFailure) Reason() string {
	if f.Err == nil {
		return "unknown error"
	}
	return f.Err.Error()
}
