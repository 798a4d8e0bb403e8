package adapters

import (
	"github.com/de-tools/sec-atlas/pkg/models/api"
	"github.com/de-tools/sec-atlas/pkg/models/domain"
)

func MapSeverityDomainToApi(s domain.Severity) api.Severity {
	switch s {
	case domain.SeverityLow:
		return api.SeverityLow
	case domain.SeverityMedium:
		return api.SeverityMedium
	case domain.SeverityHigh:
		return api.SeverityHigh
	case domain.SeverityCritical:
		return api.SeverityCritical
	default:
		return api.SeverityLow
	}
}

func MapFindingDomainToApi(f domain.Finding) api.Vulnerability {
	return api.Vulnerability{
		Severity:       MapSeverityDomainToApi(f.Severity),
		Resource:       f.Resource,
		Issue:          f.Issue,
		Recommendation: f.Recommendation,
	}
}

func MapFindingsDomainToApi(findings []domain.Finding) []api.Vulnerability {
	res := make([]api.Vulnerability, 0, len(findings))
	for _, f := range findings {
		res = append(res, MapFindingDomainToApi(f))
	}
	return res
}

// SummarizeSeverities counts vulnerabilities per severity. Every severity is present in the result.
func SummarizeSeverities(vulns []api.Vulnerability) map[api.Severity]int {
	summary := map[api.Severity]int{
		api.SeverityCritical: 0,
		api.SeverityHigh:     0,
		api.SeverityMedium:   0,
		api.SeverityLow:      0,
	}
	for _, v := range vulns {
		summary[v.Severity]++
	}
	return summary
}

func MapCategoryFailuresDomainToApi(failures []domain.CategoryFailure) []api.SkippedCategory {
	res := make([]api.SkippedCategory, 0, len(failures))
	for _, f := range failures {
		res = append(res, api.SkippedCategory{
			Category: string(f.Category),
			Reason:   f.Reason(),
		})
	}
	return res
}
