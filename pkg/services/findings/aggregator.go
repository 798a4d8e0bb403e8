package findings

import (
	"strings"
	"sync"

	"github.com/de-tools/sec-atlas/pkg/models/domain"
)

// Predicate selects findings in Filter
type Predicate func(domain.Finding) bool

// Aggregator is an append-only ordered collection of findings, safe for concurrent use.
type Aggregator struct {
	mu       sync.RWMutex
	findings []domain.Finding
}

func NewAggregator() *Aggregator {
	return &Aggregator{}
}

func (a *Aggregator) Append(f domain.Finding) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.findings = append(a.findings, f)
}

// AppendAll appends the batch contiguously, preserving its order.
func (a *Aggregator) AppendAll(batch []domain.Finding) {
	if len(batch) == 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.findings = append(a.findings, batch...)
}

// All returns a copy of every finding in insertion order.
func (a *Aggregator) All() []domain.Finding {
	a.mu.RLock()
	defer a.mu.RUnlock()

	res := make([]domain.Finding, len(a.findings))
	copy(res, a.findings)
	return res
}

func (a *Aggregator) Count() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return len(a.findings)
}

func (a *Aggregator) Filter(pred Predicate) []domain.Finding {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var res []domain.Finding
	for _, f := range a.findings {
		if pred(f) {
			res = append(res, f)
		}
	}
	return res
}

func IssueContains(substr string) Predicate {
	return func(f domain.Finding) bool {
		return strings.Contains(f.Issue, substr)
	}
}

func WithSeverity(s domain.Severity) Predicate {
	return func(f domain.Finding) bool {
		return f.Severity == s
	}
}

func InCategory(c domain.Category) Predicate {
	return func(f domain.Finding) bool {
		return f.Category == c
	}
}

func ForResource(resource string) Predicate {
	return func(f domain.Finding) bool {
		return f.Resource == resource
	}
}
