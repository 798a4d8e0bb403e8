package scan

import (
	"context"

	"github.com/de-tools/sec-atlas/pkg/adapters"
	"github.com/de-tools/sec-atlas/pkg/models/api"
	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/de-tools/sec-atlas/pkg/services/checks"
)

// Service runs complete scans on demand against a fixed registry and policy
type Service struct {
	registry checks.Registry
	policy   checks.Policy
	settings Settings
	sinks    []Sink
	opts     []Option
}

func NewService(registry checks.Registry, policy checks.Policy, settings Settings, sinks []Sink, opts ...Option) *Service {
	return &Service{
		registry: registry,
		policy:   policy,
		settings: settings,
		sinks:    sinks,
		opts:     opts,
	}
}

func (s *Service) ListCategories() []domain.Category {
	return s.registry.ListCategories()
}

// Scan runs the selected categories, emits the report to every sink and returns
// the report together with its severity summary and skipped categories.
func (s *Service) Scan(ctx context.Context, categories []domain.Category) (api.ScanResponse, error) {
	selected, err := s.registry.Create(s.policy, categories...)
	if err != nil {
		return api.ScanResponse{}, err
	}

	orchestrator := NewOrchestrator(selected, s.settings, s.opts...)
	session, err := orchestrator.RunScan(ctx)
	if err != nil {
		return api.ScanResponse{}, err
	}

	doc, err := orchestrator.Emit(ctx, session, s.sinks...)
	if err != nil {
		return api.ScanResponse{}, err
	}

	return api.ScanResponse{
		Report:  doc,
		Summary: adapters.SummarizeSeverities(doc.Vulnerabilities),
		Skipped: adapters.MapCategoryFailuresDomainToApi(session.Failures()),
	}, nil
}
