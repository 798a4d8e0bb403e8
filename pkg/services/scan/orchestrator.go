package scan

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/sec-atlas/pkg/adapters"
	"github.com/de-tools/sec-atlas/pkg/models/api"
	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/de-tools/sec-atlas/pkg/services/checks"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// Sink receives the final report document for persistence or display
type Sink interface {
	Write(ctx context.Context, doc api.ReportDocument) error
}

// Settings contains the scan scope and runtime limits
type Settings struct {
	// Region is the scope identifier reported in the document
	Region string
	// CategoryTimeout bounds each category; zero disables the limit
	CategoryTimeout time.Duration
}

type Option func(*Orchestrator)

// WithClock overrides the time source used for session timestamps and key age evaluation
func WithClock(clock func() time.Time) Option {
	return func(o *Orchestrator) {
		o.clock = clock
	}
}

type Orchestrator struct {
	checks   []checks.Check
	settings Settings
	clock    func() time.Time
}

func NewOrchestrator(checks []checks.Check, settings Settings, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		checks:   checks,
		settings: settings,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewSession creates an empty session in the INITIALIZED state
func (o *Orchestrator) NewSession() *Session {
	return newSession(o.settings.Region, o.clock().UTC())
}

// RunScan creates a new session and runs every check against it
func (o *Orchestrator) RunScan(ctx context.Context) (*Session, error) {
	session := o.NewSession()
	if err := o.Run(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

type checkResult struct {
	findings []domain.Finding
	err      error
}

// Run executes all checks concurrently and seals the session. A failing check only
// removes its own category from the results.
func (o *Orchestrator) Run(ctx context.Context, session *Session) error {
	if err := session.start(); err != nil {
		return err
	}

	logger := zerolog.Ctx(ctx).With().Str("region", session.Region()).Logger()
	logger.Info().Int("checks", len(o.checks)).Msg("scan started")

	now := session.StartedAt()
	results := make([]checkResult, len(o.checks))

	var g errgroup.Group
	for i, check := range o.checks {
		g.Go(func() error {
			results[i] = o.runCheck(ctx, check, now)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("scan aborted: %w", err)
	}

	var failures []domain.CategoryFailure
	for i, res := range results {
		category := o.checks[i].Category()
		if res.err != nil {
			logger.Warn().Err(res.err).Str("category", string(category)).Msg("category skipped")
			failures = append(failures, domain.CategoryFailure{Category: category, Err: res.err})
			continue
		}

		valid := make([]domain.Finding, 0, len(res.findings))
		for _, f := range res.findings {
			if err := f.Validate(); err != nil {
				logger.Error().Err(err).Str("category", string(category)).Msg("dropping malformed finding")
				continue
			}
			valid = append(valid, f)
		}
		session.findings.AppendAll(valid)
		logger.Info().Str("category", string(category)).Int("findings", len(valid)).Msg("category evaluated")
	}

	session.seal(o.clock().UTC(), failures)
	logger.Info().Int("findings", session.Count()).Int("skipped", len(failures)).Msg("scan complete")
	return nil
}

func (o *Orchestrator) runCheck(ctx context.Context, check checks.Check, now time.Time) (res checkResult) {
	defer func() {
		if r := recover(); r != nil {
			res = checkResult{err: fmt.Errorf("check %s panicked: %v", check.Category(), r)}
		}
	}()

	if o.settings.CategoryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.settings.CategoryTimeout)
		defer cancel()
	}

	findings, err := check.Run(ctx, now)
	if err == nil && ctx.Err() != nil {
		err = fmt.Errorf("check %s timed out: %w", check.Category(), ctx.Err())
	}
	return checkResult{findings: findings, err: err}
}

// BuildReport transforms a completed session into the report document. The
// document only depends on the session, so repeated calls return equal documents.
func (o *Orchestrator) BuildReport(session *Session) (api.ReportDocument, error) {
	if session.State() != StateComplete {
		return api.ReportDocument{}, ErrSessionNotComplete
	}

	vulns := adapters.MapFindingsDomainToApi(session.Findings())
	return api.ReportDocument{
		ScanDate:             session.CompletedAt().Format(time.RFC3339),
		Region:               session.Region(),
		TotalVulnerabilities: len(vulns),
		Vulnerabilities:      vulns,
	}, nil
}

// Emit builds the report and hands it to every sink. The first sink failure is returned.
func (o *Orchestrator) Emit(ctx context.Context, session *Session, sinks ...Sink) (api.ReportDocument, error) {
	doc, err := o.BuildReport(session)
	if err != nil {
		return api.ReportDocument{}, err
	}

	for _, sink := range sinks {
		if err := sink.Write(ctx, doc); err != nil {
			return doc, fmt.Errorf("failed to write report: %w", err)
		}
	}
	return doc, nil
}
