package scan

import (
	"errors"
	"sync"
	"time"

	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/de-tools/sec-atlas/pkg/services/findings"
)

type State string

const (
	StateInitialized State = "INITIALIZED"
	StateRunning     State = "RUNNING"
	StateComplete    State = "COMPLETE"
)

var (
	ErrSessionSealed      = errors.New("scan session already started")
	ErrSessionNotComplete = errors.New("scan session is not complete")
)

// Session is the state of a single scan invocation. Only the orchestrator mutates it.
type Session struct {
	mu          sync.RWMutex
	state       State
	region      string
	startedAt   time.Time
	completedAt time.Time
	findings    *findings.Aggregator
	failures    []domain.CategoryFailure
}

func newSession(region string, startedAt time.Time) *Session {
	return &Session{
		state:     StateInitialized,
		region:    region,
		startedAt: startedAt,
		findings:  findings.NewAggregator(),
	}
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Region() string {
	return s.region
}

func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// CompletedAt is zero until the session is complete.
func (s *Session) CompletedAt() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.completedAt
}

func (s *Session) Findings() []domain.Finding {
	return s.findings.All()
}

func (s *Session) Count() int {
	return s.findings.Count()
}

func (s *Session) Filter(pred findings.Predicate) []domain.Finding {
	return s.findings.Filter(pred)
}

// Failures lists the categories skipped because their facts could not be read.
func (s *Session) Failures() []domain.CategoryFailure {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make([]domain.CategoryFailure, len(s.failures))
	copy(res, s.failures)
	return res
}

func (s *Session) start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateInitialized {
		return ErrSessionSealed
	}
	s.state = StateRunning
	return nil
}

func (s *Session) seal(completedAt time.Time, failures []domain.CategoryFailure) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures = failures
	s.completedAt = completedAt
	s.state = StateComplete
}
