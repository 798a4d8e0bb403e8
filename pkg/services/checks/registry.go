package checks

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/de-tools/sec-atlas/pkg/models/domain"
)

var ErrUnknownCategory = errors.New("unknown check category")

// Factory builds a check for one category using the given policy
type Factory func(policy Policy) Check

// Registry manages check factories per resource category
type Registry interface {
	// Register adds a new category factory
	Register(category domain.Category, factory Factory) error
	// Create instantiates checks for the requested categories, or every registered one when none is given
	Create(policy Policy, categories ...domain.Category) ([]Check, error)
	// ListCategories returns the registered categories in evaluation order
	ListCategories() []domain.Category
}

type registry struct {
	mu        sync.RWMutex
	factories map[domain.Category]Factory
}

// NewRegistry creates a registry pre-populated with the given factories
func NewRegistry(factories map[domain.Category]Factory) Registry {
	r := &registry{
		factories: make(map[domain.Category]Factory, len(factories)),
	}
	for category, factory := range factories {
		r.factories[category] = factory
	}
	return r
}

func (r *registry) Register(category domain.Category, factory Factory) error {
	if category == "" {
		return fmt.Errorf("category name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[category]; exists {
		return fmt.Errorf("category %q is already registered", category)
	}

	r.factories[category] = factory
	return nil
}

func (r *registry) Create(policy Policy, categories ...domain.Category) ([]Check, error) {
	if len(categories) == 0 {
		categories = r.ListCategories()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[domain.Category]bool, len(categories))
	checks := make([]Check, 0, len(categories))
	for _, category := range categories {
		if seen[category] {
			continue
		}
		seen[category] = true

		factory, exists := r.factories[category]
		if !exists {
			return nil, fmt.Errorf("category %q is not registered: %w", category, ErrUnknownCategory)
		}
		checks = append(checks, factory(policy))
	}

	if len(checks) == 0 {
		return nil, fmt.Errorf("at least one check must be registered")
	}
	return checks, nil
}

func (r *registry) ListCategories() []domain.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	categories := make([]domain.Category, 0, len(r.factories))
	for category := range r.factories {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		ri, rj := categoryRank(categories[i]), categoryRank(categories[j])
		if ri != rj {
			return ri < rj
		}
		return categories[i] < categories[j]
	})
	return categories
}

var evaluationOrder = []domain.Category{
	domain.CategoryStorage,
	domain.CategoryNetwork,
	domain.CategoryIdentity,
	domain.CategoryDatabase,
}

func categoryRank(c domain.Category) int {
	for i, known := range evaluationOrder {
		if c == known {
			return i
		}
	}
	return len(evaluationOrder)
}
