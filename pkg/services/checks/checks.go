package checks

import (
	"context"
	"time"

	"github.com/de-tools/sec-atlas/pkg/models/domain"
)

// Check evaluates the policy predicates of one resource category.
type Check interface {
	Category() domain.Category
	// Run fetches the category facts and evaluates them at now. A provider error is
	// returned as-is and no findings are produced.
	Run(ctx context.Context, now time.Time) ([]domain.Finding, error)
}

// Policy contains the configurable thresholds used by the checks
type Policy struct {
	// AccessKeyMaxAgeDays is the age after which an access key must be rotated (default: 90)
	AccessKeyMaxAgeDays int `mapstructure:"access_key_max_age_days"`
	// SensitivePorts are ports whose exposure to the internet is CRITICAL (default: 22, 3389)
	SensitivePorts []int32 `mapstructure:"sensitive_ports"`
	// UnrestrictedCIDRs are source ranges considered open to the internet (default: 0.0.0.0/0, ::/0)
	UnrestrictedCIDRs []string `mapstructure:"unrestricted_cidrs"`
}

// DefaultPolicy returns the default thresholds
func DefaultPolicy() Policy {
	return Policy{
		AccessKeyMaxAgeDays: 90,
		SensitivePorts:      []int32{22, 3389},
		UnrestrictedCIDRs:   []string{"0.0.0.0/0", "::/0"},
	}
}
