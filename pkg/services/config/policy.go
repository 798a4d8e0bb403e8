package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/sec-atlas/pkg/services/checks"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. SECSCAN_ACCESS_KEY_MAX_AGE_DAYS
const EnvPrefix = "SECSCAN"

// Policy is the scanner policy file: the check thresholds plus runtime limits
type Policy struct {
	checks.Policy `mapstructure:",squash"`
	// CategoryTimeout bounds a single category; zero disables the limit
	CategoryTimeout time.Duration `mapstructure:"category_timeout"`
}

func DefaultPolicy() Policy {
	return Policy{Policy: checks.DefaultPolicy()}
}

// LoadPolicy reads the policy file at path on top of the defaults. An empty path
// yields the defaults with environment overrides applied.
func LoadPolicy(path string) (*Policy, error) {
	v := viper.New()

	defaults := DefaultPolicy()
	v.SetDefault("access_key_max_age_days", defaults.AccessKeyMaxAgeDays)
	v.SetDefault("sensitive_ports", defaults.SensitivePorts)
	v.SetDefault("unrestricted_cidrs", defaults.UnrestrictedCIDRs)
	v.SetDefault("category_timeout", defaults.CategoryTimeout)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read policy file: %w", err)
		}
	}

	var policy Policy
	if err := v.Unmarshal(&policy); err != nil {
		return nil, fmt.Errorf("failed to parse policy: %w", err)
	}
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	return &policy, nil
}

func (p Policy) Validate() error {
	if p.AccessKeyMaxAgeDays <= 0 {
		return fmt.Errorf("access_key_max_age_days must be positive, got %d", p.AccessKeyMaxAgeDays)
	}
	for _, port := range p.SensitivePorts {
		if port < 0 || port > 65535 {
			return fmt.Errorf("sensitive port %d is out of range", port)
		}
	}
	if len(p.UnrestrictedCIDRs) == 0 {
		return fmt.Errorf("unrestricted_cidrs cannot be empty")
	}
	if p.CategoryTimeout < 0 {
		return fmt.Errorf("category_timeout cannot be negative")
	}
	return nil
}
