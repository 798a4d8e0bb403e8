package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/de-tools/sec-atlas/pkg/services/facts"
)

type DatabaseCheck struct {
	provider facts.DatabaseProvider
}

func NewDatabaseCheck(provider facts.DatabaseProvider) *DatabaseCheck {
	return &DatabaseCheck{provider: provider}
}

func (c *DatabaseCheck) Category() domain.Category {
	return domain.CategoryDatabase
}

func (c *DatabaseCheck) Run(ctx context.Context, _ time.Time) ([]domain.Finding, error) {
	instances, err := c.provider.ListDBInstances(ctx)
	if err != nil {
		return nil, err
	}
	return c.Evaluate(instances), nil
}

// Evaluate applies the public exposure and encryption predicates. An unreported
// flag is treated as the unsafe value.
func (c *DatabaseCheck) Evaluate(instances []domain.DBInstance) []domain.Finding {
	var findings []domain.Finding

	for _, instance := range instances {
		resource := fmt.Sprintf("RDS Instance: %s", instance.ID)

		if instance.PubliclyAccessible == nil || *instance.PubliclyAccessible {
			findings = append(findings, domain.Finding{
				Category:       domain.CategoryDatabase,
				Severity:       domain.SeverityHigh,
				Resource:       resource,
				Issue:          "Database instance is publicly accessible",
				Recommendation: "Disable public accessibility and reach the instance through private subnets, a VPN or a bastion host.",
			})
		}

		if instance.StorageEncrypted == nil || !*instance.StorageEncrypted {
			findings = append(findings, domain.Finding{
				Category:       domain.CategoryDatabase,
				Severity:       domain.SeverityMedium,
				Resource:       resource,
				Issue:          "Database storage is not encrypted at rest",
				Recommendation: "Enable storage encryption by restoring an encrypted snapshot copy into a new instance.",
			})
		}
	}

	return findings
}
