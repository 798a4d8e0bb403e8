package checks

import (
	"context"
	"fmt"
	"time"

	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/de-tools/sec-atlas/pkg/services/facts"
)

const mfaRecommendation = "Enable multi-factor authentication (MFA) for the user."

type IdentityCheck struct {
	provider facts.IdentityProvider
	policy   Policy
}

func NewIdentityCheck(provider facts.IdentityProvider, policy Policy) *IdentityCheck {
	return &IdentityCheck{provider: provider, policy: policy}
}

func (c *IdentityCheck) Category() domain.Category {
	return domain.CategoryIdentity
}

func (c *IdentityCheck) Run(ctx context.Context, now time.Time) ([]domain.Finding, error) {
	principals, err := c.provider.ListPrincipals(ctx)
	if err != nil {
		return nil, err
	}
	return c.Evaluate(principals, now), nil
}

// Evaluate checks access key age and MFA registration independently for every principal.
func (c *IdentityCheck) Evaluate(principals []domain.Principal, now time.Time) []domain.Finding {
	var findings []domain.Finding

	rotate := fmt.Sprintf("Rotate the access key: create a new key, update its consumers and "+
		"deactivate the old one. Keys should be rotated at least every %d days.", c.policy.AccessKeyMaxAgeDays)

	for _, principal := range principals {
		resource := fmt.Sprintf("IAM User: %s", principal.Name)

		for _, key := range principal.AccessKeys {
			if key.CreatedAt.IsZero() {
				findings = append(findings, domain.Finding{
					Category:       domain.CategoryIdentity,
					Severity:       domain.SeverityMedium,
					Resource:       resource,
					Issue:          fmt.Sprintf("Access key %s has no creation date, its age cannot be verified", key.ID),
					Recommendation: rotate,
				})
				continue
			}

			age := KeyAgeDays(key.CreatedAt, now)
			if age > c.policy.AccessKeyMaxAgeDays {
				findings = append(findings, domain.Finding{
					Category:       domain.CategoryIdentity,
					Severity:       domain.SeverityMedium,
					Resource:       resource,
					Issue:          fmt.Sprintf("Access key %s is %d days old", key.ID, age),
					Recommendation: rotate,
				})
			}
		}

		if principal.MFADevices == 0 {
			findings = append(findings, domain.Finding{
				Category:       domain.CategoryIdentity,
				Severity:       domain.SeverityHigh,
				Resource:       resource,
				Issue:          "MFA is not enabled for the user",
				Recommendation: mfaRecommendation,
			})
		}
	}

	return findings
}

// KeyAgeDays returns the number of whole days between created and now.
func KeyAgeDays(created, now time.Time) int {
	return int(now.Sub(created).Hours() / 24)
}
