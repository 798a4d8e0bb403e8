package checks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/de-tools/sec-atlas/pkg/services/facts"
)

const storageRecommendation = "Enable the full S3 Block Public Access configuration " +
	"(BlockPublicAcls, IgnorePublicAcls, BlockPublicPolicy, RestrictPublicBuckets) for the bucket."

type StorageCheck struct {
	provider facts.StorageProvider
}

func NewStorageCheck(provider facts.StorageProvider) *StorageCheck {
	return &StorageCheck{provider: provider}
}

func (c *StorageCheck) Category() domain.Category {
	return domain.CategoryStorage
}

func (c *StorageCheck) Run(ctx context.Context, _ time.Time) ([]domain.Finding, error) {
	buckets, err := c.provider.ListBuckets(ctx)
	if err != nil {
		return nil, err
	}
	return c.Evaluate(buckets), nil
}

// Evaluate flags every bucket whose public access block is not fully enabled.
// A missing configuration counts as every flag disabled.
func (c *StorageCheck) Evaluate(buckets []domain.Bucket) []domain.Finding {
	var findings []domain.Finding

	for _, bucket := range buckets {
		disabled := disabledBlockFlags(bucket.PublicAccessBlock)
		if len(disabled) == 0 {
			continue
		}

		issue := fmt.Sprintf("Bucket is publicly accessible or not fully restricted: %s disabled",
			strings.Join(disabled, ", "))
		if bucket.PublicAccessBlock == nil {
			issue = "Bucket is publicly accessible or not fully restricted: no public access block configuration"
		}

		findings = append(findings, domain.Finding{
			Category:       domain.CategoryStorage,
			Severity:       domain.SeverityHigh,
			Resource:       fmt.Sprintf("S3 Bucket: %s", bucket.Name),
			Issue:          issue,
			Recommendation: storageRecommendation,
		})
	}

	return findings
}

func disabledBlockFlags(pab *domain.PublicAccessBlock) []string {
	if pab == nil {
		pab = &domain.PublicAccessBlock{}
	}

	var disabled []string
	if !pab.BlockPublicAcls {
		disabled = append(disabled, "BlockPublicAcls")
	}
	if !pab.IgnorePublicAcls {
		disabled = append(disabled, "IgnorePublicAcls")
	}
	if !pab.BlockPublicPolicy {
		disabled = append(disabled, "BlockPublicPolicy")
	}
	if !pab.RestrictPublicBuckets {
		disabled = append(disabled, "RestrictPublicBuckets")
	}
	return disabled
}
