package aws

import (
	"context"
	"fmt"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/de-tools/sec-atlas/pkg/services/checks"
	factsaws "github.com/de-tools/sec-atlas/pkg/services/facts/aws"
)

// NewRegistry returns a check registry whose checks read facts from the AWS account behind cfg
func NewRegistry(cfg awssdk.Config) checks.Registry {
	return checks.NewRegistry(map[domain.Category]checks.Factory{
		domain.CategoryStorage: func(checks.Policy) checks.Check {
			return checks.NewStorageCheck(factsaws.NewStorageProvider(cfg))
		},
		domain.CategoryNetwork: func(policy checks.Policy) checks.Check {
			return checks.NewNetworkCheck(factsaws.NewNetworkProvider(cfg), policy)
		},
		domain.CategoryIdentity: func(policy checks.Policy) checks.Check {
			return checks.NewIdentityCheck(factsaws.NewIdentityProvider(cfg), policy)
		},
		domain.CategoryDatabase: func(checks.Policy) checks.Check {
			return checks.NewDatabaseCheck(factsaws.NewDatabaseProvider(cfg))
		},
	})
}

// RegistryFactory loads the AWS session for the profile and region and builds the registry
func RegistryFactory(ctx context.Context, profile, region string) (checks.Registry, string, error) {
	cfg, err := factsaws.LoadConfig(ctx, profile, region)
	if err != nil {
		return nil, "", fmt.Errorf("unable to load AWS SDK config: %w", err)
	}
	return NewRegistry(*cfg), cfg.Region, nil
}
