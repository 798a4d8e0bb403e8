package facts

import (
	"context"

	"github.com/de-tools/sec-atlas/pkg/models/domain"
)

// Providers return the complete current list of resources for one category in a
// single call. Ordering is unspecified. An empty result is not an error.

type StorageProvider interface {
	ListBuckets(ctx context.Context) ([]domain.Bucket, error)
}

type NetworkProvider interface {
	ListSecurityGroups(ctx context.Context) ([]domain.SecurityGroup, error)
}

type IdentityProvider interface {
	ListPrincipals(ctx context.Context) ([]domain.Principal, error)
}

type DatabaseProvider interface {
	ListDBInstances(ctx context.Context) ([]domain.DBInstance, error)
}
