package checks

import (
	"context"

	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/stretchr/testify/mock"
)

type mockStorageProvider struct{ mock.Mock }

func (m *mockStorageProvider) ListBuckets(ctx context.Context) ([]domain.Bucket, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Bucket), args.Error(1)
}

type mockNetworkProvider struct{ mock.Mock }

func (m *mockNetworkProvider) ListSecurityGroups(ctx context.Context) ([]domain.SecurityGroup, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SecurityGroup), args.Error(1)
}

type mockIdentityProvider struct{ mock.Mock }

func (m *mockIdentityProvider) ListPrincipals(ctx context.Context) ([]domain.Principal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Principal), args.Error(1)
}

type mockDatabaseProvider struct{ mock.Mock }

func (m *mockDatabaseProvider) ListDBInstances(ctx context.Context) ([]domain.DBInstance, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DBInstance), args.Error(1)
}

func ptr[T any](v T) *T {
	return &v
}

func assertValid(t interface {
	Errorf(format string, args ...interface{})
}, findings []domain.Finding) {
	for _, f := range findings {
		if err := f.Validate(); err != nil {
			t.Errorf("invalid finding %+v: %v", f, err)
		}
	}
}
