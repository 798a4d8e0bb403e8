package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/de-tools/sec-atlas/pkg/models/domain"
)

type DatabaseProvider struct {
	client rds.DescribeDBInstancesAPIClient
}

func NewDatabaseProvider(cfg awssdk.Config) *DatabaseProvider {
	return NewDatabaseProviderFromClient(rds.NewFromConfig(cfg))
}

func NewDatabaseProviderFromClient(client rds.DescribeDBInstancesAPIClient) *DatabaseProvider {
	return &DatabaseProvider{client: client}
}

func (p *DatabaseProvider) ListDBInstances(ctx context.Context) ([]domain.DBInstance, error) {
	var instances []domain.DBInstance

	paginator := rds.NewDescribeDBInstancesPaginator(p.client, &rds.DescribeDBInstancesInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe RDS instances: %w", classify("rds:DescribeDBInstances", err))
		}
		for _, instance := range page.DBInstances {
			instances = append(instances, domain.DBInstance{
				ID:                 aws.ToString(instance.DBInstanceIdentifier),
				Engine:             aws.ToString(instance.Engine),
				PubliclyAccessible: instance.PubliclyAccessible,
				StorageEncrypted:   instance.StorageEncrypted,
			})
		}
	}

	return instances, nil
}
