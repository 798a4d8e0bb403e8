package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/de-tools/sec-atlas/pkg/models/domain"
)

type IAMAPI interface {
	iam.ListUsersAPIClient
	iam.ListAccessKeysAPIClient
	iam.ListMFADevicesAPIClient
}

type IdentityProvider struct {
	client IAMAPI
}

func NewIdentityProvider(cfg awssdk.Config) *IdentityProvider {
	return NewIdentityProviderFromClient(iam.NewFromConfig(cfg))
}

func NewIdentityProviderFromClient(client IAMAPI) *IdentityProvider {
	return &IdentityProvider{client: client}
}

func (p *IdentityProvider) ListPrincipals(ctx context.Context) ([]domain.Principal, error) {
	var principals []domain.Principal

	users := iam.NewListUsersPaginator(p.client, &iam.ListUsersInput{})
	for users.HasMorePages() {
		page, err := users.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list IAM users: %w", classify("iam:ListUsers", err))
		}

		for _, user := range page.Users {
			principal, err := p.describeUser(ctx, aws.ToString(user.UserName))
			if err != nil {
				return nil, err
			}
			principals = append(principals, principal)
		}
	}

	return principals, nil
}

func (p *IdentityProvider) describeUser(ctx context.Context, userName string) (domain.Principal, error) {
	principal := domain.Principal{Name: userName}

	keys := iam.NewListAccessKeysPaginator(p.client, &iam.ListAccessKeysInput{UserName: aws.String(userName)})
	for keys.HasMorePages() {
		page, err := keys.NextPage(ctx)
		if err != nil {
			return domain.Principal{}, fmt.Errorf("failed to list access keys of %s: %w", userName, classify("iam:ListAccessKeys", err))
		}
		for _, key := range page.AccessKeyMetadata {
			principal.AccessKeys = append(principal.AccessKeys, domain.AccessKey{
				ID:        aws.ToString(key.AccessKeyId),
				Status:    string(key.Status),
				CreatedAt: aws.ToTime(key.CreateDate),
			})
		}
	}

	devices := iam.NewListMFADevicesPaginator(p.client, &iam.ListMFADevicesInput{UserName: aws.String(userName)})
	for devices.HasMorePages() {
		page, err := devices.NextPage(ctx)
		if err != nil {
			return domain.Principal{}, fmt.Errorf("failed to list MFA devices of %s: %w", userName, classify("iam:ListMFADevices", err))
		}
		principal.MFADevices += len(page.MFADevices)
	}

	return principal, nil
}
