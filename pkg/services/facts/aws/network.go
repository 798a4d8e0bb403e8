package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/de-tools/sec-atlas/pkg/models/domain"
)

const allProtocols = "-1"

type NetworkProvider struct {
	client ec2.DescribeSecurityGroupsAPIClient
}

func NewNetworkProvider(cfg awssdk.Config) *NetworkProvider {
	return NewNetworkProviderFromClient(ec2.NewFromConfig(cfg))
}

func NewNetworkProviderFromClient(client ec2.DescribeSecurityGroupsAPIClient) *NetworkProvider {
	return &NetworkProvider{client: client}
}

func (p *NetworkProvider) ListSecurityGroups(ctx context.Context) ([]domain.SecurityGroup, error) {
	var groups []domain.SecurityGroup

	paginator := ec2.NewDescribeSecurityGroupsPaginator(p.client, &ec2.DescribeSecurityGroupsInput{})
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe security groups: %w", classify("ec2:DescribeSecurityGroups", err))
		}
		for _, sg := range page.SecurityGroups {
			groups = append(groups, mapSecurityGroup(sg))
		}
	}

	return groups, nil
}

func mapSecurityGroup(sg types.SecurityGroup) domain.SecurityGroup {
	group := domain.SecurityGroup{
		ID:   aws.ToString(sg.GroupId),
		Name: aws.ToString(sg.GroupName),
	}

	for _, perm := range sg.IpPermissions {
		rule := domain.SecurityGroupRule{
			Protocol: aws.ToString(perm.IpProtocol),
		}
		if rule.Protocol != allProtocols {
			rule.FromPort = perm.FromPort
			rule.ToPort = perm.ToPort
		}
		for _, r := range perm.IpRanges {
			rule.CIDRs = append(rule.CIDRs, aws.ToString(r.CidrIp))
		}
		for _, r := range perm.Ipv6Ranges {
			rule.CIDRs = append(rule.CIDRs, aws.ToString(r.CidrIpv6))
		}
		group.Inbound = append(group.Inbound, rule)
	}

	return group
}
