package checks

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/de-tools/sec-atlas/pkg/services/facts"
)

const networkRecommendation = "Restrict the inbound rule source to specific trusted IP ranges " +
	"instead of allowing access from the entire internet."

type NetworkCheck struct {
	provider facts.NetworkProvider
	policy   Policy
}

func NewNetworkCheck(provider facts.NetworkProvider, policy Policy) *NetworkCheck {
	return &NetworkCheck{provider: provider, policy: policy}
}

func (c *NetworkCheck) Category() domain.Category {
	return domain.CategoryNetwork
}

func (c *NetworkCheck) Run(ctx context.Context, _ time.Time) ([]domain.Finding, error) {
	groups, err := c.provider.ListSecurityGroups(ctx)
	if err != nil {
		return nil, err
	}
	return c.Evaluate(groups), nil
}

// Evaluate emits one finding per inbound rule source range that is unrestricted.
func (c *NetworkCheck) Evaluate(groups []domain.SecurityGroup) []domain.Finding {
	var findings []domain.Finding

	for _, group := range groups {
		resource := fmt.Sprintf("Security Group: %s", group.ID)
		if group.Name != "" {
			resource = fmt.Sprintf("Security Group: %s (%s)", group.ID, group.Name)
		}

		for _, rule := range group.Inbound {
			for _, cidr := range rule.CIDRs {
				cidr = strings.TrimSpace(cidr)
				if !c.unrestricted(cidr) {
					continue
				}

				severity := domain.SeverityHigh
				if c.exposesSensitivePort(rule) {
					severity = domain.SeverityCritical
				}

				findings = append(findings, domain.Finding{
					Category: domain.CategoryNetwork,
					Severity: severity,
					Resource: resource,
					Issue: fmt.Sprintf("Inbound %s open to %s on %s",
						protocolLabel(rule.Protocol), cidr, portLabel(rule)),
					Recommendation: networkRecommendation,
				})
			}
		}
	}

	return findings
}

func (c *NetworkCheck) unrestricted(cidr string) bool {
	for _, open := range c.policy.UnrestrictedCIDRs {
		if cidr == open {
			return true
		}
	}
	return false
}

func (c *NetworkCheck) exposesSensitivePort(rule domain.SecurityGroupRule) bool {
	if isICMP(rule.Protocol) {
		return false
	}
	from, to, all := portRange(rule)
	if all {
		return len(c.policy.SensitivePorts) > 0
	}
	for _, port := range c.policy.SensitivePorts {
		if port >= from && port <= to {
			return true
		}
	}
	return false
}

// portRange treats missing or negative ports as every port.
func portRange(rule domain.SecurityGroupRule) (from, to int32, all bool) {
	if rule.FromPort == nil || rule.ToPort == nil || *rule.FromPort < 0 || *rule.ToPort < 0 {
		return 0, 0, true
	}
	return *rule.FromPort, *rule.ToPort, false
}

func portLabel(rule domain.SecurityGroupRule) string {
	from, to, all := portRange(rule)
	switch {
	case all:
		return "all ports"
	case from == to:
		return fmt.Sprintf("port %d", from)
	default:
		return fmt.Sprintf("ports %d-%d", from, to)
	}
}

func protocolLabel(protocol string) string {
	switch strings.ToLower(protocol) {
	case "", "-1", "all":
		return "traffic (all protocols)"
	default:
		return strings.ToLower(protocol) + " traffic"
	}
}

func isICMP(protocol string) bool {
	switch strings.ToLower(protocol) {
	case "icmp", "icmpv6", "1", "58":
		return true
	}
	return false
}
