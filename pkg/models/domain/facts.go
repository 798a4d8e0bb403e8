package domain

import "time"

// Bucket is the normalized view of an object storage bucket.
// PublicAccessBlock is nil when the bucket has no public access block configuration.
type Bucket struct {
	Name              string
	PublicAccessBlock *PublicAccessBlock
}

type PublicAccessBlock struct {
	BlockPublicAcls       bool
	IgnorePublicAcls      bool
	BlockPublicPolicy     bool
	RestrictPublicBuckets bool
}

// SecurityGroup holds the inbound rules of a network security group.
type SecurityGroup struct {
	ID      string
	Name    string
	Inbound []SecurityGroupRule
}

// SecurityGroupRule is one inbound permission entry. FromPort and ToPort are nil
// when the rule applies to every port (protocol "-1").
type SecurityGroupRule struct {
	Protocol string
	FromPort *int32
	ToPort   *int32
	CIDRs    []string
}

// Principal is an identity principal with its long-lived credentials.
type Principal struct {
	Name       string
	AccessKeys []AccessKey
	MFADevices int
}

// AccessKey CreatedAt is zero when the provider did not report a creation date.
type AccessKey struct {
	ID        string
	Status    string
	CreatedAt time.Time
}

// DBInstance flags are nil when the provider did not report them.
type DBInstance struct {
	ID                 string
	Engine             string
	PubliclyAccessible *bool
	StorageEncrypted   *bool
}
