package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/de-tools/sec-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

const noPublicAccessBlockCode = "NoSuchPublicAccessBlockConfiguration"

type S3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	GetBucketLocation(ctx context.Context, params *s3.GetBucketLocationInput, optFns ...func(*s3.Options)) (*s3.GetBucketLocationOutput, error)
	GetPublicAccessBlock(ctx context.Context, params *s3.GetPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.GetPublicAccessBlockOutput, error)
}

type StorageProvider struct {
	client S3API
}

func NewStorageProvider(cfg awssdk.Config) *StorageProvider {
	return NewStorageProviderFromClient(s3.NewFromConfig(cfg))
}

func NewStorageProviderFromClient(client S3API) *StorageProvider {
	return &StorageProvider{client: client}
}

func (p *StorageProvider) ListBuckets(ctx context.Context) ([]domain.Bucket, error) {
	logger := zerolog.Ctx(ctx)

	resp, err := p.client.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to list S3 buckets: %w", classify("s3:ListBuckets", err))
	}

	buckets := make([]domain.Bucket, 0, len(resp.Buckets))
	for _, bucket := range resp.Buckets {
		name := aws.ToString(bucket.Name)

		// Public access block requests must be sent to the bucket's own region
		locResp, err := p.client.GetBucketLocation(ctx, &s3.GetBucketLocationInput{
			Bucket: bucket.Name,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get location of bucket %s: %w", name, classify("s3:GetBucketLocation", err))
		}
		region := bucketRegion(locResp.LocationConstraint)

		pab, err := p.client.GetPublicAccessBlock(ctx, &s3.GetPublicAccessBlockInput{
			Bucket: bucket.Name,
		}, func(o *s3.Options) {
			o.Region = region
		})
		if hasErrorCode(err, noPublicAccessBlockCode) {
			logger.Debug().Str("bucket", name).Msg("bucket has no public access block configuration")
			buckets = append(buckets, domain.Bucket{Name: name})
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to get public access block of bucket %s: %w", name, classify("s3:GetPublicAccessBlock", err))
		}

		b := domain.Bucket{Name: name}
		if cfg := pab.PublicAccessBlockConfiguration; cfg != nil {
			b.PublicAccessBlock = &domain.PublicAccessBlock{
				BlockPublicAcls:       aws.ToBool(cfg.BlockPublicAcls),
				IgnorePublicAcls:      aws.ToBool(cfg.IgnorePublicAcls),
				BlockPublicPolicy:     aws.ToBool(cfg.BlockPublicPolicy),
				RestrictPublicBuckets: aws.ToBool(cfg.RestrictPublicBuckets),
			}
		}
		buckets = append(buckets, b)
	}

	return buckets, nil
}

// bucketRegion maps a location constraint to a signing region. Buckets in
// us-east-1 report no constraint and old eu-west-1 buckets report "EU".
func bucketRegion(constraint types.BucketLocationConstraint) string {
	switch constraint {
	case "":
		return DefaultRegion
	case types.BucketLocationConstraintEu:
		return "eu-west-1"
	default:
		return string(constraint)
	}
}
