package storage

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/collin-smith/CdkApp/internal/models"
)

// S3API is the subset of the S3 client used for listings
type S3API interface {
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

var _ S3API = (*s3.Client)(nil)

// S3Storage lists objects from an S3 bucket
type S3Storage struct {
	client S3API
	region string
}

// NewS3Storage creates an S3Storage around an existing client
func NewS3Storage(client S3API, region string) *S3Storage {
	return &S3Storage{
		client: client,
		region: region,
	}
}

// NewS3StorageFromConfig builds the S3 client from a loaded SDK configuration
func NewS3StorageFromConfig(awsCfg aws.Config, cfg *Config) *S3Storage {
	var opts []func(*s3.Options)
	if cfg.Region != "" {
		opts = append(opts, func(o *s3.Options) {
			o.Region = cfg.Region
		})
	}
	if cfg.Endpoint != "" {
		opts = append(opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		})
	}
	if cfg.ForcePathStyle {
		opts = append(opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	return NewS3Storage(s3.NewFromConfig(awsCfg, opts...), cfg.Region)
}

// ListObjects implements ObjectLister with one ListObjectsV2 call.
// A truncated result is returned as-is; continuation tokens are not followed.
func (s *S3Storage) ListObjects(ctx context.Context, bucket string) ([]models.ObjectMetadata, error) {
	if bucket == "" {
		return nil, NewStorageError("ListObjects", bucket, ErrInvalidBucket, false)
	}

	out, err := s.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return nil, classifyAPIError("ListObjects", bucket, err)
	}

	objects := make([]models.ObjectMetadata, 0, len(out.Contents))
	for _, obj := range out.Contents {
		objects = append(objects, models.ObjectMetadata{
			Key:           aws.ToString(obj.Key),
			ContainerName: bucket,
			Region:        s.region,
			SizeBytes:     aws.ToInt64(obj.Size),
			LastModified:  aws.ToTime(obj.LastModified),
		})
	}

	return objects, nil
}
