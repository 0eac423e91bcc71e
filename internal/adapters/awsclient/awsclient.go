// Package awsclient loads the SDK configuration shared by the S3 and DynamoDB clients.
package awsclient

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
)

// Options holds the settings needed to build an aws.Config
type Options struct {
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	Retry           *RetryConfig
}

// LoadConfig resolves credentials and region through the default chain.
// Static credentials are only honoured together with an endpoint override,
// which is how LocalStack and MinIO are reached during development.
func LoadConfig(ctx context.Context, opts Options) (aws.Config, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error

	if opts.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(opts.Region))
	}

	retryCfg := opts.Retry
	loadOpts = append(loadOpts, awsconfig.WithRetryer(func() aws.Retryer {
		return retryCfg.Retryer()
	}))

	if opts.Endpoint != "" && opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, ""),
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return cfg, nil
}
