package awsclient

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
)

// RetryConfig configures the SDK's standard retryer. Retries happen inside the
// client only; callers never loop on storage errors.
type RetryConfig struct {
	MaxAttempts int           `json:"max_attempts" yaml:"max_attempts"`
	MaxBackoff  time.Duration `json:"max_backoff" yaml:"max_backoff"`
}

// DefaultRetryConfig returns the SDK defaults
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: retry.DefaultMaxAttempts,
		MaxBackoff:  retry.DefaultMaxBackoff,
	}
}

// Retryer builds a standard retryer from the configuration
func (c *RetryConfig) Retryer() aws.Retryer {
	cfg := c
	if cfg == nil {
		cfg = DefaultRetryConfig()
	}

	return retry.NewStandard(func(o *retry.StandardOptions) {
		if cfg.MaxAttempts > 0 {
			o.MaxAttempts = cfg.MaxAttempts
		}
		if cfg.MaxBackoff > 0 {
			o.MaxBackoff = cfg.MaxBackoff
		}
	})
}
