package storage

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// StorageType represents the type of storage implementation
type StorageType string

const (
	StorageTypeS3    StorageType = "s3"
	StorageTypeLocal StorageType = "local"
	StorageTypeMock  StorageType = "mock"
)

// Factory creates ObjectLister instances based on configuration
type Factory struct {
	awsConfig aws.Config
}

// NewFactory creates a new storage factory. The SDK configuration is only
// used for the s3 type.
func NewFactory(awsConfig aws.Config) *Factory {
	return &Factory{
		awsConfig: awsConfig,
	}
}

// Create creates an ObjectLister based on the provided configuration
func (f *Factory) Create(config *Config) (ObjectLister, error) {
	if config == nil {
		return nil, fmt.Errorf("storage config is required")
	}

	switch StorageType(strings.ToLower(config.Type)) {
	case StorageTypeS3:
		return NewS3StorageFromConfig(f.awsConfig, config), nil
	case StorageTypeLocal:
		basePath := config.BasePath
		if basePath == "" {
			basePath = "./data/buckets" // Default path
		}
		storage, err := NewLocalStorage(basePath, config.Region)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s storage: %w", config.Type, err)
		}
		return storage, nil
	case StorageTypeMock:
		return NewMockStorage(config.Region), nil
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", config.Type)
	}
}
