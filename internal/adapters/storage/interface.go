package storage

import (
	"context"

	"github.com/collin-smith/CdkApp/internal/models"
)

// ObjectLister enumerates the objects of one container.
//
// Implementations make a single listing call and do not follow continuation
// tokens. When the backend fails part-way, the objects gathered before the
// failure are returned together with the error so callers can keep them.
type ObjectLister interface {
	ListObjects(ctx context.Context, bucket string) ([]models.ObjectMetadata, error)
}

// Config represents configuration for the object store
type Config struct {
	Type           string `json:"type" yaml:"type"`                     // "s3", "local" or "mock"
	Region         string `json:"region" yaml:"region"`                 // region reported for every object
	Endpoint       string `json:"endpoint" yaml:"endpoint"`             // S3-compatible endpoint override
	ForcePathStyle bool   `json:"force_path_style" yaml:"force_path_style"`
	BasePath       string `json:"base_path" yaml:"base_path"` // For local storage
}
