package storage

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory(t *testing.T) {
	factory := NewFactory(aws.Config{Region: "us-east-1"})

	t.Run("S3", func(t *testing.T) {
		lister, err := factory.Create(&Config{Type: "S3", Region: "us-east-1", Endpoint: "http://localhost:4566", ForcePathStyle: true})
		require.NoError(t, err)
		assert.IsType(t, &S3Storage{}, lister)
	})

	t.Run("Local", func(t *testing.T) {
		lister, err := factory.Create(&Config{Type: "local", BasePath: t.TempDir()})
		require.NoError(t, err)
		assert.IsType(t, &LocalStorage{}, lister)
	})

	t.Run("Mock", func(t *testing.T) {
		lister, err := factory.Create(&Config{Type: "mock"})
		require.NoError(t, err)
		assert.IsType(t, &MockStorage{}, lister)
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := factory.Create(&Config{Type: "gcs"})
		assert.EqualError(t, err, "unsupported storage type: gcs")
	})

	t.Run("NilConfig", func(t *testing.T) {
		_, err := factory.Create(nil)
		assert.Error(t, err)
	})
}
