package storage

import (
	"context"
	"sync"
	"time"

	"github.com/collin-smith/CdkApp/internal/models"
)

// MockStorage is an in-memory ObjectLister for tests and local development
type MockStorage struct {
	mu       sync.RWMutex
	region   string
	buckets  map[string][]models.ObjectMetadata
	failures map[string]mockFailure
}

type mockFailure struct {
	after int
	err   error
}

// NewMockStorage creates a new MockStorage instance
func NewMockStorage(region string) *MockStorage {
	return &MockStorage{
		region:   region,
		buckets:  make(map[string][]models.ObjectMetadata),
		failures: make(map[string]mockFailure),
	}
}

// CreateBucket registers an empty bucket
func (m *MockStorage) CreateBucket(bucket string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.buckets[bucket]; !ok {
		m.buckets[bucket] = []models.ObjectMetadata{}
	}
}

// PutObject appends an object to a bucket, creating the bucket if needed
func (m *MockStorage) PutObject(bucket, key string, size int64, lastModified time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.buckets[bucket] = append(m.buckets[bucket], models.ObjectMetadata{
		Key:           key,
		ContainerName: bucket,
		Region:        m.region,
		SizeBytes:     size,
		LastModified:  lastModified,
	})
}

// FailAfter makes listings of bucket yield n objects and then fail with err
func (m *MockStorage) FailAfter(bucket string, n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures[bucket] = mockFailure{after: n, err: err}
}

// Reset clears all buckets and injected failures
func (m *MockStorage) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buckets = make(map[string][]models.ObjectMetadata)
	m.failures = make(map[string]mockFailure)
}

// ListObjects implements ObjectLister
func (m *MockStorage) ListObjects(ctx context.Context, bucket string) ([]models.ObjectMetadata, error) {
	if bucket == "" {
		return nil, NewStorageError("ListObjects", bucket, ErrInvalidBucket, false)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	stored, ok := m.buckets[bucket]
	if !ok {
		return nil, NewStorageError("ListObjects", bucket, ErrBucketNotFound, false)
	}

	objects := make([]models.ObjectMetadata, 0, len(stored))
	failure, failing := m.failures[bucket]
	for i, obj := range stored {
		if failing && i >= failure.after {
			return objects, NewStorageError("ListObjects", bucket, failure.err, false)
		}
		objects = append(objects, obj)
	}
	if failing && failure.after >= len(stored) {
		return objects, NewStorageError("ListObjects", bucket, failure.err, false)
	}

	return objects, nil
}
