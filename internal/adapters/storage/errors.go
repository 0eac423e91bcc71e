package storage

import (
	"errors"
	"fmt"

	"github.com/aws/smithy-go"
)

// Common storage error types
var (
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrInvalidBucket      = errors.New("invalid bucket name")
	ErrStorageUnavailable = errors.New("storage service unavailable")
	ErrPermissionDenied   = errors.New("permission denied")
)

// StorageError represents a storage operation error with additional context
type StorageError struct {
	Op        string // Operation that failed (e.g., "ListObjects")
	Bucket    string // Container involved in the operation
	Err       error  // Underlying error
	Retryable bool   // Whether the SDK would consider the failure transient
}

func (e *StorageError) Error() string {
	if e.Bucket != "" {
		return fmt.Sprintf("storage %s operation failed for bucket '%s': %v", e.Op, e.Bucket, e.Err)
	}
	return fmt.Sprintf("storage %s operation failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new StorageError
func NewStorageError(op, bucket string, err error, retryable bool) *StorageError {
	return &StorageError{
		Op:        op,
		Bucket:    bucket,
		Err:       err,
		Retryable: retryable,
	}
}

// IsNotFound returns true if the error indicates the bucket does not exist
func IsNotFound(err error) bool {
	return errors.Is(err, ErrBucketNotFound)
}

// IsRetryable returns true if the error indicates a retryable condition
func IsRetryable(err error) bool {
	var storageErr *StorageError
	if errors.As(err, &storageErr) {
		return storageErr.Retryable
	}
	return errors.Is(err, ErrStorageUnavailable)
}

// classifyAPIError maps S3 error codes onto the storage sentinels
func classifyAPIError(op, bucket string, err error) *StorageError {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchBucket":
			return NewStorageError(op, bucket, fmt.Errorf("%w: %s", ErrBucketNotFound, apiErr.ErrorMessage()), false)
		case "AccessDenied", "AllAccessDisabled":
			return NewStorageError(op, bucket, fmt.Errorf("%w: %s", ErrPermissionDenied, apiErr.ErrorMessage()), false)
		case "SlowDown", "ServiceUnavailable", "InternalError":
			return NewStorageError(op, bucket, fmt.Errorf("%w: %s", ErrStorageUnavailable, apiErr.ErrorMessage()), true)
		}
	}
	return NewStorageError(op, bucket, err, false)
}
