package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	calls  int
	input  *s3.ListObjectsV2Input
	output *s3.ListObjectsV2Output
	err    error
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.calls++
	f.input = params
	return f.output, f.err
}

func TestS3Storage_ListObjects(t *testing.T) {
	ctx := context.Background()
	modified := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("SingleCallInListingOrder", func(t *testing.T) {
		client := &fakeS3{output: &s3.ListObjectsV2Output{
			Contents: []types.Object{
				{Key: aws.String("b.txt"), Size: aws.Int64(10), LastModified: aws.Time(modified)},
				{Key: aws.String("a.txt"), Size: aws.Int64(20), LastModified: aws.Time(modified)},
			},
			IsTruncated:           aws.Bool(true),
			NextContinuationToken: aws.String("next"),
		}}
		storage := NewS3Storage(client, "us-east-1")

		objects, err := storage.ListObjects(ctx, "prd-mys3bucket1")
		require.NoError(t, err)

		assert.Equal(t, 1, client.calls, "continuation tokens must not be followed")
		assert.Equal(t, "prd-mys3bucket1", aws.ToString(client.input.Bucket))
		require.Len(t, objects, 2)
		assert.Equal(t, "b.txt", objects[0].Key)
		assert.Equal(t, "a.txt", objects[1].Key)
		assert.Equal(t, int64(20), objects[1].SizeBytes)
		assert.Equal(t, "prd-mys3bucket1", objects[0].ContainerName)
		assert.Equal(t, "us-east-1", objects[0].Region)
		assert.Equal(t, modified, objects[0].LastModified)
	})

	t.Run("EmptyBucket", func(t *testing.T) {
		storage := NewS3Storage(&fakeS3{output: &s3.ListObjectsV2Output{}}, "us-east-1")

		objects, err := storage.ListObjects(ctx, "empty")
		require.NoError(t, err)
		assert.NotNil(t, objects)
		assert.Empty(t, objects)
	})

	t.Run("MissingBucketName", func(t *testing.T) {
		client := &fakeS3{}
		storage := NewS3Storage(client, "us-east-1")

		_, err := storage.ListObjects(ctx, "")
		assert.ErrorIs(t, err, ErrInvalidBucket)
		assert.Zero(t, client.calls)
	})

	t.Run("NoSuchBucket", func(t *testing.T) {
		client := &fakeS3{err: &smithy.GenericAPIError{Code: "NoSuchBucket", Message: "The specified bucket does not exist"}}
		storage := NewS3Storage(client, "us-east-1")

		objects, err := storage.ListObjects(ctx, "missing")
		assert.Empty(t, objects)
		assert.True(t, IsNotFound(err))
		assert.False(t, IsRetryable(err))
	})

	t.Run("Throttled", func(t *testing.T) {
		client := &fakeS3{err: &smithy.GenericAPIError{Code: "SlowDown", Message: "reduce your request rate"}}
		storage := NewS3Storage(client, "us-east-1")

		_, err := storage.ListObjects(ctx, "busy")
		assert.ErrorIs(t, err, ErrStorageUnavailable)
		assert.True(t, IsRetryable(err))
	})

	t.Run("TransportError", func(t *testing.T) {
		client := &fakeS3{err: errors.New("dial tcp: connection refused")}
		storage := NewS3Storage(client, "us-east-1")

		_, err := storage.ListObjects(ctx, "bucket")
		var storageErr *StorageError
		require.ErrorAs(t, err, &storageErr)
		assert.Equal(t, "ListObjects", storageErr.Op)
		assert.Contains(t, err.Error(), "connection refused")
	})
}
