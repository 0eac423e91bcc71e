package storage

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/collin-smith/CdkApp/internal/models"
)

// LocalStorage lists files on the local filesystem, one directory per bucket
type LocalStorage struct {
	basePath string
	region   string
}

// NewLocalStorage creates a new LocalStorage rooted at basePath
func NewLocalStorage(basePath, region string) (*LocalStorage, error) {
	// Ensure base path exists
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, NewStorageError("NewLocalStorage", "", err, false)
	}

	// Convert to absolute path
	absPath, err := filepath.Abs(basePath)
	if err != nil {
		return nil, NewStorageError("NewLocalStorage", "", err, false)
	}

	return &LocalStorage{
		basePath: absPath,
		region:   region,
	}, nil
}

// ListObjects implements ObjectLister. Files are visited in lexical order;
// a walk error stops the listing and keeps what was already visited.
func (l *LocalStorage) ListObjects(ctx context.Context, bucket string) ([]models.ObjectMetadata, error) {
	if bucket == "" || strings.ContainsAny(bucket, `/\`) || bucket == "." || bucket == ".." {
		return nil, NewStorageError("ListObjects", bucket, ErrInvalidBucket, false)
	}

	root := filepath.Join(l.basePath, bucket)
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, NewStorageError("ListObjects", bucket, ErrBucketNotFound, false)
	}

	objects := []models.ObjectMetadata{}
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return err
		}

		// Convert absolute path to relative key
		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}

		objects = append(objects, models.ObjectMetadata{
			Key:           filepath.ToSlash(relPath),
			ContainerName: bucket,
			Region:        l.region,
			SizeBytes:     info.Size(),
			LastModified:  info.ModTime().UTC(),
		})
		return nil
	})
	if err != nil {
		return objects, NewStorageError("ListObjects", bucket, err, false)
	}

	return objects, nil
}
