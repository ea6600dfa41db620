package managers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	log "github.com/sirupsen/logrus"
)

// StorageMgr stores and removes photo objects in the object-storage backend.
type StorageMgr interface {
	Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
}

// StorageManager is a MinIO-backed StorageMgr. Uploaded objects are publicly
// readable under a stable URL derived from the endpoint and bucket.
type StorageManager struct {
	client   *minio.Client
	endpoint string
	bucket   string
	useSSL   bool
}

// NewStorageManager connects to the MinIO endpoint from the environment and
// ensures the photo bucket exists.
func NewStorageManager() (StorageMgr, error) {
	endpoint := os.Getenv("MINIO_HOST")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	accessKey := os.Getenv("MINIO_ACCESS_KEY")
	if accessKey == "" {
		accessKey = "minioadmin"
	}
	secretKey := os.Getenv("MINIO_SECRET_KEY")
	if secretKey == "" {
		secretKey = "minioadmin"
	}
	bucket := os.Getenv("MINIO_BUCKET")
	if bucket == "" {
		bucket = "photos"
	}
	useSSL := os.Getenv("MINIO_USE_SSL") == "true"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to object storage: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("error checking photo bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("error creating photo bucket: %w", err)
		}
		log.Infof("Created photo bucket %s", bucket)
	}

	log.Infof("Initialized object storage manager for %s", endpoint)
	return &StorageManager{client: client, endpoint: endpoint, bucket: bucket, useSSL: useSSL}, nil
}

// Upload stores the object and returns its public URL.
func (sm *StorageManager) Upload(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	_, err := sm.client.PutObject(ctx, sm.bucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	scheme := "http"
	if sm.useSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, sm.endpoint, sm.bucket, objectName), nil
}

// Remove deletes the object from the bucket.
func (sm *StorageManager) Remove(ctx context.Context, objectName string) error {
	return sm.client.RemoveObject(ctx, sm.bucket, objectName, minio.RemoveObjectOptions{})
}
