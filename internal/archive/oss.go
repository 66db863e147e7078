package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"micromon/internal/config"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

type ossStore struct {
	bucket *oss.Bucket
	prefix string
}

// NewOSSStore targets Aliyun OSS.
func NewOSSStore(cfg config.Config) (Store, error) {
	endpoint := strings.TrimSpace(cfg.ArchiveOSSEndpoint)
	if endpoint == "" {
		return nil, errors.New("archive: missing OSS endpoint")
	}
	bucketName := strings.TrimSpace(cfg.ArchiveOSSBucket)
	if bucketName == "" {
		return nil, errors.New("archive: missing OSS bucket")
	}
	accessKey := strings.TrimSpace(cfg.ArchiveOSSAccessKeyID)
	secretKey := strings.TrimSpace(cfg.ArchiveOSSAccessKeySecret)
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("archive: missing OSS credentials")
	}

	client, err := oss.New(endpoint, accessKey, secretKey)
	if err != nil {
		return nil, fmt.Errorf("archive: create OSS client: %w", err)
	}
	bucket, err := client.Bucket(bucketName)
	if err != nil {
		return nil, fmt.Errorf("archive: open OSS bucket: %w", err)
	}

	return &ossStore{
		bucket: bucket,
		prefix: trimKeyPrefix(cfg.ArchiveOSSPrefix),
	}, nil
}

// Put uploads the payload under the (prefixed) key.
func (s *ossStore) Put(ctx context.Context, key string, data []byte) error {
	if len(data) == 0 {
		return errors.New("empty payload")
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	objectKey := joinKeyPrefix(s.prefix, key)
	options := []oss.Option{
		oss.WithContext(ctx),
		oss.ContentType("application/json"),
	}

	if err := s.bucket.PutObject(objectKey, bytes.NewReader(data), options...); err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

var _ Store = (*ossStore)(nil)
