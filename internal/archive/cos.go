package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"micromon/internal/config"
	"net/http"
	"net/url"
	"strings"

	"github.com/tencentyun/cos-go-sdk-v5"
)

type cosStore struct {
	client *cos.Client
	prefix string
}

// NewCOSStore targets Tencent COS.
func NewCOSStore(cfg config.Config) (Store, error) {
	baseURL := strings.TrimSpace(cfg.ArchiveCOSBucketURL)
	if baseURL == "" {
		return nil, errors.New("archive: missing COS bucket URL")
	}
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("archive: parse COS bucket URL: %w", err)
	}

	secretID := strings.TrimSpace(cfg.ArchiveCOSSecretID)
	secretKey := strings.TrimSpace(cfg.ArchiveCOSSecretKey)
	if secretID == "" || secretKey == "" {
		return nil, errors.New("archive: missing COS credentials")
	}

	transport := &cos.AuthorizationTransport{
		SecretID:  secretID,
		SecretKey: secretKey,
	}

	client := cos.NewClient(&cos.BaseURL{BucketURL: parsedURL}, &http.Client{Transport: transport})

	return &cosStore{
		client: client,
		prefix: trimKeyPrefix(cfg.ArchiveCOSPrefix),
	}, nil
}

// Put uploads the payload under the (prefixed) key.
func (s *cosStore) Put(ctx context.Context, key string, data []byte) error {
	if len(data) == 0 {
		return errors.New("empty payload")
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	objectKey := joinKeyPrefix(s.prefix, key)
	options := &cos.ObjectPutOptions{
		ObjectPutHeaderOptions: &cos.ObjectPutHeaderOptions{
			ContentType: "application/json",
		},
	}

	resp, err := s.client.Object.Put(ctx, objectKey, bytes.NewReader(data), options)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

var _ Store = (*cosStore)(nil)
