package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"micromon/internal/config"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type s3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store targets Amazon S3 or any compatible endpoint.
func NewS3Store(cfg config.Config) (Store, error) {
	bucket := strings.TrimSpace(cfg.ArchiveS3Bucket)
	if bucket == "" {
		return nil, errors.New("archive: missing S3 bucket")
	}
	region := strings.TrimSpace(cfg.ArchiveS3Region)
	if region == "" {
		return nil, errors.New("archive: missing S3 region")
	}
	accessKey := strings.TrimSpace(cfg.ArchiveS3AccessKeyID)
	secretKey := strings.TrimSpace(cfg.ArchiveS3SecretAccessKey)
	if accessKey == "" || secretKey == "" {
		return nil, errors.New("archive: missing S3 credentials")
	}

	credentialsProvider := aws.NewCredentialsCache(
		credentials.NewStaticCredentialsProvider(accessKey, secretKey, strings.TrimSpace(cfg.ArchiveS3SessionToken)),
	)

	awsCfg := aws.Config{
		Region:      region,
		Credentials: credentialsProvider,
	}

	endpoint := strings.TrimSpace(cfg.ArchiveS3Endpoint)
	if endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			endpoint = "https://" + endpoint
		}
		awsCfg.EndpointResolverWithOptions = aws.EndpointResolverWithOptionsFunc(func(service, _ string, _ ...interface{}) (aws.Endpoint, error) {
			if service == s3.ServiceID {
				return aws.Endpoint{
					URL:           endpoint,
					SigningRegion: region,
				}, nil
			}
			return aws.Endpoint{}, fmt.Errorf("archive: no endpoint for service %s", service)
		})
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.ArchiveS3ForcePathStyle
	})

	return &s3Store{
		client: client,
		bucket: bucket,
		prefix: trimKeyPrefix(cfg.ArchiveS3Prefix),
	}, nil
}

// Put uploads the payload under the (prefixed) key.
func (s *s3Store) Put(ctx context.Context, key string, data []byte) error {
	if len(data) == 0 {
		return errors.New("empty payload")
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	objectKey := joinKeyPrefix(s.prefix, key)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(objectKey),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String("application/json"),
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	return nil
}

var _ Store = (*s3Store)(nil)
