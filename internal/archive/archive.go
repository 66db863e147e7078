package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"micromon/internal/config"
	"micromon/internal/entity"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// TypeLocal keeps manifests on the local filesystem.
	TypeLocal = "local"
	// TypeS3 targets Amazon S3 or any S3-compatible backend.
	TypeS3 = "s3"
	// TypeOSS targets Aliyun OSS.
	TypeOSS = "oss"
	// TypeCOS targets Tencent COS.
	TypeCOS = "cos"
)

// Store persists backup artifacts under a storage-specific key. The console
// only writes schedule manifests; the backup worker owns the archives
// themselves.
type Store interface {
	Put(ctx context.Context, key string, data []byte) error
}

// NewStore instantiates the archive backend selected by configuration.
func NewStore(cfg config.Config) (Store, error) {
	typeName := strings.ToLower(strings.TrimSpace(cfg.ArchiveType))
	switch typeName {
	case "", TypeLocal:
		return NewLocalStore(cfg.ArchiveLocalDir)
	case TypeS3:
		return NewS3Store(cfg)
	case TypeOSS:
		return NewOSSStore(cfg)
	case TypeCOS:
		return NewCOSStore(cfg)
	default:
		return nil, fmt.Errorf("unsupported archive type: %s", cfg.ArchiveType)
	}
}

// Manifest describes one scheduled backup for the external worker.
type Manifest struct {
	BackupID    uint      `json:"backup_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	RequestedBy string    `json:"requested_by,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// WriteManifest serialises the schedule record and stores it under a dated,
// collision-free key.
func WriteManifest(ctx context.Context, store Store, backup *entity.DbBackup, requestedBy string) error {
	if store == nil || backup == nil {
		return nil
	}

	manifest := Manifest{
		BackupID:    backup.ID,
		Name:        backup.Name,
		Description: backup.Description,
		Status:      backup.Status,
		RequestedBy: requestedBy,
		RequestedAt: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}

	return store.Put(ctx, manifestKey(backup.Name), data)
}

func manifestKey(name string) string {
	now := time.Now().UTC()
	base := sanitizeKeySegment(name)
	if base == "" {
		base = "backup"
	}
	datedir := fmt.Sprintf("%04d/%02d/%02d", now.Year(), now.Month(), now.Day())
	filename := fmt.Sprintf("%s-%s.json", uuid.NewString(), base)
	return path.Join("manifests", datedir, filename)
}

func sanitizeKeySegment(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	builder := strings.Builder{}
	builder.Grow(len(value))
	for i := 0; i < len(value); i++ {
		ch := value[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			builder.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			builder.WriteByte(ch + 32)
		case ch == '-', ch == '_':
			builder.WriteByte(ch)
		case ch == ' ':
			builder.WriteByte('-')
		}
	}
	return builder.String()
}

func trimKeyPrefix(prefix string) string {
	return strings.Trim(strings.TrimSpace(prefix), "/")
}

func joinKeyPrefix(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return path.Join(prefix, key)
}
