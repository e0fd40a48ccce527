package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/config"
)

// Archive 保存上传的原始文件，供事后排查使用。
type Archive interface {
	Put(ctx context.Context, key, contentType string, data []byte) error
}

// New 根据配置创建归档实现，未启用时返回 nil。
func New(cfg config.ArchiveConfig, timeout time.Duration, logger *slog.Logger) (Archive, error) {
	switch strings.ToLower(cfg.Kind) {
	case "":
		return nil, nil
	case "local":
		local, err := NewLocal(cfg.Dir)
		if err != nil {
			return nil, err
		}
		return local, nil
	case "s3":
		s3, err := NewS3(S3Options{
			Endpoint:     cfg.Endpoint,
			Bucket:       cfg.Bucket,
			Region:       cfg.Region,
			AccessKey:    cfg.AccessKey,
			SecretKey:    cfg.SecretKey,
			SessionToken: cfg.SessionToken,
			Timeout:      timeout,
			Logger:       logger,
		})
		if err != nil {
			return nil, err
		}
		return s3, nil
	default:
		return nil, fmt.Errorf("unknown archive kind %q", cfg.Kind)
	}
}

// NewKey 生成按日期分目录、带随机前缀的对象名。
func NewKey(now time.Time, filename string) string {
	return fmt.Sprintf("%s/%s-%s", now.UTC().Format("2006/01/02"), uuid.NewString(), filename)
}
