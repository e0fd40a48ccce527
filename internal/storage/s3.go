package storage

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/model"
)

// S3Options 描述 S3 兼容存储的连接参数。
type S3Options struct {
	Endpoint     string
	Bucket       string
	Region       string
	AccessKey    string
	SecretKey    string
	SessionToken string
	Timeout      time.Duration
	Logger       *slog.Logger
}

// S3 以 path-style 方式向 S3 兼容存储上传对象，请求使用 SigV4 签名。
type S3 struct {
	endpoint   *url.URL
	bucket     string
	region     string
	creds      aws.Credentials
	signer     *v4.Signer
	httpClient *http.Client
	logger     *slog.Logger
	now        func() time.Time
}

func NewS3(opts S3Options) (*S3, error) {
	endpoint, err := url.Parse(strings.TrimRight(opts.Endpoint, "/"))
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid S3 endpoint %q", opts.Endpoint)
	}
	if opts.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	region := opts.Region
	if region == "" {
		region = "us-east-1"
	}
	return &S3{
		endpoint: endpoint,
		bucket:   opts.Bucket,
		region:   region,
		creds: aws.Credentials{
			AccessKeyID:     opts.AccessKey,
			SecretAccessKey: opts.SecretKey,
			SessionToken:    opts.SessionToken,
			Source:          "env",
		},
		signer:     v4.NewSigner(),
		httpClient: &http.Client{Timeout: opts.Timeout},
		logger:     logger,
		now:        time.Now,
	}, nil
}

func (s *S3) Put(ctx context.Context, key, contentType string, data []byte) error {
	endpoint := s.objectURL(key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("create put object request: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	hash := sha256.Sum256(data)
	payloadHash := hex.EncodeToString(hash[:])
	req.Header.Set("X-Amz-Content-Sha256", payloadHash)
	if err := s.signer.SignHTTP(ctx, s.creds, req, payloadHash, "s3", s.region, s.now()); err != nil {
		return fmt.Errorf("sign request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call put object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return model.NewHTTPError(http.StatusBadGateway, "put object failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	s.logger.Debug("archived upload", "bucket", s.bucket, "key", key, "size", len(data))
	return nil
}

func (s *S3) objectURL(key string) string {
	u := *s.endpoint
	u.Path = strings.TrimRight(u.Path, "/") + "/" + s.bucket + "/" + strings.TrimLeft(key, "/")
	return u.String()
}
