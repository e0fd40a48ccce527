package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config 描述 HTTP 服务运行时所需的配置项。
type Config struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":5000"`
	APIKey          string        `env:"GEMINI_API_KEY"`
	Model           string        `env:"GEMINI_MODEL" envDefault:"gemini-2.0-flash-exp"`
	InstructionFile string        `env:"SYSTEM_INSTRUCTION_FILE"`
	SecretKey       string        `env:"SECRET_KEY" envDefault:"your-secret-key-here"`
	AuthToken       string        `env:"AUTH_TOKEN"`
	MaxUploadMB     int64         `env:"MAX_UPLOAD_MB" envDefault:"100"`
	SessionTTL      time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	SessionMax      int           `env:"SESSION_MAX" envDefault:"10000"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"300s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"300s"`
	LogLevel        string        `env:"LOG_LEVEL" envDefault:"info"`
	Archive         ArchiveConfig
}

// ArchiveConfig 控制上传文件的归档方式，Kind 为空时不归档。
type ArchiveConfig struct {
	Kind         string `env:"UPLOAD_ARCHIVE"`
	Dir          string `env:"UPLOAD_DIR" envDefault:"uploads"`
	Endpoint     string `env:"S3_ENDPOINT"`
	Bucket       string `env:"S3_BUCKET"`
	Region       string `env:"S3_REGION" envDefault:"us-east-1"`
	AccessKey    string `env:"AWS_ACCESS_KEY_ID"`
	SecretKey    string `env:"AWS_SECRET_ACCESS_KEY"`
	SessionToken string `env:"AWS_SESSION_TOKEN"`
}

// Load 先读取当前目录下可选的 .env 文件，再从环境变量解析配置。
//
//	HTTP_ADDR               - HTTP 服务监听地址（默认 :5000）
//	GEMINI_API_KEY          - Gemini API Key，缺省时回退到 GOOGLE_API_KEY
//	GEMINI_MODEL            - 模型名称（默认 gemini-2.0-flash-exp）
//	SYSTEM_INSTRUCTION_FILE - 覆盖内置系统提示词的文件路径
//	SECRET_KEY              - 会话 Cookie 签名密钥
//	AUTH_TOKEN              - 可选的接口访问令牌
//	MAX_UPLOAD_MB           - 单个请求体上限，单位 MB（默认 100）
//	SESSION_TTL             - 会话 ID 闲置过期时间（默认 24h）
//	SESSION_MAX             - 内存中最多保留的会话 ID 数（默认 10000）
//	UPLOAD_ARCHIVE          - 上传归档方式：空 | local | s3
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GOOGLE_API_KEY")
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// MaxUploadBytes 返回请求体上限的字节数。
func (c Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB * 1024 * 1024
}

func (c Config) validate() error {
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if c.SessionMax <= 0 {
		return fmt.Errorf("SESSION_MAX must be positive, got %d", c.SessionMax)
	}
	switch strings.ToLower(c.Archive.Kind) {
	case "", "local":
	case "s3":
		if c.Archive.Endpoint == "" || c.Archive.Bucket == "" {
			return fmt.Errorf("S3_ENDPOINT and S3_BUCKET are required when UPLOAD_ARCHIVE=s3")
		}
	default:
		return fmt.Errorf("unknown UPLOAD_ARCHIVE %q", c.Archive.Kind)
	}
	return nil
}
