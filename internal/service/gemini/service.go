package gemini

import (
	"log/slog"
)

// Service 负责把前端的一轮对话转发给 Gemini。
type Service struct {
	model  Model
	logger *slog.Logger
}

// NewService 创建 Service 实例。
func NewService(model Model, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{model: model, logger: logger}
}
