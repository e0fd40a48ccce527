package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/iterator"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/model"
)

// Stream 以流式方式发送一轮消息，每收到非空文本块就调用一次 emit。
// emit 返回错误（通常是客户端断开）时立即停止读取上游。
func (s *Service) Stream(ctx context.Context, req model.ChatRequest, emit func(chunk string) error) error {
	parts, err := BuildParts(req)
	if err != nil {
		return err
	}

	iter := s.model.StartChat().SendMessageStream(ctx, parts...)
	chunks := 0
	for {
		resp, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			s.logger.Debug("gemini stream finished", "chunks", chunks)
			return nil
		}
		if err != nil {
			return fmt.Errorf("gemini stream: %w", err)
		}

		text := chunkText(resp)
		if text == "" {
			continue
		}
		if err := emit(text); err != nil {
			return fmt.Errorf("emit chunk: %w", err)
		}
		chunks++
	}
}
