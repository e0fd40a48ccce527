package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/model"
)

// Chat 在新的对话上发送一轮消息并等待完整回复。
func (s *Service) Chat(ctx context.Context, req model.ChatRequest) (string, error) {
	parts, err := BuildParts(req)
	if err != nil {
		return "", err
	}

	conv := s.model.StartChat()
	resp, err := conv.SendMessage(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("gemini send message: %w", err)
	}

	text, err := responseText(resp)
	if err != nil {
		return "", err
	}
	s.logger.Debug("gemini reply", "parts", len(parts), "chars", len(text))
	return text, nil
}

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		if resp != nil && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockReasonUnspecified {
			return "", fmt.Errorf("prompt blocked: %v", resp.PromptFeedback.BlockReason)
		}
		return "", errors.New("gemini returned no candidates")
	}
	first := resp.Candidates[0]
	text := candidateText(first)
	if text == "" {
		if first != nil && first.FinishReason != genai.FinishReasonUnspecified && first.FinishReason != genai.FinishReasonStop {
			return "", fmt.Errorf("gemini returned no text (finish reason: %v)", first.FinishReason)
		}
		return "", errors.New("gemini returned no text")
	}
	return text, nil
}

// chunkText 提取流式分块中的文本，没有候选时返回空串。
func chunkText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	return candidateText(resp.Candidates[0])
}

func candidateText(c *genai.Candidate) string {
	if c == nil || c.Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range c.Content.Parts {
		if t, ok := part.(genai.Text); ok {
			b.WriteString(string(t))
		}
	}
	return b.String()
}
