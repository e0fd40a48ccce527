package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Conversation 是一次性的对话句柄，历史不会跨请求保留。
type Conversation interface {
	SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	SendMessageStream(ctx context.Context, parts ...genai.Part) ResponseIterator
}

// ResponseIterator 逐块返回流式响应，结束时返回 iterator.Done。
type ResponseIterator interface {
	Next() (*genai.GenerateContentResponse, error)
}

// Model 为每个请求创建新的 Conversation。
type Model interface {
	StartChat() Conversation
}

// NewClient 使用 API Key 创建 Gemini 客户端。
func NewClient(ctx context.Context, apiKey string) (*genai.Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return client, nil
}

type genaiModel struct {
	model *genai.GenerativeModel
}

// NewModel 创建带系统提示词的模型句柄。
func NewModel(client *genai.Client, name, instruction string) Model {
	m := client.GenerativeModel(name)
	if strings.TrimSpace(instruction) != "" {
		m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(instruction)}}
	}
	return &genaiModel{model: m}
}

func (m *genaiModel) StartChat() Conversation {
	return &chatSession{cs: m.model.StartChat()}
}

type chatSession struct {
	cs *genai.ChatSession
}

func (c *chatSession) SendMessage(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	return c.cs.SendMessage(ctx, parts...)
}

func (c *chatSession) SendMessageStream(ctx context.Context, parts ...genai.Part) ResponseIterator {
	return c.cs.SendMessageStream(ctx, parts...)
}

// ErrMissingAPIKey 在未配置 API Key 时由每次请求返回。
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")

// NewUnconfiguredModel 返回一个不连接上游的模型：服务可以正常启动，
// 但每次发送消息都会失败并返回 ErrMissingAPIKey。
func NewUnconfiguredModel() Model {
	return unconfiguredModel{}
}

type unconfiguredModel struct{}

func (unconfiguredModel) StartChat() Conversation {
	return unconfiguredModel{}
}

func (unconfiguredModel) SendMessage(context.Context, ...genai.Part) (*genai.GenerateContentResponse, error) {
	return nil, ErrMissingAPIKey
}

func (unconfiguredModel) SendMessageStream(context.Context, ...genai.Part) ResponseIterator {
	return unconfiguredModel{}
}

func (unconfiguredModel) Next() (*genai.GenerateContentResponse, error) {
	return nil, ErrMissingAPIKey
}
