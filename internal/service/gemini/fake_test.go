package gemini

import (
	"context"
	"sync"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
)

type fakeModel struct {
	mu      sync.Mutex
	started int
	reply   *genai.GenerateContentResponse
	err     error
	chunks  []*genai.GenerateContentResponse
	iterErr error
	sent    [][]genai.Part
}

func (m *fakeModel) StartChat() Conversation {
	m.mu.Lock()
	m.started++
	m.mu.Unlock()
	return &fakeConversation{model: m}
}

type fakeConversation struct {
	model *fakeModel
}

func (c *fakeConversation) SendMessage(_ context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	c.model.record(parts)
	return c.model.reply, c.model.err
}

func (c *fakeConversation) SendMessageStream(_ context.Context, parts ...genai.Part) ResponseIterator {
	c.model.record(parts)
	return &fakeIterator{chunks: c.model.chunks, err: c.model.iterErr}
}

func (m *fakeModel) record(parts []genai.Part) {
	m.mu.Lock()
	m.sent = append(m.sent, parts)
	m.mu.Unlock()
}

type fakeIterator struct {
	chunks []*genai.GenerateContentResponse
	err    error
}

func (it *fakeIterator) Next() (*genai.GenerateContentResponse, error) {
	if len(it.chunks) == 0 {
		if it.err != nil {
			return nil, it.err
		}
		return nil, iterator.Done
	}
	next := it.chunks[0]
	it.chunks = it.chunks[1:]
	return next, nil
}

func textResponse(parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
	}
}
