package gemini

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/model"
)

func TestChatReturnsCandidateText(t *testing.T) {
	fm := &fakeModel{reply: textResponse(genai.Text("Rest and hydrate. "), genai.Text("See a clinician if it persists."))}
	svc := NewService(fm, nil)

	text, err := svc.Chat(context.Background(), model.ChatRequest{Message: "I have a cold"})
	require.NoError(t, err)
	assert.Equal(t, "Rest and hydrate. See a clinician if it persists.", text)
	assert.Equal(t, 1, fm.started)
	assert.Equal(t, [][]genai.Part{{genai.Text("I have a cold")}}, fm.sent)
}

func TestChatStartsFreshConversationEachTime(t *testing.T) {
	fm := &fakeModel{reply: textResponse(genai.Text("ok"))}
	svc := NewService(fm, nil)

	for i := 0; i < 3; i++ {
		_, err := svc.Chat(context.Background(), model.ChatRequest{Message: "hi"})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, fm.started)
}

func TestChatValidationSkipsUpstream(t *testing.T) {
	fm := &fakeModel{}
	svc := NewService(fm, nil)

	_, err := svc.Chat(context.Background(), model.ChatRequest{})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, model.StatusOf(err, 0))
	assert.Zero(t, fm.started)
}

func TestChatErrors(t *testing.T) {
	upstream := errors.New("quota exceeded")
	svc := NewService(&fakeModel{err: upstream}, nil)
	_, err := svc.Chat(context.Background(), model.ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, upstream)

	svc = NewService(&fakeModel{reply: &genai.GenerateContentResponse{}}, nil)
	_, err = svc.Chat(context.Background(), model.ChatRequest{Message: "hi"})
	assert.EqualError(t, err, "gemini returned no candidates")

	blocked := &genai.GenerateContentResponse{PromptFeedback: &genai.PromptFeedback{BlockReason: genai.BlockReasonSafety}}
	svc = NewService(&fakeModel{reply: blocked}, nil)
	_, err = svc.Chat(context.Background(), model.ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "prompt blocked")
}

func TestStreamEmitsNonEmptyChunks(t *testing.T) {
	fm := &fakeModel{chunks: []*genai.GenerateContentResponse{
		textResponse(genai.Text("One-line summary.")),
		{},
		textResponse(genai.Blob{MIMEType: "image/png"}),
		textResponse(genai.Text(" Next steps.")),
	}}
	svc := NewService(fm, nil)

	var got []string
	err := svc.Stream(context.Background(), model.ChatRequest{Message: "fever"}, func(chunk string) error {
		got = append(got, chunk)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"One-line summary.", " Next steps."}, got)
}

func TestStreamStopsWhenEmitFails(t *testing.T) {
	fm := &fakeModel{chunks: []*genai.GenerateContentResponse{
		textResponse(genai.Text("a")),
		textResponse(genai.Text("b")),
	}}
	svc := NewService(fm, nil)
	gone := errors.New("client gone")

	calls := 0
	err := svc.Stream(context.Background(), model.ChatRequest{Message: "x"}, func(string) error {
		calls++
		return gone
	})
	assert.ErrorIs(t, err, gone)
	assert.Equal(t, 1, calls)
}

func TestStreamUpstreamError(t *testing.T) {
	upstream := errors.New("connection reset")
	fm := &fakeModel{chunks: []*genai.GenerateContentResponse{textResponse(genai.Text("partial"))}, iterErr: upstream}
	svc := NewService(fm, nil)

	var got []string
	err := svc.Stream(context.Background(), model.ChatRequest{Message: "x"}, func(c string) error {
		got = append(got, c)
		return nil
	})
	assert.ErrorIs(t, err, upstream)
	assert.Equal(t, []string{"partial"}, got)
}

func TestChatEmptyTextIsError(t *testing.T) {
	safety := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}}}
	svc := NewService(&fakeModel{reply: safety}, nil)
	_, err := svc.Chat(context.Background(), model.ChatRequest{Message: "hi"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "finish reason")

	stopped := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content:      &genai.Content{Role: "model", Parts: []genai.Part{genai.Blob{MIMEType: "image/png"}}},
		FinishReason: genai.FinishReasonStop,
	}}}
	svc = NewService(&fakeModel{reply: stopped}, nil)
	_, err = svc.Chat(context.Background(), model.ChatRequest{Message: "hi"})
	assert.EqualError(t, err, "gemini returned no text")
}

func TestUnconfiguredModelFailsPerRequest(t *testing.T) {
	svc := NewService(NewUnconfiguredModel(), nil)

	_, err := svc.Chat(context.Background(), model.ChatRequest{Message: "hi"})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, model.StatusOf(err, 0))

	calls := 0
	err = svc.Stream(context.Background(), model.ChatRequest{Message: "hi"}, func(string) error {
		calls++
		return nil
	})
	assert.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Zero(t, calls)

	// 校验仍先于上游调用执行。
	_, err = svc.Chat(context.Background(), model.ChatRequest{})
	assert.Equal(t, http.StatusBadRequest, model.StatusOf(err, 0))
}

func TestLoadInstruction(t *testing.T) {
	text, err := LoadInstruction("")
	require.NoError(t, err)
	assert.Equal(t, DefaultInstruction, text)

	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("  You are a test assistant.\n"), 0o600))
	text, err = LoadInstruction(path)
	require.NoError(t, err)
	assert.Equal(t, "You are a test assistant.", text)

	empty := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = LoadInstruction(empty)
	assert.Error(t, err)
}
