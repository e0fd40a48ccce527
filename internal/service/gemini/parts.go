package gemini

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/google/generative-ai-go/genai"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/model"
)

// BuildParts 把请求转换成消息分片：附件在前，文本在后。
func BuildParts(req model.ChatRequest) ([]genai.Part, error) {
	message := strings.TrimSpace(req.Message)
	image := req.Image
	if image != nil && image.Data == "" && image.MimeType == "" {
		image = nil
	}
	if message == "" && image == nil {
		return nil, model.NewHTTPError(http.StatusBadRequest, "Message or image required")
	}

	parts := make([]genai.Part, 0, 2)
	if image != nil {
		blob, err := decodeInline(*image)
		if err != nil {
			return nil, model.WrapHTTPError(http.StatusBadRequest, err, "Invalid image data")
		}
		parts = append(parts, blob)
	}
	if message != "" {
		parts = append(parts, genai.Text(message))
	}
	return parts, nil
}

func decodeInline(img model.InlineData) (genai.Blob, error) {
	data := strings.TrimSpace(img.Data)
	mimeType := strings.TrimSpace(img.MimeType)

	// 兼容 data:<mime>;base64,<payload> 形式的 Data URL。
	if header, payload, ok := strings.Cut(data, ","); ok && strings.HasPrefix(header, "data:") {
		if mimeType == "" {
			mimeType = strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
		}
		data = payload
	}

	if data == "" {
		return genai.Blob{}, errors.New("missing data")
	}
	if mimeType == "" {
		return genai.Blob{}, errors.New("missing mimeType")
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return genai.Blob{}, err
	}
	return genai.Blob{MIMEType: mimeType, Data: raw}, nil
}
