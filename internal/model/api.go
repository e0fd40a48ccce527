package model

// ChatRequest 表示聊天接口的请求体，message 与 image 至少提供一个。
type ChatRequest struct {
	Message string      `json:"message"`
	Image   *InlineData `json:"image,omitempty"`
}

// InlineData 是随消息内联发送的附件，Data 为 base64 编码。
type InlineData struct {
	Data     string `json:"data"`
	MimeType string `json:"mimeType"`
}

// ChatResponse 描述阻塞式聊天接口的返回结果。
type ChatResponse struct {
	Response string `json:"response"`
	HTML     string `json:"html,omitempty"`
	Success  bool   `json:"success"`
}

// StreamFrame 是流式接口中每一帧 data 行承载的 JSON。
type StreamFrame struct {
	Chunk string `json:"chunk,omitempty"`
	Done  bool   `json:"done,omitempty"`
	Error string `json:"error,omitempty"`
}

// ClearResponse 是清空会话接口的响应结构。
type ClearResponse struct {
	Success bool `json:"success"`
}

// UploadResponse 描述文件上传并完成 base64 编码后返回的数据。
type UploadResponse struct {
	Success    bool   `json:"success"`
	Data       string `json:"data"`
	MimeType   string `json:"mimeType"`
	Filename   string `json:"filename"`
	ArchiveKey string `json:"archiveKey,omitempty"`
}
