package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/model"
)

// stream 始终返回 200，错误以 {"error": ...} 帧的形式写入响应体。
func (h *handler) stream(c *gin.Context) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isTooLarge(err) {
			abortTooLarge(c, h.maxUpload)
			return
		}
		startStream(c)
		_ = writeFrame(c, model.StreamFrame{Error: "invalid request body: " + err.Error()})
		return
	}

	startStream(c)
	h.logger.Info("chat request", "session", c.GetString(sessionKey), "stream", true, "has_image", req.Image != nil)

	ctx := c.Request.Context()
	err := h.relay.Stream(ctx, req, func(chunk string) error {
		return writeFrame(c, model.StreamFrame{Chunk: chunk})
	})
	if err != nil {
		if ctx.Err() != nil {
			h.logger.Info("stream client disconnected", "session", c.GetString(sessionKey))
			return
		}
		h.logChatError(c, err)
		_ = writeFrame(c, model.StreamFrame{Error: errorMessage(err)})
		return
	}
	_ = writeFrame(c, model.StreamFrame{Done: true})
}

func startStream(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream; charset=utf-8")
	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Status(http.StatusOK)
}

func writeFrame(c *gin.Context, frame model.StreamFrame) error {
	payload, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("marshal frame: %w", err)
	}
	if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	c.Writer.Flush()
	return nil
}
