package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/model"
)

func (h *handler) chat(c *gin.Context) {
	req, ok := h.bindChat(c)
	if !ok {
		return
	}
	h.logger.Info("chat request", "session", c.GetString(sessionKey), "stream", false, "has_image", req.Image != nil)

	text, err := h.relay.Chat(c.Request.Context(), req)
	if err != nil {
		h.logChatError(c, err)
		renderError(c, err)
		return
	}

	resp := model.ChatResponse{Response: text, Success: true}
	if h.renderer != nil {
		html, err := h.renderer.Render(text)
		if err != nil {
			h.logger.Warn("render reply failed", "error", err)
		} else {
			resp.HTML = html
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (h *handler) bindChat(c *gin.Context) (model.ChatRequest, bool) {
	var req model.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isTooLarge(err) {
			abortTooLarge(c, h.maxUpload)
			return req, false
		}
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body: " + err.Error()})
		return req, false
	}
	return req, true
}

func (h *handler) logChatError(c *gin.Context, err error) {
	status := model.StatusOf(err, http.StatusInternalServerError)
	if status >= http.StatusInternalServerError {
		h.logger.Error("chat relay failed", "session", c.GetString(sessionKey), "error", err)
		return
	}
	h.logger.Info("chat request rejected", "session", c.GetString(sessionKey), "status", status, "error", err)
}
