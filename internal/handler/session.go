package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/model"
)

const (
	cookieName = "chat_id"
	sessionKey = "chat_id"
)

// chatSession 校验或签发 chat_id Cookie，并把会话 ID 放入上下文。
func (h *handler) chatSession(c *gin.Context) {
	id, created := h.sessions.Ensure(h.cookieSession(c))
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, h.signer.Sign(id), 0, "/", "", false, true)
	}
	c.Set(sessionKey, id)
	c.Next()
}

func (h *handler) cookieSession(c *gin.Context) string {
	raw, err := c.Cookie(cookieName)
	if err != nil || raw == "" {
		return ""
	}
	id, err := h.signer.Verify(raw)
	if err != nil {
		h.logger.Debug("discard invalid session cookie", "ip", c.ClientIP())
		return ""
	}
	return id
}

// clear 只需要丢弃会话 ID：对话历史本来就不会保存。
func (h *handler) clear(c *gin.Context) {
	if id := h.cookieSession(c); id != "" {
		h.sessions.Forget(id)
		h.logger.Info("chat session cleared", "session", id)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, model.ClearResponse{Success: true})
}
