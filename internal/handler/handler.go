package handler

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/markdown"
	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/model"
	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/session"
	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/storage"
)

// Relay 把一轮对话转发给模型。
type Relay interface {
	Chat(ctx context.Context, req model.ChatRequest) (string, error)
	Stream(ctx context.Context, req model.ChatRequest, emit func(chunk string) error) error
}

// Deps 汇总路由需要的依赖，Archive 可以为空。
type Deps struct {
	Relay       Relay
	Sessions    *session.Store
	Signer      *session.Signer
	Renderer    *markdown.Renderer
	Archive     storage.Archive
	AuthToken   string
	MaxUploadMB int64
	Logger      *slog.Logger
}

// Register 将业务路由挂载到 gin 引擎上。
func Register(router *gin.Engine, deps Deps) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router.Use(bodyLimit(deps.MaxUploadMB))
	if strings.TrimSpace(deps.AuthToken) != "" {
		router.Use(authMiddleware(deps.AuthToken))
	}

	h := &handler{
		relay:     deps.Relay,
		sessions:  deps.Sessions,
		signer:    deps.Signer,
		renderer:  deps.Renderer,
		archive:   deps.Archive,
		maxUpload: deps.MaxUploadMB,
		logger:    logger,
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	api := router.Group("/api")
	{
		api.POST("/chat/clear", h.clear)

		chat := api.Group("/chat", h.chatSession)
		{
			chat.POST("", h.chat)
			chat.POST("/stream", h.stream)
		}
		api.POST("/upload", h.upload)
	}
}

type handler struct {
	relay     Relay
	sessions  *session.Store
	signer    *session.Signer
	renderer  *markdown.Renderer
	archive   storage.Archive
	maxUpload int64
	logger    *slog.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

// errorMessage 业务错误原样返回，其余错误加上统一前缀。
func errorMessage(err error) string {
	if model.StatusOf(err, 0) != 0 {
		return err.Error()
	}
	return "An error occurred: " + err.Error()
}

func renderError(c *gin.Context, err error) {
	status := model.StatusOf(err, http.StatusInternalServerError)
	c.JSON(status, errorResponse{Error: errorMessage(err)})
}

func authMiddleware(token string) gin.HandlerFunc {
	secret := []byte(strings.TrimSpace(token))

	return func(c *gin.Context) {
		// 健康检查保持开放，便于外部探活。
		if c.Request.URL.Path == "/healthz" {
			c.Next()
			return
		}

		provided := extractToken(c)
		if subtle.ConstantTimeCompare([]byte(provided), secret) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Error: "unauthorized"})
			return
		}

		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	if authHeader != "" {
		return authHeader
	}
	return strings.TrimSpace(c.GetHeader("X-API-Key"))
}
