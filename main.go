package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-gonic/gin"

	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/config"
	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/handler"
	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/markdown"
	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/server"
	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/service/gemini"
	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/session"
	"github.com/Akshay-gurav-31/ChatBOT-HELATH/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))
	slog.SetDefault(logger)

	if cfg.APIKey == "" {
		logger.Warn("GEMINI_API_KEY not found in environment variables; chat requests will fail until it is set")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instruction, err := gemini.LoadInstruction(cfg.InstructionFile)
	if err != nil {
		logger.Error("failed to load system instruction", "error", err)
		os.Exit(1)
	}

	archive, err := storage.New(cfg.Archive, cfg.WriteTimeout, logger)
	if err != nil {
		logger.Error("failed to init upload archive", "error", err)
		os.Exit(1)
	}

	chatModel := gemini.NewUnconfiguredModel()
	if cfg.APIKey != "" {
		client, err := gemini.NewClient(ctx, cfg.APIKey)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
			os.Exit(1)
		}
		defer client.Close()
		chatModel = gemini.NewModel(client, cfg.Model, instruction)
	}
	service := gemini.NewService(chatModel, logger)

	srv := server.New(cfg, logger, func(r *gin.Engine) {
		handler.Register(r, handler.Deps{
			Relay:       service,
			Sessions:    session.NewStore(cfg.SessionTTL, cfg.SessionMax),
			Signer:      session.NewSigner(cfg.SecretKey),
			Renderer:    markdown.NewRenderer(),
			Archive:     archive,
			AuthToken:   cfg.AuthToken,
			MaxUploadMB: cfg.MaxUploadMB,
			Logger:      logger,
		})
	})

	if err := srv.Run(ctx); err != nil {
		logger.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func parseLevel(raw string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(raw))); err != nil {
		return slog.LevelInfo
	}
	return level
}
