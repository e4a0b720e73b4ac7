package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/marhaba-ai/backend/internal/api/handlers"
	"github.com/marhaba-ai/backend/internal/conversation"
	"github.com/marhaba-ai/backend/internal/engine"
	"github.com/marhaba-ai/backend/internal/metrics"
	"github.com/marhaba-ai/backend/internal/middleware/ratelimit"
	"github.com/marhaba-ai/backend/internal/middleware/security"
	"github.com/marhaba-ai/backend/internal/middleware/validation"
	"github.com/marhaba-ai/backend/internal/provider"
	"github.com/marhaba-ai/backend/pkg/config"
	appLogger "github.com/marhaba-ai/backend/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting Marhaba assistant API server")

	metrics.Register()

	selector := provider.NewSelector(
		provider.NewAnthropic(cfg.Providers.Anthropic.APIKey, cfg.Providers.Anthropic.Model, cfg.Engine.MaxTokens, cfg.Engine.Temperature),
		provider.NewOpenAI(cfg.Providers.OpenAI.APIKey, cfg.Providers.OpenAI.Model, cfg.Engine.MaxTokens, cfg.Engine.Temperature),
		provider.NewGoogle(cfg.Providers.Google.APIKey, cfg.Providers.Google.Model, cfg.Engine.MaxTokens, cfg.Engine.Temperature),
		provider.NewGroq(cfg.Providers.Groq.APIKey, cfg.Providers.Groq.Model, cfg.Engine.MaxTokens, cfg.Engine.Temperature),
	)
	selector.Select(context.Background())

	store := conversation.NewStore(time.Duration(cfg.Engine.ContextTTLMin) * time.Minute)
	defer store.Stop()

	eng := engine.NewEngine(selector, store,
		engine.WithTimezone(cfg.Engine.Timezone),
		engine.WithHistoryWindow(cfg.Engine.HistoryWindow),
		engine.WithCallTimeout(time.Duration(cfg.Engine.CallTimeoutSec)*time.Second),
	)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Conversation-ID",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{}))

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: cfg.Engine.RequestsPerMin,
		Logger:               appLogger.GetLogger(),
	})
	defer limiter.Stop()
	app.Use(limiter.Middleware())

	app.Use(validation.Middleware(validation.Config{
		MaxMessageLength: cfg.Engine.MaxQueryLength,
		Logger:           appLogger.GetLogger(),
	}))

	chatHandler := handlers.NewChatHandler(eng)
	conversationHandler := handlers.NewConversationHandler(eng)
	wsHandler := handlers.NewWebSocketHandler(eng)

	api := app.Group("/api/v1")

	api.Post("/chat", chatHandler.HandleChat)
	api.Post("/conversations/:id/clear", conversationHandler.ClearConversation)
	api.Get("/conversations/:id/history", conversationHandler.GetHistory)
	api.Get("/conversations/:id/summary", conversationHandler.GetSummary)

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	app.Get("/metrics", metrics.Handler())

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/chat", websocket.New(wsHandler.HandleConnection))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server listening", zap.String("addr", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
