package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"social-service/internal/db"
	"social-service/internal/handlers"
	"social-service/internal/memstore"
	"social-service/internal/middleware"
	"social-service/internal/observability"
	"social-service/internal/presence"
	"social-service/internal/rabbitmq"
	"social-service/internal/repositories"
	"social-service/internal/security"
	"social-service/internal/services"
	"social-service/internal/telemetry"
	"social-service/internal/ws"
)

const serviceName = "social-service"

func main() {
	ctx := context.Background()

	shutdownTracing, err := observability.InitTracing(ctx, serviceName, getEnv("OTLP_ENDPOINT", ""))
	if err != nil {
		log.Fatalf("failed to init tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("tracing shutdown error: %v", err)
		}
	}()

	var (
		userRepo    repositories.UserRepository
		friendRepo  repositories.FriendRepository
		statusRepo  repositories.StatusRepository
		chatRepo    repositories.ChatRepository
		messageRepo repositories.MessageRepository
	)

	if getEnv("STORE", "postgres") == "memory" {
		log.Println("using in-memory store")
		store := memstore.New()
		userRepo, friendRepo, statusRepo, chatRepo, messageRepo = store, store, store, store, store
	} else {
		database, err := db.Connect()
		if err != nil {
			log.Fatalf("failed to connect to db: %v", err)
		}
		userRepo = repositories.NewUserRepo(database)
		friendRepo = repositories.NewFriendRepo(database)
		statusRepo = repositories.NewStatusRepo(database)
		chatRepo = repositories.NewChatRepo(database)
		messageRepo = repositories.NewMessageRepo(database)
	}

	amqpURL := getEnv("AMQP_URL", "")
	auditPublisher := rabbitmq.NewPublisher(amqpURL, getEnv("AMQP_EXCHANGE", "social.audit"))
	defer auditPublisher.Close()
	audit := telemetry.NewAuditEmitter(auditPublisher, "audit.social", serviceName, getEnv("ENVIRONMENT", "dev"))

	if eventsPublisher, err := observability.NewAMQPPublisher(amqpURL, getEnv("AMQP_EVENTS_EXCHANGE", "social.events")); err != nil {
		log.Printf("event publishing disabled: %v", err)
	} else {
		observability.SetPublisher(eventsPublisher)
		defer eventsPublisher.Close()
	}

	tracker := presence.NewTracker(getEnv("REDIS_ADDR", ""), 2*time.Minute)
	defer tracker.Close()

	verifier := security.NewTokenVerifier(getEnv("AUTH_TOKEN_SECRET", "dev-secret"))

	friendService := services.NewFriendService(friendRepo, userRepo)
	statusService := services.NewStatusService(statusRepo)
	chatService := services.NewChatService(chatRepo, messageRepo, friendRepo)
	directoryService := services.NewDirectoryService(userRepo, tracker)

	hub := ws.NewHub()

	userHandler := handlers.NewUserHandler(directoryService)
	friendHandler := handlers.NewFriendHandler(friendService, audit)
	statusHandler := handlers.NewStatusHandler(statusService, audit)
	chatHandler := handlers.NewChatHandler(chatService, hub)
	chatWS := ws.NewChatWebSocketHandler(hub, chatRepo, verifier)

	router := gin.Default()

	// middlewares
	router.Use(gin.Recovery())
	router.Use(otelgin.Middleware(serviceName))
	router.Use(observability.HTTPMetricsMiddleware())

	router.GET("/healthz", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := middleware.AuthMiddleware(verifier)

	router.POST("/users", authMiddleware, userHandler.Register)
	router.GET("/users/me", authMiddleware, userHandler.Me)
	router.PATCH("/users/me", authMiddleware, userHandler.UpdateMe)
	router.GET("/users/lookup", authMiddleware, userHandler.Lookup)
	router.PUT("/users/me/presence", authMiddleware, userHandler.SetPresence)
	router.DELETE("/users/me", authMiddleware, userHandler.Deactivate)

	router.POST("/friends/requests", authMiddleware, friendHandler.SendRequest)
	router.POST("/friends/requests/:request_id/accept", authMiddleware, friendHandler.AcceptRequest)
	router.POST("/friends/requests/:request_id/decline", authMiddleware, friendHandler.DeclineRequest)
	router.GET("/friends/requests/incoming", authMiddleware, friendHandler.ListIncoming)
	router.GET("/friends/requests/sent", authMiddleware, friendHandler.ListSent)
	router.GET("/friends", authMiddleware, friendHandler.ListFriends)

	router.POST("/statuses", authMiddleware, statusHandler.PostStatus)
	router.GET("/statuses", authMiddleware, statusHandler.ListVisible)
	router.POST("/statuses/:status_id/view", authMiddleware, statusHandler.MarkViewed)

	router.GET("/chats", authMiddleware, chatHandler.ListChats)
	router.POST("/chats/start", authMiddleware, chatHandler.StartChat)
	router.GET("/chats/:chat_id/messages", authMiddleware, chatHandler.GetChatMessages)
	router.POST("/chats/:chat_id/messages", authMiddleware, chatHandler.PostChatMessage)

	router.GET("/ws/chats/:chat_id", chatWS.Handle)

	handlers.RegisterDebugRoutes(router, audit, getEnv("DEBUG_ROUTES", "") == "true")

	port := getEnv("PORT", "8080")
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}
