package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Mamatha1607/connectly-group-chat-application/internal/api/handler"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/api/middleware"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/core/ports"
	"github.com/Mamatha1607/connectly-group-chat-application/internal/realtime"
)

// Deps collects everything the router needs. Services are assembled in main
// so the dispatcher and hub lifecycles stay outside the HTTP layer.
type Deps struct {
	Mongo         *mongo.Database
	Redis         *redis.Client
	JWTSecret     string
	Auth          ports.AuthService
	Rooms         ports.RoomService
	Messages      ports.MessageService
	Notifications ports.NotificationService
	Users         ports.UserRepository
	Realtime      *realtime.Handler
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("connectly"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	roomHandler := handler.NewRoomHandler(d.Rooms)
	messageHandler := handler.NewMessageHandler(d.Messages)
	userHandler := handler.NewUserHandler(d.Users, d.Notifications)
	authRequired := middleware.Auth(d.JWTSecret)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)

	// --- Room routes ---
	rooms := e.Group("/api/rooms", authRequired)
	rooms.POST("/create", roomHandler.Create)
	rooms.GET("", roomHandler.List)
	rooms.GET("/my", roomHandler.ListMine)
	rooms.GET("/search", roomHandler.Search)
	rooms.GET("/:roomId", roomHandler.Get)
	rooms.PUT("/:roomId", roomHandler.Rename)
	rooms.DELETE("/:roomId", roomHandler.Delete)
	rooms.POST("/:roomId/request", roomHandler.RequestJoin)
	rooms.POST("/:roomId/approve", roomHandler.Approve)
	rooms.POST("/:roomId/join", roomHandler.Join)
	rooms.POST("/:roomId/leave", roomHandler.Leave)
	rooms.POST("/:roomId/add", roomHandler.AddMember)
	rooms.POST("/:roomId/remove", roomHandler.RemoveMember)
	rooms.POST("/:roomId/theme", roomHandler.SetTheme)

	// --- Message routes ---
	messages := e.Group("/api/messages", authRequired)
	messages.POST("", messageHandler.Send)
	messages.GET("/:roomId", messageHandler.ListForRoom)
	messages.DELETE("/room/:roomId", messageHandler.ClearRoom)
	messages.DELETE("/:messageId", messageHandler.DeleteOne)

	// --- User routes ---
	e.GET("/api/users", userHandler.List) // member-add picker, pre-auth
	users := e.Group("/api/users", authRequired)
	users.GET("/me", userHandler.Me)
	users.GET("/notifications", userHandler.Notifications)
	users.POST("/notifications/:id/read", userHandler.MarkNotificationRead)
	users.DELETE("/delete", userHandler.Delete)
	users.PUT("/theme", userHandler.UpdateTheme)

	// --- Realtime socket ---
	e.GET("/ws", d.Realtime.Serve)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Mongo, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
