package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"chatgate/cmd/fx/account_fx"
	"chatgate/cmd/fx/admin_fx"
	"chatgate/cmd/fx/catalog_fx"
	"chatgate/cmd/fx/chat_fx"
	"chatgate/cmd/fx/db_fx"
	"chatgate/cmd/fx/memcache_fx"
	"chatgate/cmd/fx/payment_fx"
	"chatgate/internal/api/controllers"
	"chatgate/internal/models/db_models"
	"chatgate/pkg/logger"
	"chatgate/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}
	slog.SetDefault(logger.New())

	app := fx.New(
		db_fx.Module,
		catalog_fx.Module,
		memcache_fx.Module,
		account_fx.Module,
		chat_fx.Module,
		payment_fx.Module,
		admin_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			port := os.Getenv("PORT")
			if port == "" {
				port = "8080"
			}
			go func() {
				slog.Info("starting HTTP server", "port", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			slog.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	accountController *controllers.AccountController,
	chatController *controllers.ChatController,
	paymentController *controllers.PaymentController,
	adminController *controllers.AdminController,
	healthController *controllers.HealthController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())

	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:5173"
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(allowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterRoutes(r, accountController, chatController, paymentController, adminController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	accountController *controllers.AccountController,
	chatController *controllers.ChatController,
	paymentController *controllers.PaymentController,
	adminController *controllers.AdminController,
	healthController *controllers.HealthController) {

	r.GET("/health", healthController.Check)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", accountController.Register)
	authGroup.POST("/login", accountController.Login)

	plansGroup := r.Group("/plans")
	plansGroup.GET("", paymentController.ListPlans)
	plansGroup.GET("/:name", paymentController.GetPlan)

	chatGroup := r.Group("/chat")
	chatGroup.Use(middleware.JWTAuthMiddleware())
	chatGroup.POST("/send", chatController.SendMessage)
	chatGroup.GET("/history", chatController.GetChatHistory)
	chatGroup.GET("/permission", chatController.CheckPermission)
	chatGroup.GET("/tokens", chatController.GetRemainingTokens)

	paymentGroup := r.Group("/payment")
	paymentGroup.Use(middleware.JWTAuthMiddleware())
	paymentGroup.POST("/process", paymentController.ProcessPayment)
	paymentGroup.GET("/subscription", paymentController.GetSubscriptionStatus)

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.JWTAuthMiddleware(), middleware.RoleMiddleware(db_models.RoleAdmin))
	adminGroup.PUT("/subscription", adminController.UpdateSubscription)
	adminGroup.GET("/analytics", adminController.GetSystemAnalytics)
	adminGroup.GET("/users", adminController.ListUsers)
}
