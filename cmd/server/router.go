package server

import (
	"github.com/gin-gonic/gin"
	"github.com/thereayou/skillbridge/internal/handlers"
	"github.com/thereayou/skillbridge/internal/middleware"
	"github.com/thereayou/skillbridge/internal/models"
	"github.com/thereayou/skillbridge/pkg/auth"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	Profile      *handlers.ProfileHandler
	Chat         *handlers.ChatHandler
	Notification *handlers.NotificationHandler
	Booking      *handlers.BookingHandler
	Review       *handlers.ReviewHandler
	Withdrawal   *handlers.WithdrawalHandler
	WebSocket    *handlers.WebSocketHandler
	JWTManager   *auth.JWTManager
	Blacklist    auth.TokenBlacklist
}

func APIEndpoints(r *gin.Engine, h *Handlers) {
	// Auth endpoints
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", h.Auth.Register)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/logout", h.Auth.Logout)
	}

	// Публичный каталог
	r.GET("/specialists", h.Profile.ListSpecialists)
	r.GET("/specialists/:id", h.Profile.GetSpecialist)
	r.GET("/specialists/:id/reviews", h.Review.ListForSpecialist)

	// API endpoints
	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(h.JWTManager, h.Blacklist))
	{
		api.GET("/me", h.Profile.Me)
		api.PATCH("/me", h.Profile.UpdateMe)

		api.POST("/chat/rooms", h.Chat.CreateOrGetRoom)
		api.GET("/chat/rooms", h.Chat.GetMyRooms)
		api.GET("/chat/rooms/:id/messages", h.Chat.GetRoomMessages)
		api.POST("/chat/rooms/:id/messages", h.Chat.SendMessage)

		api.GET("/notifications", h.Notification.List)

		api.POST("/bookings", h.Booking.Create)
		api.GET("/bookings", h.Booking.List)
		api.PATCH("/bookings/:id/status", h.Booking.UpdateStatus)

		api.POST("/reviews", h.Review.Create)

		withdrawals := api.Group("/withdrawals")
		withdrawals.Use(middleware.RequireRole(models.RoleSpecialist))
		{
			withdrawals.POST("", h.Withdrawal.Create)
			withdrawals.GET("", h.Withdrawal.List)
		}
	}

	// Рукопожатие аутентифицируется внутри хендлера, не в middleware
	r.GET("/ws", h.WebSocket.HandleWebSocket)
}
