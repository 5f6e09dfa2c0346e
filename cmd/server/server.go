package server

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/thereayou/skillbridge/internal/database"
	"github.com/thereayou/skillbridge/internal/handlers"
	"github.com/thereayou/skillbridge/internal/realtime"
	"github.com/thereayou/skillbridge/pkg/auth"
)

type Server struct {
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	JWTManager *auth.JWTManager
	Hub        *realtime.Hub
	Emitter    *realtime.Emitter
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	dbConn := &database.Database{}
	if err := dbConn.Connect(); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(os.Getenv("REDIS_URL"))
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(
		os.Getenv("JWT_SECRET"),
		24*time.Hour,
	)
	blacklist := auth.NewRedisBlacklist(rdb)

	// Emitter создается до hub'а: REST-хендлеры получают его сразу,
	// hub присоединяется ниже. Пропущенный пуш до Attach — no-op.
	emitter := realtime.NewEmitter()

	presence := realtime.NewMemoryPresence()
	hub := realtime.NewHub(realtimeConfig(), presence)
	emitter.Attach(hub)

	guard := realtime.NewGuard(dbConn)
	wsRouter := realtime.NewRouter(
		realtime.NewChatHandlers(hub, guard, dbConn),
		realtime.NewNotificationHandlers(hub, dbConn),
		realtime.NewPresenceHandlers(hub, presence),
	)
	authenticator := realtime.NewAuthenticator(jwtMgr, blacklist)

	authH := handlers.NewAuthHandler(dbConn, jwtMgr, blacklist)
	profileH := handlers.NewProfileHandler(dbConn, presence)
	chatH := handlers.NewChatHandler(dbConn, emitter)
	notificationH := handlers.NewNotificationHandler(dbConn, emitter)
	bookingH := handlers.NewBookingHandler(dbConn, notificationH)
	reviewH := handlers.NewReviewHandler(dbConn, notificationH)
	withdrawalH := handlers.NewWithdrawalHandler(dbConn)
	wsH := handlers.NewWebSocketHandler(hub, authenticator, wsRouter)

	router := gin.Default()
	APIEndpoints(router, &Handlers{
		Auth:         authH,
		Profile:      profileH,
		Chat:         chatH,
		Notification: notificationH,
		Booking:      bookingH,
		Review:       reviewH,
		Withdrawal:   withdrawalH,
		WebSocket:    wsH,
		JWTManager:   jwtMgr,
		Blacklist:    blacklist,
	})

	return &Server{
		Router:     router,
		DB:         dbConn,
		Redis:      rdb,
		JWTManager: jwtMgr,
		Hub:        hub,
		Emitter:    emitter,
	}
}

func (s *Server) Run() {
	go s.Hub.Run()
	defer s.Hub.Stop()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server starting on port %s", port)
	if err := s.Router.Run(":" + port); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}

// realtimeConfig читает настройки heartbeat из окружения
func realtimeConfig() realtime.Config {
	cfg := realtime.DefaultConfig()

	if v := os.Getenv("WS_PING_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PingInterval = d
		}
	}
	if v := os.Getenv("WS_PONG_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.PongTimeout = d
		}
	}

	return cfg
}
