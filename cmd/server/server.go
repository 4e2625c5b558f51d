package main

import (
	"context"
	"fmt"
	"log"

	"github.com/Netflix/go-env"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"skillswap/internal/chat"
	"skillswap/internal/chatdb"
	"skillswap/internal/database"
	"skillswap/internal/handlers"
	"skillswap/internal/realtime"
	ws "skillswap/internal/websocket"
	"skillswap/pkg/auth"
)

type Server struct {
	Config     Config
	Router     *gin.Engine
	DB         *database.Database
	Redis      *redis.Client
	Mongo      *chatdb.Client
	Hub        *ws.Hub
	JWTManager *auth.JWTManager

	AuthH    *handlers.AuthHandler
	UserH    *handlers.UserHandler
	SkillH   *handlers.SkillHandler
	RequestH *handlers.RequestHandler
	MessageH *handlers.MessageHandler
	WSH      *handlers.WebSocketHandler

	cancel context.CancelFunc
}

func NewServer() *Server {
	if err := godotenv.Load(".env.local"); err != nil {
		if err := godotenv.Load(); err != nil {
			log.Println(".env not found, using environment variables")
		}
	}

	var cfg Config
	if _, err := env.UnmarshalFromEnviron(&cfg); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	dbConn := &database.Database{}
	if err := dbConn.Connect(cfg.DatabaseURL); err != nil {
		log.Fatalf("Postgres connect failed: %v", err)
	}

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("invalid REDIS_URL: %v", err)
	}
	rdb := redis.NewClient(redisOpts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("Redis connect failed: %v", err)
	}

	mongoClient, err := chatdb.New(ctx, cfg.MongoURI)
	if err != nil {
		log.Fatalf("MongoDB connect failed: %v", err)
	}
	if err := mongoClient.CreateIndexes(ctx); err != nil {
		log.Fatalf("MongoDB index creation failed: %v", err)
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	hub := ws.NewHub()
	go hub.Run()

	// События чата идут через Redis, мост раздает их websocket-клиентам
	bridge := realtime.NewBridge(rdb, hub)
	go bridge.Run(ctx)

	chatStore := chatdb.NewChatStore(mongoClient.ChatsCollection())
	notifier := realtime.NewRedisNotifier(rdb)
	chatSvc := chat.NewService(chatStore, notifier)

	s := &Server{
		Config:     cfg,
		DB:         dbConn,
		Redis:      rdb,
		Mongo:      mongoClient,
		Hub:        hub,
		JWTManager: jwtMgr,
		AuthH:      handlers.NewAuthHandler(dbConn, jwtMgr, rdb),
		UserH:      handlers.NewUserHandler(dbConn, hub),
		SkillH:     handlers.NewSkillHandler(dbConn),
		RequestH:   handlers.NewRequestHandler(dbConn),
		MessageH:   handlers.NewMessageHandler(chatSvc),
		WSH:        handlers.NewWebSocketHandler(hub),
		cancel:     cancel,
	}

	router := gin.Default()
	APIEndpoints(router, s)
	s.Router = router

	return s
}

func (s *Server) Run() {
	log.Printf("Server starting on port %d", s.Config.Port)
	if err := s.Router.Run(fmt.Sprintf(":%d", s.Config.Port)); err != nil {
		log.Fatalf("Server run error: %v", err)
	}
}

func (s *Server) Shutdown(ctx context.Context) {
	s.cancel()
	s.Hub.Stop()
	if err := s.Mongo.Close(ctx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
	if err := s.Redis.Close(); err != nil {
		log.Printf("Redis close error: %v", err)
	}
}
