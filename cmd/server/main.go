package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/todo-auth/internal/auth"
	"github.com/iliyamo/todo-auth/internal/config"
	"github.com/iliyamo/todo-auth/internal/database"
	"github.com/iliyamo/todo-auth/internal/handler"
	"github.com/iliyamo/todo-auth/internal/lock"
	"github.com/iliyamo/todo-auth/internal/queue"
	"github.com/iliyamo/todo-auth/internal/repository"
	"github.com/iliyamo/todo-auth/internal/router"
	audit "github.com/iliyamo/todo-auth/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment directly
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	codec, err := auth.NewCodec(cfg.JWTAlgorithm, cfg.JWTEncodeKey, cfg.JWTDecodeKey, cfg.JWTAcceptAlgorithms, cfg.AccessTokenTTL)
	if err != nil {
		log.Fatalf("token codec: %v", err)
	}
	hasher := auth.NewHasher(cfg.BcryptCost)

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	todos := repository.NewTodoRepo(db)

	opts := []auth.Option{auth.WithAuditSink(audit.NewReusePublisher())}
	if rdb := config.NewRedisClient(); rdb != nil {
		opts = append(opts, auth.WithLocker(lock.NewRedisLocker(rdb)))
	} else {
		log.Println("redis unavailable; refresh rotation serialized in-process only")
	}
	svc := auth.NewService(users, tokens, codec, hasher, cfg.RefreshTokenTTL, opts...)

	go func() {
		if err := queue.StartSecurityConsumer(); err != nil {
			log.Printf("security-consumer: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e, svc,
		handler.NewAuthHandler(svc),
		handler.NewTodoHandler(todos),
		handler.NewAdminHandler(svc, users, hasher))

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
