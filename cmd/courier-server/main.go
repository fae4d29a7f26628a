package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"
	"github.com/redis/go-redis/v9"

	"br.com.tucano.courier/internal/auth"
	"br.com.tucano.courier/internal/boot"
	"br.com.tucano.courier/internal/handlers"
	"br.com.tucano.courier/internal/queue"
	"br.com.tucano.courier/internal/service/account"
	"br.com.tucano.courier/internal/service/conversation"
	"br.com.tucano.courier/internal/service/ledger"
	"br.com.tucano.courier/internal/service/message"
	"br.com.tucano.courier/internal/store"
	"br.com.tucano.courier/internal/worker"
)

func newQueue(config *boot.Config) (queue.Queue, error) {
	if config.Queue.Backend == "redis" {
		opts, err := redis.ParseURL(config.Queue.RedisURL)
		if err != nil {
			return nil, err
		}
		return queue.NewRedisQueue(redis.NewClient(opts)), nil
	}
	return queue.NewMemoryQueue(), nil
}

func main() {
	config, err := boot.Load()
	if err != nil {
		log.Fatalf("boot: %+v", err)
	}

	datastore, err := store.New(config)
	if err != nil {
		log.Fatalf("opening store: %+v", err)
	}
	defer datastore.Close()

	dispatcher, err := newQueue(config)
	if err != nil {
		log.Fatalf("creating queue: %+v", err)
	}

	accounts := account.New(datastore)
	accountLedger := ledger.New(datastore)
	conversations := conversation.New(datastore)
	messages := message.New(accountLedger, conversations, datastore, dispatcher)
	tokens := auth.New(config.Auth.SigningKey, config.Auth.TokenTTL)

	pool := worker.NewPool(dispatcher, datastore, &worker.SimulatedDeliverer{
		Latency: config.Worker.DeliveryLatency,
	}, config.Worker.Count)
	pool.Start(context.Background())

	server := echo.New()
	server.Use(middleware.BodyLimit("1M"))
	server.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: func() string {
			return cuid2.Generate()
		},
	}))
	server.Use(echoprometheus.NewMiddleware("courier"))
	server.Use(middleware.Recover())

	server.Logger.SetLevel(log.INFO)

	headers := []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization}
	server.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{config.Server.Origins},
		AllowHeaders:     headers,
		AllowCredentials: true,
	}))

	server.POST("/accounts", handlers.CreateAccount(accounts))
	server.POST("/auth/token", handlers.IssueToken(accounts, tokens))

	authed := server.Group("", tokens.Middleware())
	authed.GET("/accounts/:id/balance", handlers.GetBalance(accounts))
	authed.PUT("/accounts/:id", handlers.UpdateAccount(accounts))

	sendLimit := handlers.SendRateLimit(config.RateLimit.SendsPerSecond, config.RateLimit.Burst)
	authed.POST("/messages", handlers.SendMessage(messages), sendLimit)
	authed.GET("/messages", handlers.ListMessages(messages))
	authed.GET("/messages/:id", handlers.GetMessage(messages))
	authed.GET("/messages/:id/status", handlers.GetMessageStatus(messages))

	authed.GET("/conversations", handlers.ListConversations(conversations))
	authed.GET("/conversations/:id", handlers.GetConversation(conversations))
	authed.GET("/conversations/:id/messages", handlers.GetConversationMessages(conversations))

	authed.GET("/queue/status", handlers.QueueStatus(dispatcher))
	authed.GET("/queue/jobs/:id", handlers.GetJobState(dispatcher))

	go func() {
		metrics := echo.New()
		metrics.GET("/metrics", echoprometheus.NewHandler())
		if err := metrics.Start(":8081"); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	go func() {
		if err := server.Start(":" + config.Server.Port); err != nil && err != http.ErrServerClosed {
			server.Logger.Fatal("shutting down the server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	pool.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		server.Logger.Fatal(err)
	}
}
