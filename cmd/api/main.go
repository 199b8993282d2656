package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"pagesmith-api/internal/handlers/generate"
	"pagesmith-api/internal/handlers/publish"
	"pagesmith-api/internal/huggingface"
	"pagesmith-api/internal/middleware"
	"pagesmith-api/internal/routers"
	"pagesmith-api/internal/shared"
	"pagesmith-api/internal/users"

	"github.com/labstack/echo/v4"
	emw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/manifold-inc/manifold-sdk/lib/eflag"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	// Flags / ENV Variables
	listenAddr := flag.String("listen-addr", ":80", "Listen address")
	metricsAPIKey := flag.String("metrics-api-key", "", "Metrics api key")
	redisAddr := flag.String("redis-addr", "", "Redis host:port")
	debug := flag.Bool("debug", false, "Debug enabled")
	staticDir := flag.String("static-dir", "public", "Editor static assets directory")

	inferenceBaseURL := flag.String("inference-base-url", "", "OpenAI-compatible inference gateway base URL")
	inferenceModel := flag.String("inference-model", "deepseek-ai/DeepSeek-V3-0324", "Model identifier for generations")
	inferenceKey := flag.String("inference-api-key", "", "Primary inference API key")
	inferenceKey2 := flag.String("inference-api-key-2", "", "Second failover inference API key")
	inferenceKey3 := flag.String("inference-api-key-3", "", "Third failover inference API key")

	hubEndpoint := flag.String("hub-endpoint", "https://huggingface.co", "Hub endpoint")
	hubClientID := flag.String("hub-client-id", "", "OAuth client id")
	hubClientSecret := flag.String("hub-client-secret", "", "OAuth client secret")
	hubRedirectURI := flag.String("hub-redirect-uri", "", "OAuth redirect URI")

	maxAnonRequests := flag.Int64("max-anon-requests", 4, "Generations allowed per IP without a session")

	err := eflag.SetFlagsFromEnvironment()
	if err != nil {
		panic(err)
	}
	flag.Parse()

	// Load Redis connection
	redisClient := redis.NewClient(&redis.Options{
		Addr:     *redisAddr,
		Password: "",
		DB:       0,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		panic(fmt.Sprintf("failed ping to redis db: %s", err))
	}

	defer func() {
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}()

	var logger *zap.Logger
	if !*debug {
		logger, err = zap.NewProduction()
		if err != nil {
			panic("Failed init logger")
		}
	}
	if *debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			panic("Failed init logger")
		}
	}
	log := logger.Sugar()

	e := echo.New()
	e.GET(("/ping"), func(c echo.Context) error {
		return c.String(200, "")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()), func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			apiKey, err := shared.ExtractAPIKey(c)
			if err != nil {
				return c.String(401, "Missing or invalid API key")
			}

			if apiKey != *metricsAPIKey {
				return c.String(401, "Unauthorized API key")
			}
			return next(c)
		}
	})
	e.Static("/", *staticDir)

	base := e.Group("")
	base.Use(emw.CORS())
	base.Use(middleware.NewRecoverMiddleware(log))
	base.Use(middleware.NewTrackMiddleware(log))

	middleware.InitSessionMiddleware(log)

	hub := huggingface.NewClient(*hubEndpoint, *hubClientID, *hubClientSecret, *hubRedirectURI, log)
	userMgr := users.NewManager(hub, redisClient, log)
	limiter := middleware.NewRateLimiter(&middleware.RedisCounter{Client: redisClient}, *maxAnonRequests, log)

	// Register routes
	err = routers.RegisterAuthRoutes(base, hub, userMgr)
	if err != nil {
		panic(err)
	}
	err = routers.RegisterGenerateRoutes(base, generate.Config{
		BaseURL: *inferenceBaseURL,
		Model:   *inferenceModel,
		Keys:    []string{*inferenceKey, *inferenceKey2, *inferenceKey3},
	}, limiter, log)
	if err != nil {
		panic(err)
	}
	err = routers.RegisterPublishRoutes(base, publish.NewHandler(hub, log))
	if err != nil {
		panic(err)
	}

	go func() {
		if err := e.Start(*listenAddr); err != nil && err != http.ErrServerClosed {
			e.Logger.Fatal("shutting down the server")
		}
	}()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	// Wait for interrupt signal to gracefully shut down the server
	<-ctx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), shared.DefaultShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		e.Logger.Fatal(err)
	}
}
