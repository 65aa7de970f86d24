package main

import (
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"

	"github.com/joho/godotenv"
	"github.com/sonuudigital/storefront/internal/auth"
	"github.com/sonuudigital/storefront/internal/catalog"
	"github.com/sonuudigital/storefront/internal/events"
	"github.com/sonuudigital/storefront/internal/handlers"
	"github.com/sonuudigital/storefront/internal/logs"
	"github.com/sonuudigital/storefront/internal/middlewares"
	"github.com/sonuudigital/storefront/internal/orders"
	"github.com/sonuudigital/storefront/internal/router"
	"github.com/sonuudigital/storefront/internal/session"
	"github.com/sonuudigital/storefront/internal/web"
)

const (
	defaultOrdersFile   = "data/orders.json"
	defaultProductsFile = "data/products.json"
)

func main() {
	logger := logs.NewSlogLogger()
	err := godotenv.Load()
	if err == nil {
		logger.Info("loaded environment variables from .env file")
	} else {
		logger.Info("no .env file found, using environment variables")
	}

	logger.Info("starting storefront")

	sessionStore := initializeSessionStore(logger)
	jwtManager := initializeJWTManager(logger)

	productsFile := os.Getenv("PRODUCTS_FILE")
	if productsFile == "" {
		productsFile = defaultProductsFile
	}
	productCatalog, err := catalog.NewStore(productsFile)
	if err != nil {
		logger.Error("failed to load product catalog", "error", err)
		os.Exit(1)
	}

	ordersFile := os.Getenv("ORDERS_FILE")
	if ordersFile == "" {
		ordersFile = defaultOrdersFile
	}
	orderRepo := orders.NewFileRepository(ordersFile)

	var publisher handlers.OrderCreatedPublisher
	if rabbitURL := os.Getenv("RABBITMQ_URL"); rabbitURL != "" {
		rabbitPublisher, err := events.NewOrderCreatedPublisher(logger, rabbitURL)
		if err != nil {
			logger.Error("failed to connect to RabbitMQ", "error", err)
			os.Exit(1)
		}
		defer rabbitPublisher.Close()
		publisher = rabbitPublisher
	} else {
		logger.Info("RABBITMQ_URL not set, order events disabled")
	}

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPasswordHash := os.Getenv("ADMIN_PASSWORD_HASH")
	if adminEmail == "" || adminPasswordHash == "" {
		logger.Error("ADMIN_EMAIL and ADMIN_PASSWORD_HASH must be set")
		os.Exit(1)
	}

	cartHandler := handlers.NewCartHandler(logger, sessionStore, productCatalog)
	orderHandler := handlers.NewOrderHandler(logger, orderRepo, publisher)
	productHandler := handlers.NewProductHandler(logger, productCatalog)
	authHandler := handlers.NewAuthHandler(logger, jwtManager, adminEmail, adminPasswordHash)
	metricsHandler := handlers.NewMetricsHandler(logger, productCatalog)

	adminMw := middlewares.AdminAuthMiddleware(jwtManager, logger)
	mux := router.New(cartHandler, orderHandler, productHandler, authHandler, metricsHandler, adminMw)

	handler := initializeRateLimiter(logger).Middleware(mux)

	srv, err := web.InitializeServer(os.Getenv("PORT"), handler, logger)
	if err != nil {
		logger.Error("failed to initialize server", "error", err)
		os.Exit(1)
	}

	web.StartServerAndWaitForShutdown(srv, logger)
}

func initializeSessionStore(logger logs.Logger) *session.Store {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		logger.Error("SESSION_SECRET environment variable not set")
		os.Exit(1)
	}

	secure := os.Getenv("ENV") == "production"
	store, err := session.NewStore(secret, os.Getenv("SESSION_COOKIE_NAME"), secure)
	if err != nil {
		logger.Error("failed to create session store", "error", err)
		os.Exit(1)
	}
	return store
}

func initializeJWTManager(logger logs.Logger) *auth.JWTManager {
	jwtPrivateKeyPath := os.Getenv("JWT_PRIVATE_KEY_PATH")
	if jwtPrivateKeyPath == "" {
		logger.Error("jwt private key path not found in environment variables")
		os.Exit(1)
	}
	privateKey, err := os.ReadFile(jwtPrivateKeyPath)
	if err != nil {
		logger.Error("failed to read private key", "path", jwtPrivateKeyPath, "error", err)
		os.Exit(1)
	}

	jwtPublicKeyPath := os.Getenv("JWT_PUBLIC_KEY_PATH")
	if jwtPublicKeyPath == "" {
		logger.Error("jwt public key path not found in environment variables")
		os.Exit(1)
	}
	publicKey, err := os.ReadFile(jwtPublicKeyPath)
	if err != nil {
		logger.Error("failed to read public key", "path", jwtPublicKeyPath, "error", err)
		os.Exit(1)
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		logger.Error("jwt issuer not found in environment variables")
		os.Exit(1)
	}
	jwtAudience := os.Getenv("JWT_AUDIENCE")
	if jwtAudience == "" {
		logger.Error("jwt audience not found in environment variables")
		os.Exit(1)
	}

	ttlMinutes := 60
	if v := os.Getenv("JWT_TTL_MINUTES"); v != "" {
		ttlMinutes, err = strconv.Atoi(v)
		if err != nil {
			logger.Error("invalid jwt expiration minutes", "error", err)
			os.Exit(1)
		}
	}

	jwtManager, err := auth.NewJWTManager(
		privateKey,
		publicKey,
		jwtIssuer,
		jwtAudience,
		time.Duration(ttlMinutes)*time.Minute,
	)
	if err != nil {
		logger.Error("failed to create jwt manager", "error", err)
		os.Exit(1)
	}

	return jwtManager
}

func initializeRateLimiter(logger logs.Logger) *middlewares.RateLimiterMiddleware {
	rateLimits := map[int]middlewares.RateLimitConfig{
		middlewares.UnknownClient:       {Rate: rate.Limit(10), Burst: 20},
		middlewares.AuthenticatedClient: {Rate: rate.Limit(50), Burst: 100},
	}

	enabled := os.Getenv("RATE_LIMITING_ENABLED") == "true"
	if !enabled {
		logger.Info("rate limiting disabled")
		return middlewares.NewRateLimiterMiddleware(logger, rateLimits, nil, false)
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		logger.Error("RATE_LIMITING_ENABLED is true but REDIS_URL is not set")
		os.Exit(1)
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.Error("invalid REDIS_URL", "error", err)
		os.Exit(1)
	}

	limiter := redis_rate.NewLimiter(redis.NewClient(opts))
	logger.Info("rate limiting enabled")
	return middlewares.NewRateLimiterMiddleware(logger, rateLimits, limiter, true)
}
