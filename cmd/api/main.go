package main

import (
	"expvar"
	"fmt"
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"roamingg/internal/bookings"
	"roamingg/internal/listing"
	"roamingg/internal/payments"
	"roamingg/internal/ratelimiter"
	"roamingg/internal/session"
)

var version = "1.0.0"

// LoadRateLimiterConfig retrieves rate limiter settings from environment variables
func LoadRateLimiterConfig() ratelimiter.Config {
	defaultRequests := 200
	defaultEnabled := false

	requestsPerTimeFrame := defaultRequests
	if val, exists := os.LookupEnv("RATELIMITER_REQUESTS_COUNT"); exists {
		if parsedVal, err := strconv.Atoi(val); err == nil {
			requestsPerTimeFrame = parsedVal
		} else {
			fmt.Println("Invalid RATELIMITER_REQUESTS_COUNT, defaulting to", defaultRequests)
		}
	}

	enabled := defaultEnabled
	if val, exists := os.LookupEnv("RATE_LIMITER_ENABLED"); exists {
		if parsedVal, err := strconv.ParseBool(val); err == nil {
			enabled = parsedVal
		} else {
			fmt.Println("Invalid RATE_LIMITER_ENABLED, defaulting to", defaultEnabled)
		}
	}

	return ratelimiter.Config{
		RequestsPerTimeFrame: requestsPerTimeFrame,
		TimeFrame:            5 * time.Second,
		Enabled:              enabled,
	}
}

// NewLogger creates a new zap logger with color.
func NewLogger() (*zap.SugaredLogger, error) {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder

	consoleEncoder := zapcore.NewConsoleEncoder(encoderCfg)
	level := zapcore.InfoLevel

	core := zapcore.NewCore(consoleEncoder, zapcore.NewMultiWriteSyncer(zapcore.AddSync(os.Stdout)), level)

	return zap.New(core).Sugar(), nil
}

func durationEnv(key string, fallback time.Duration) time.Duration {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	minutes, err := strconv.Atoi(val)
	if err != nil || minutes <= 0 {
		fmt.Println("Invalid", key+", defaulting to", fallback)
		return fallback
	}
	return time.Duration(minutes) * time.Minute
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := config{
		addr:              os.Getenv("ADDR"),
		env:               os.Getenv("ENV"),
		listingServiceURL: os.Getenv("LISTING_SERVICE_URL"),
		bookingServiceURL: os.Getenv("BOOKING_SERVICE_URL"),
		checkoutURL:       os.Getenv("CHECKOUT_BASE_URL"),
		collaboratorTTL:   durationEnv("COLLABORATOR_TIMEOUT_MINUTES", time.Minute),
		sessionTTL:        durationEnv("SESSION_TTL_MINUTES", 30*time.Minute),
		rateLimiter:       LoadRateLimiterConfig(),
	}
	if cfg.addr == "" {
		cfg.addr = ":8080"
	}

	logger, err := NewLogger()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		return
	}
	defer logger.Sync()

	if cfg.listingServiceURL == "" {
		logger.Fatal("LISTING_SERVICE_URL is required")
	}
	if cfg.bookingServiceURL == "" {
		logger.Fatal("BOOKING_SERVICE_URL is required")
	}

	rateLimiter := ratelimiter.NewFixedWindowLimiter(
		cfg.rateLimiter.RequestsPerTimeFrame,
		cfg.rateLimiter.TimeFrame,
	)

	app := &application{
		config:      cfg,
		logger:      logger,
		sessions:    session.NewStore(cfg.sessionTTL),
		listings:    listing.NewClient(cfg.listingServiceURL, cfg.collaboratorTTL, logger),
		bookings:    bookings.NewClient(cfg.bookingServiceURL, cfg.collaboratorTTL, logger),
		checkout:    payments.NewHostedCheckout(cfg.checkoutURL),
		rateLimiter: rateLimiter,
	}

	// Metrics collected at /v1/debug/vars
	expvar.NewString("version").Set(version)
	expvar.Publish("booking_sessions", expvar.Func(func() any {
		return app.sessions.Len()
	}))
	expvar.Publish("goroutines", expvar.Func(func() any {
		return runtime.NumGoroutine()
	}))

	mux := app.mount()

	logger.Fatal(app.run(mux))
}
