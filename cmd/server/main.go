package main

import (
	"context"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/2akonsultant/GoodnessGlamour/internal/ai"
	"github.com/2akonsultant/GoodnessGlamour/internal/catalog"
	"github.com/2akonsultant/GoodnessGlamour/internal/config"
	"github.com/2akonsultant/GoodnessGlamour/internal/conversation"
	"github.com/2akonsultant/GoodnessGlamour/internal/db"
	"github.com/2akonsultant/GoodnessGlamour/internal/geocode"
	httpapi "github.com/2akonsultant/GoodnessGlamour/internal/http"
	"github.com/2akonsultant/GoodnessGlamour/internal/http/handlers"
	"github.com/2akonsultant/GoodnessGlamour/internal/metrics"
	"github.com/2akonsultant/GoodnessGlamour/internal/service"
	"github.com/2akonsultant/GoodnessGlamour/internal/session"
	"github.com/2akonsultant/GoodnessGlamour/internal/telephony"
)

// bookingStore is what the server needs from any persistent booking backend.
type bookingStore interface {
	service.Sink
	Ping(ctx context.Context) error
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := log.Level(level).With().Str("service", "goodness-glamour").Logger()

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	sessions, closeSessions := openSessions(ctx, cfg, logger)
	defer closeSessions()
	m.RegisterSessionGauge(func() float64 {
		n, err := sessions.Count(context.Background())
		if err != nil {
			return 0
		}
		return float64(n)
	})

	store, reader := openBookings(ctx, cfg, logger)
	defer store.Close()

	cat := catalog.Default()

	responder, closeResponder := newResponder(ctx, cfg, cat, logger)
	defer closeResponder()

	gateway := newGateway(cfg, logger)

	completer := &service.Completer{
		Sink:        store,
		Notifier:    gateway,
		SalonNumber: cfg.SalonNotifyNumber,
		Timeout:     cfg.CompletionTimeout,
		Metrics:     m,
		Logger:      logger.With().Str("component", "completion").Logger(),
	}
	if completer.SalonNumber == "" {
		completer.SalonNumber = service.SalonContactNumber
	}
	if cfg.GeocodeEnabled {
		completer.Enricher = &geocode.Enricher{
			Geocoder: &geocode.NominatimGeocoder{
				BaseURL:      cfg.GeocodeBaseURL,
				UserAgent:    "GoodnessGlamourConcierge/1.0",
				CountryCodes: "in",
			},
			Region:    "India",
			OriginLat: cfg.SalonLat,
			OriginLon: cfg.SalonLon,
		}
		logger.Info().Str("base_url", cfg.GeocodeBaseURL).Msg("address geocoding enabled")
	}
	completer.Start(cfg.CompletionWorkers, cfg.CompletionQueue)
	defer completer.Close()

	engine := conversation.New(sessions, cat,
		conversation.WithResponder(responder, cfg.AITimeout),
		conversation.WithCompleter(completer),
		conversation.WithMetrics(m),
		conversation.WithLogger(logger.With().Str("component", "conversation").Logger()),
	)

	h := &handlers.Handler{
		Engine:        engine,
		Sessions:      sessions,
		Catalog:       cat,
		Store:         store,
		Gateway:       gateway,
		Validator:     validator.New(),
		Logger:        logger,
		PublicBaseURL: cfg.PublicBaseURL,
	}
	if reader != nil {
		h.Bookings = reader
	}

	router := httpapi.Router(cfg, h, m, logger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Str("public_url", cfg.PublicBaseURL).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	stop()
	logger.Info().Msg("server stopped")
}

func openSessions(ctx context.Context, cfg config.Config, logger zerolog.Logger) (session.Store, func()) {
	if strings.EqualFold(cfg.SessionBackend, config.SessionBackendRedis) {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		store := session.NewRedisStore(client, cfg.SessionTTL)
		if err := store.Ping(ctx); err != nil {
			logger.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("failed to connect redis")
		}
		logger.Info().Str("addr", cfg.RedisAddr).Msg("using redis session store")
		return store, func() { _ = client.Close() }
	}

	store := session.NewMemoryStore()
	go store.RunSweeper(ctx, cfg.SessionSweepInterval, cfg.SessionTTL, logger)
	logger.Info().Dur("ttl", cfg.SessionTTL).Msg("using in-memory session store")
	return store, func() {}
}

// openBookings returns the configured sink and, when the backend can be queried,
// a reader for the admin endpoints.
func openBookings(ctx context.Context, cfg config.Config, logger zerolog.Logger) (bookingStore, handlers.BookingReader) {
	switch strings.ToLower(cfg.BookingStore) {
	case config.BookingStorePostgres:
		store, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		if err := store.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to prepare bookings table")
		}
		logger.Info().Msg("using postgres booking store")
		return store, store
	case config.BookingStoreSQLite:
		store, err := db.NewSQLite(cfg.SQLitePath)
		if err != nil {
			logger.Fatal().Err(err).Str("path", cfg.SQLitePath).Msg("failed to open sqlite")
		}
		logger.Info().Str("path", cfg.SQLitePath).Msg("using sqlite booking store")
		return store, store
	default:
		logger.Warn().Msg("bookings are only logged, nothing is persisted")
		return db.LogSink{Logger: logger.With().Str("component", "bookings").Logger()}, nil
	}
}

func newResponder(ctx context.Context, cfg config.Config, cat *catalog.Catalog, logger zerolog.Logger) (ai.Responder, func()) {
	prompt := ai.BuildSystemPrompt(cat.List())
	switch strings.ToLower(cfg.AIProvider) {
	case config.AIProviderOpenAI:
		logger.Info().Str("model", cfg.AssistantModel).Msg("using openai-compatible responder")
		return ai.NewOpenAICompatAssistant(cfg.AssistantBaseURL, cfg.AssistantModel, cfg.AssistantAPIKey, prompt), func() {}
	case config.AIProviderGemini:
		g, err := ai.NewGeminiResponder(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, prompt)
		if err != nil {
			logger.Error().Err(err).Msg("gemini unavailable, using scripted replies")
			return ai.RuleResponder{}, func() {}
		}
		logger.Info().Msg("using gemini responder")
		return g, closeQuietly(g, logger)
	case config.AIProviderHTTP:
		logger.Info().Str("url", cfg.AIURL).Msg("using http responder")
		return ai.HTTPResponder{BaseURL: cfg.AIURL}, func() {}
	default:
		logger.Info().Msg("using scripted replies")
		return ai.RuleResponder{}, func() {}
	}
}

func newGateway(cfg config.Config, logger zerolog.Logger) telephony.Gateway {
	if strings.EqualFold(cfg.TelephonyMode, config.TelephonyTwilio) {
		g, err := telephony.NewTwilio(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioPhoneNumber, cfg.PublicBaseURL, logger)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure twilio")
		}
		logger.Info().Str("from", cfg.TwilioPhoneNumber).Str("voice_webhook", telephony.VoiceWebhookURL(cfg.PublicBaseURL)).Msg("using twilio gateway")
		return g
	}
	logger.Warn().Msg("telephony is simulated, no calls or messages are sent")
	return telephony.SimulatedGateway{Logger: logger.With().Str("component", "telephony").Logger()}
}

func closeQuietly(c io.Closer, logger zerolog.Logger) func() {
	return func() {
		if err := c.Close(); err != nil {
			logger.Warn().Err(err).Msgf("close %T", c)
		}
	}
}
