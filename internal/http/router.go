package httpapi

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/2akonsultant/GoodnessGlamour/internal/config"
	"github.com/2akonsultant/GoodnessGlamour/internal/http/handlers"
	"github.com/2akonsultant/GoodnessGlamour/internal/http/middleware"
	"github.com/2akonsultant/GoodnessGlamour/internal/metrics"

	_ "github.com/2akonsultant/GoodnessGlamour/docs"
)

func Router(cfg config.Config, h *handlers.Handler, m *metrics.Metrics, logger zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(m.Middleware())
	r.SetHTMLTemplate(handlers.LandingTemplate)

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Key", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if cfg.CORSAllowed == "*" {
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = []string{cfg.CORSAllowed}
	}
	r.Use(cors.New(corsCfg))

	r.GET("/healthz", h.Healthz)
	if cfg.MetricsEnabled && m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}

	voice := r.Group("/voice")
	{
		voice.POST("/incoming", h.VoiceIncoming)
		voice.POST("/process_speech/:call_sid", h.VoiceSpeech)
		voice.POST("/status", h.VoiceStatus)
		voice.POST("/status/:call_sid", h.VoiceStatus)
	}
	r.POST("/sms/incoming", h.SMSIncoming)

	r.GET("/qr/voice-booking", h.QRLanding)
	limiter := middleware.NewIPRateLimiter(cfg.CallRatePerMinute, 2)
	r.POST("/trigger-voice-call", middleware.RateLimit(limiter, logger), h.TriggerVoiceCall)

	api := r.Group("/api")
	{
		api.GET("/services", h.Services)
		api.GET("/qr/generate", h.QRGenerate)
		api.POST("/chat/sessions", h.ChatStart)
		api.POST("/chat/sessions/:id/messages", h.ChatMessage)
		api.DELETE("/chat/sessions/:id", h.ChatEnd)
	}

	admin := api.Group("")
	admin.Use(middleware.AdminKey(cfg.AdminKey))
	{
		admin.GET("/bookings", h.BookingsList)
		admin.GET("/bookings/:id", h.BookingGet)
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}
