package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/zapcrm/whatsapp-integration/internal/api/handler"
	"github.com/zapcrm/whatsapp-integration/internal/api/middleware"
	"github.com/zapcrm/whatsapp-integration/internal/core/domain"
	"github.com/zapcrm/whatsapp-integration/internal/core/ports"
	infrahttp "github.com/zapcrm/whatsapp-integration/internal/infrastructure/http"
	"github.com/zapcrm/whatsapp-integration/internal/infrastructure/http/handlers"
)

// Per client IP limits on /api/auth; the rate is in requests per second.
const (
	authRateLimit   = 5
	authRateBurst   = 20
	authRateExpires = 3 * time.Minute
)

// Deps carries everything the router wires into handlers and middleware.
type Deps struct {
	Log zerolog.Logger

	Auth     ports.AuthService
	Contacts ports.ContactService
	Messages ports.MessageService
	WhatsApp ports.WhatsAppService

	Tokens middleware.TokenVerifier
	Users  middleware.UserLoader

	Readiness *handlers.ReadinessHandler
	// Registry receives the HTTP metrics and backs /metrics. Nil means the
	// process-wide default registry.
	Registry *prometheus.Registry
	// ExposeResetToken echoes password-reset tokens in the API response.
	ExposeResetToken bool
	// DisableRateLimit turns off the per-IP limiter on /api/auth.
	DisableRateLimit bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = handler.NewHTTPErrorHandler(d.Log)

	var (
		registerer prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer   prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if d.Registry != nil {
		registerer, gatherer = d.Registry, d.Registry
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "wa_integration",
		Registerer: registerer,
	}))

	infrahttp.RegisterOperational(e, d.Readiness, gatherer)

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(d.Auth, d.ExposeResetToken)
	contactHandler := handler.NewContactHandler(d.Contacts)
	messageHandler := handler.NewMessageHandler(d.Messages)
	whatsappHandler := handler.NewWhatsAppHandler(d.WhatsApp)

	authenticated := middleware.Auth(d.Tokens, d.Users)
	staff := middleware.RBAC(domain.RoleAdmin, domain.RoleManager)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	api := e.Group("/api")

	// --- Auth routes ---
	auth := api.Group("/auth")
	if !d.DisableRateLimit {
		auth.Use(echomiddleware.RateLimiter(echomiddleware.NewRateLimiterMemoryStoreWithConfig(
			echomiddleware.RateLimiterMemoryStoreConfig{Rate: authRateLimit, Burst: authRateBurst, ExpiresIn: authRateExpires},
		)))
	}
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password/:token", authHandler.ResetPassword)
	auth.GET("/profile", authHandler.GetProfile, authenticated)
	auth.PUT("/profile", authHandler.UpdateProfile, authenticated)

	// --- Contact routes ---
	contacts := api.Group("/contacts", authenticated)
	contacts.GET("", contactHandler.List)
	contacts.GET("/:id", contactHandler.Get)
	contacts.GET("/:id/messages", contactHandler.Messages)
	contacts.POST("", contactHandler.Create, staff)
	contacts.PUT("/:id", contactHandler.Update, staff)
	contacts.DELETE("/:id", contactHandler.Delete, adminOnly)

	// --- Message routes ---
	messages := api.Group("/messages", authenticated)
	messages.GET("", messageHandler.List)
	messages.GET("/stats", messageHandler.Stats)
	messages.GET("/:id", messageHandler.Get)
	messages.POST("", messageHandler.Send)
	messages.PUT("/:id/status", messageHandler.UpdateStatus, staff)
	messages.DELETE("/:id", messageHandler.Delete, staff)

	// --- WhatsApp routes ---
	whatsapp := api.Group("/whatsapp", authenticated)
	whatsapp.GET("/status", whatsappHandler.Status)
	whatsapp.POST("/send", whatsappHandler.Send)
	whatsapp.POST("/send-bulk", whatsappHandler.SendBulk, staff)
	whatsapp.POST("/restart", whatsappHandler.Restart, adminOnly)

	return e
}
