package httpapi

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/shiftclock/internal/app"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Options struct {
	// AllowOrigins lists CORS origins; "*" or empty allows any.
	AllowOrigins []string
	Logger       *slog.Logger
}

// NewRouter builds the gin engine serving the storefront API.
func NewRouter(svc *app.Services, opts Options) *gin.Engine {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(logger), cors.New(corsConfig(opts.AllowOrigins)))

	h := NewHandler(svc)
	r.GET("/healthz", h.Health)

	api := r.Group("/api")
	{
		api.GET("/data", h.Data)
		api.POST("/login", h.Login)
		api.POST("/clock", h.Clock)
		api.GET("/sessions", h.ActiveSessions)
		api.GET("/sessions/:userId", h.Session)
		api.GET("/products/:locale", h.Products)
		api.POST("/sale", h.Sale)
		api.GET("/sales", h.Sales)
		api.GET("/shifts", h.Shifts)
		api.GET("/logs", h.Logs)
	}

	admin := api.Group("/admin")
	{
		admin.POST("/users", h.SaveUser)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.POST("/products", h.ReplaceProducts)
		admin.DELETE("/shifts/:id", h.DeleteShift)
		admin.POST("/clear-history", h.ClearHistory)
	}
	return r
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept"},
		MaxAge:       12 * time.Hour,
	}
	wildcard := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	if wildcard {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if len(c.Errors) > 0 {
			logger.Error("http_request", append(attrs, "error", c.Errors.String())...)
			return
		}
		logger.Info("http_request", attrs...)
	}
}
