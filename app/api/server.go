package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/lysyi3m/portfolio-api/app/contact"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler, corsOrigins string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	registerValidators()

	r := gin.New()

	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())
	r.Use(corsMiddleware(parseOrigins(corsOrigins)))

	setupRoutes(r, handler)

	return r
}

func setupRoutes(r *gin.Engine, handler *Handler) {
	r.GET("/health", handler.GetHealth)

	api := r.Group("/api")
	{
		api.GET("/", handler.GetServiceInfo)

		blogGroup := api.Group("/blog")
		blogGroup.GET("/posts", handler.GetPosts)
		blogGroup.GET("/posts/:id", handler.GetPostByID)
		blogGroup.GET("/health", handler.GetBlogHealth)

		contactGroup := api.Group("/contact")
		contactGroup.POST("", handler.SubmitContact)
		contactGroup.GET("/messages", handler.ListMessages)
		contactGroup.PUT("/messages/:id/status", handler.UpdateMessageStatus)
	}

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
}

// corsMiddleware allows any origin when the list contains "*"; otherwise the
// request origin is echoed back only when listed.
func corsMiddleware(origins []string) gin.HandlerFunc {
	allowAll := slices.Contains(origins, "*")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		switch {
		case allowAll:
			c.Header("Access-Control-Allow-Origin", "*")
		case origin != "" && slices.Contains(origins, origin):
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Vary", "Origin")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func parseOrigins(value string) []string {
	var origins []string
	for _, origin := range strings.Split(value, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}

// registerValidators adds the contact form tags to gin's validator engine.
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		slog.Warn("Binding validator is not go-playground/validator, custom tags unavailable")
		return
	}

	err := v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return contact.ValidEmail(fl.Field().String())
	})
	if err != nil {
		slog.Error("Failed to register validator", "tag", "contactemail", "error", err)
	}
}
