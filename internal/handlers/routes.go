package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/collin-smith/CdkApp/internal/middleware"
	"github.com/collin-smith/CdkApp/pkg/lambda"
)

// RouterConfig holds the handlers served by the local HTTP server
type RouterConfig struct {
	Simple        lambda.Handler
	S3            lambda.Handler
	WriteDynamoDB lambda.Handler
	ReadDynamoDB  lambda.Handler
	Registry      *prometheus.Registry
	Environment   string
}

// SetupRoutes mounts the four functions under the same POST paths the API
// Gateway stage exposes.
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "healthy",
			"service":     "cdkapp",
			"environment": config.Environment,
		})
	})

	if config.Registry != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(config.Registry, promhttp.HandlerOpts{})))
	}

	router.POST("/simple", Proxy(config.Simple))
	router.POST("/s3", Proxy(config.S3))
	router.POST("/writedynamodb", Proxy(config.WriteDynamoDB))
	router.POST("/readdynamodb", Proxy(config.ReadDynamoDB))
}

// Proxy wraps the HTTP request in a proxy event and writes the handler's
// response back, the way API Gateway does for the deployed functions.
func Proxy(h lambda.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, middleware.ErrorResponse{
				Error:     "Invalid request body",
				Message:   err.Error(),
				RequestID: c.GetString(middleware.RequestIDKey),
			})
			return
		}

		headers := make(map[string]string, len(c.Request.Header))
		for name := range c.Request.Header {
			headers[name] = c.Request.Header.Get(name)
		}

		raw, err := lambda.NewEnvelope(&lambda.Request{
			Method:    c.Request.Method,
			Path:      c.Request.URL.Path,
			Headers:   headers,
			Body:      body,
			RequestID: c.GetString(middleware.RequestIDKey),
		})
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, middleware.ErrorResponse{
				Error:   "Failed to build request envelope",
				Message: err.Error(),
			})
			return
		}

		resp := h.Handle(c.Request.Context(), raw)
		for name, value := range resp.Headers {
			c.Header(name, value)
		}
		c.Data(resp.StatusCode, resp.Headers["Content-Type"], resp.Body)
	}
}
