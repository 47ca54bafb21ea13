package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "ocrdesk/docs"
	"ocrdesk/internal/config"
	"ocrdesk/internal/handler"
	"ocrdesk/internal/middleware"
	"ocrdesk/internal/service"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	authSvc service.AuthService,
	authH *handler.AuthHandler,
	ocrH *handler.OCRHandler,
	healthH *handler.HealthHandler,
	allowedOrigins []string,
	maxUploadBytes int64,
	authRateLimit config.RateLimitConfig,
) *gin.Engine {
	r := gin.New()
	if maxUploadBytes > 0 {
		r.MaxMultipartMemory = maxUploadBytes
	}

	r.Use(middleware.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.CORS(allowedOrigins))

	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(authRateLimit.RequestsPerMinute, authRateLimit.Burst))
	auth.POST("/register", authH.Register)
	auth.POST("/login", authH.Login)
	auth.POST("/refresh", authH.RefreshToken)

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(authSvc))

	ocr := protected.Group("/ocr")
	ocr.POST("/process", ocrH.Process)
	ocr.GET("/history", ocrH.History)
	ocr.GET("/history/export", ocrH.Export)
	ocr.GET("/history/:id", ocrH.Get)
	ocr.DELETE("/history/:id", ocrH.Delete)

	return r
}
