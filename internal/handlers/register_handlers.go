package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kahawapay/kahawapay_backend/cmd/docs"
	portssvc "github.com/kahawapay/kahawapay_backend/internal/core/ports/services"
	"github.com/kahawapay/kahawapay_backend/internal/middleware"
	"github.com/kahawapay/kahawapay_backend/internal/platform/config"
	"github.com/kahawapay/kahawapay_backend/internal/utils"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	RegisterCustomValidators()

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	// Register public authentication routes
	registerAuthRoutes(r, services)

	// Public v1 surface: guest flow, conversion calculator, supported currencies
	setupPublicV1Routes(r, services)

	// Authenticated v1 surface
	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// RegisterCustomValidators wires domain validators into gin's binding engine.
func RegisterCustomValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("msisdn", func(fl validator.FieldLevel) bool {
			return utils.IsValidMSISDN(fl.Field().String())
		})
	}
}

// setupPublicV1Routes configures the unauthenticated part of /api/v1. Guests
// never hold a bearer token; their transactions are addressed by guest key.
func setupPublicV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	RegisterGuestRoutes(v1, services.Transaction)
	registerConversionRoutes(v1, services.Conversion)
	registerCurrencyRoutes(v1, services.ExchangeRate)
}

// setupAPIV1Routes configures the authenticated /api/v1 group and delegates
// to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	// Apply AuthMiddleware to the entire authenticated v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerTransactionRoutes(v1, services.Transaction, services.User)
	registerWalletRoutes(v1, cfg, services.Transaction, services.User)

	// Settlement and settings require the admin role on top of auth
	admin := v1.Group("/admin", middleware.RequireAdmin())
	registerAdminTransactionRoutes(admin, services.Transaction)
	registerExchangeRateRoutes(admin, services.ExchangeRate)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
