package main

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"studiodesk/internal/config"
	"studiodesk/internal/database"
	"studiodesk/internal/modules/auth"
	"studiodesk/internal/modules/booking"
	"studiodesk/internal/modules/dashboard"
	"studiodesk/internal/modules/expense"
	"studiodesk/internal/modules/finance"
	"studiodesk/internal/modules/pricing"
	jwtsvc "studiodesk/internal/pkg/jwt"
	"studiodesk/internal/pkg/logger"
	"studiodesk/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.LogPretty)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connect failed")
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}

	store := repository.NewStore(db)
	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	hub := dashboard.NewHub(log)
	defer hub.Close()

	authService := auth.NewService(store, j)
	authHandler := auth.NewHandler(authService)

	bookingService := booking.NewService(store, store, hub, log, cfg.BookingCodePrefix)
	bookingHandler := booking.NewHandler(bookingService)

	financeService := finance.NewService(store)
	financeHandler := finance.NewHandler(financeService)

	dashboardService := dashboard.NewService(store)
	dashboardHandler := dashboard.NewHandler(dashboardService, hub, log)

	expenseService := expense.NewService(store)
	expenseHandler := expense.NewHandler(expenseService)

	pricingService := pricing.NewService(store)
	pricingHandler := pricing.NewHandler(pricingService)

	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(authMiddleware(j))
		{
			bookingHandler.RegisterRoutes(protected)
			financeHandler.RegisterRoutes(protected)
			dashboardHandler.RegisterRoutes(protected)
			expenseHandler.RegisterRoutes(protected)
			pricingHandler.RegisterRoutes(protected)
		}
	}

	log.Info().Str("addr", cfg.HTTPAddr).Str("env", cfg.AppEnv).Msg("starting api")
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func authMiddleware(jwt *jwtsvc.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if h == "" {
			// Browsers cannot set headers on websocket dials; the live
			// dashboard passes its token as a query parameter instead.
			h = "Bearer " + c.Query("token")
		}

		if !strings.HasPrefix(h, "Bearer ") {
			unauthorized(c, "Invalid Authorization header")
			return
		}

		tokenStr := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
		if tokenStr == "" {
			unauthorized(c, "Empty token")
			return
		}

		claims, err := jwt.ValidateToken(tokenStr)
		if err != nil {
			unauthorized(c, "Invalid token")
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("role", claims.Role)

		c.Next()
	}
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "UNAUTHORIZED",
			"message": message,
		},
	})
}
