package main

import (
	"os"

	"molin/internal/db"
	"molin/internal/middleware"
	"molin/internal/response"
	"molin/internal/router"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("No .env file found, finding env vars from system")
	}

	if os.Getenv("APP_ENV") != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// Middleware
	r.Use(middleware.RequestLogger())
	r.Use(middleware.RateLimit())
	// panic 兜底：返回统一的 500 信封
	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error().Any("panic", recovered).Str("path", c.Request.URL.Path).Msg("Recovered from panic")
		env := response.Error(response.CodeInternalServerError, "Internal server error")
		c.AbortWithStatusJSON(env.Error.Status, env)
	}))

	// Routes
	router.RegisterRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Msgf("MoLin server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
