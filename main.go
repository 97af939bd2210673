package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"main/handler"
	"main/middleware"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"NOVEL_PATH",
		"JWT_SECRET_KEY",
		"JWT_REFRESH_SECRET",
		"JWT_EXPIRATION_TIME",
		"REFRESH_TOKEN_EXPIRATION_TIME",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitValidator()

	if os.Getenv("GO_ENV") != "test" {
		utils.InitJWT()
		// Connect once at startup; repositories share this client for the
		// life of the process.
		utils.InitMongoClient()
	}
}

func setupRouter() *gin.Engine {
	router := gin.Default()

	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))

	// Repositories over the shared Mongo client
	novelsRepo := repository.GetNovelsRepo(utils.MongoClient)
	userRepo := repository.GetUserRepo(utils.MongoClient)
	commentsRepo := repository.GetCommentsRepo(utils.MongoClient)
	library := repository.NewLibrary(os.Getenv("NOVEL_PATH"))

	// Optional Redis cache for the read-only catalog
	var catalogCache *services.CatalogCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err := services.NewCatalogCache(redisURL, utils.GetEnvAsDuration("CACHE_TTL", 10*time.Minute))
		if err != nil {
			log.Printf("Catalog cache disabled: %v", err)
		} else {
			catalogCache = cache
		}
	}

	// Services
	novelsService := &usecase.NovelsService{
		Store:   novelsRepo,
		Library: library,
		Cache:   catalogCache,
	}
	userService := &usecase.UserService{
		UsersRepo: userRepo,
	}
	commentsService := &usecase.CommentsService{
		CommentsRepo: commentsRepo,
		Sanitizer:    services.NewCommentSanitizer(),
	}
	healthHandler := handler.NewHealthHandler(utils.MongoClient)

	// Catalog
	api := router.Group("/api")
	{
		api.GET("/novels", func(c *gin.Context) {
			handler.SearchNovelsHandler(c, novelsService)
		})
		api.GET("/query", func(c *gin.Context) {
			handler.SearchNovelsHandler(c, novelsService)
		})
		api.GET("/random", func(c *gin.Context) {
			handler.RandomNovelHandler(c, novelsService)
		})
		api.GET("/:novelName", func(c *gin.Context) {
			handler.GetNovelHandler(c, novelsService)
		})
		api.GET("/:novelName/cover", func(c *gin.Context) {
			handler.CoverHandler(c, novelsService)
		})
		api.GET("/:novelName/chapterlist", func(c *gin.Context) {
			handler.ChapterListHandler(c, novelsService)
		})
		api.GET("/:novelName/:chapterNumber", func(c *gin.Context) {
			handler.ChapterHandler(c, novelsService)
		})
	}

	// Accounts
	auth := router.Group("/auth")
	{
		auth.POST("/register", func(c *gin.Context) {
			handler.RegistrationHandler(c, userService)
		})
		auth.POST("/login", func(c *gin.Context) {
			handler.LoginHandler(c, userService)
		})
		auth.POST("/refreshToken", func(c *gin.Context) {
			handler.RefreshTokenHandler(c, userService)
		})
	}

	// Comments; reads are public, writes require a valid token
	comments := router.Group("/comments")
	{
		comments.GET("", func(c *gin.Context) {
			handler.ListCommentsHandler(c, commentsService)
		})
		comments.POST("", middleware.AuthMiddleware(), func(c *gin.Context) {
			handler.CreateCommentHandler(c, commentsService)
		})
		comments.DELETE("/:commentId", middleware.AuthMiddleware(), func(c *gin.Context) {
			handler.DeleteCommentHandler(c, commentsService)
		})
	}

	// Operational endpoints
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", healthHandler.Health)

	return router
}

func main() {
	router := setupRouter()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
