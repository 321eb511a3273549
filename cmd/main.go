package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"notable-notes/notable/config"
	"notable-notes/notable/database"
	"notable-notes/notable/middleware"
	"notable-notes/notable/routes"
	"notable-notes/notable/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	userService := services.NewUserService(authService)
	tagService := services.NewTagService()
	noteService := services.NewNoteService(tagService)
	trashService := services.NewTrashService()
	categoryService := services.NewCategoryService()

	// The AI client is built from config and injected; without an API
	// key every other endpoint keeps working and /generate-tags reports
	// the service as unavailable.
	aiService := services.NewAIService(cfg)
	if cfg.GoogleAPIKey == "" {
		log.Println("GOOGLE_API_KEY not set, tag suggestions will be unavailable")
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	// Unauthenticated surface: login, register and public share links.
	routes.RegisterAuthRoutes(router, db, authService, userService)
	routes.RegisterPublicNoteRoutes(router, db, noteService)

	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(authService))
	{
		routes.RegisterUserRoutes(api, db, userService)
		routes.RegisterNoteRoutes(api, db, noteService)
		routes.RegisterTrashRoutes(api, db, trashService)
		routes.RegisterCategoryRoutes(api, db, categoryService)
		routes.RegisterTagRoutes(api, db, tagService)
		routes.RegisterAIRoutes(api, aiService)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
