package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/kanbanboard/kanban-api/database"
	"github.com/kanbanboard/kanban-api/handlers"
	"github.com/kanbanboard/kanban-api/services"
	"github.com/rs/cors"
)

func main() {
	// Load environment variables from .env file
	if err := services.LoadEnv(".env"); err != nil {
		fmt.Printf("Error loading .env file: %v\n", err)
		return
	}

	// Initialize database
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./kanban.db"
	}
	db, err := database.InitDB(dbPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store := database.NewStore(db)
	if err := store.SeedDefaults(context.Background()); err != nil {
		log.Fatalf("Failed to seed default columns: %v", err)
	}

	// Initialize services
	authService := services.NewAuthService()
	accessService := services.NewAccessService(store)

	// Initialize handlers
	authMiddleware := handlers.NewAuthMiddleware(authService)
	authHandler := handlers.NewAuthHandler(authService, store)
	projectHandler := handlers.NewProjectHandler(store)
	columnHandler := handlers.NewColumnHandler(store, accessService)
	taskHandler := handlers.NewTaskHandler(store, accessService)
	taskLogHandler := handlers.NewTaskLogHandler(store, accessService)
	memberHandler := handlers.NewMemberHandler(store, accessService)

	r := handlers.NewRouter(
		authMiddleware,
		authHandler,
		projectHandler,
		columnHandler,
		taskHandler,
		taskLogHandler,
		memberHandler,
	)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // In production, change to your domain
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	})

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	// Start server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      c.Handler(r),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	log.Printf("Server starting on port %s", port)
	log.Fatal(server.ListenAndServe())
}
