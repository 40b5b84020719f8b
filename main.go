package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/manojbhatti001/Blood-Hero-sub000/cmd"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/database"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/geo"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/middleware"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/routes"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/auditlog"
)

func init() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Load .env file, but don't overwrite system environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: No .env file found, falling back to system environment variables.")
	}

	// Execute migration CMD
	cmd.Execute(ctx)
}

func main() {
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set")
	}

	db, err := database.NewPostgresConnection(dbURL)
	if err != nil {
		log.Fatalf("Error: %v", err)
	}
	defer db.Close()

	log.Println("Connected to the database successfully!")

	repo := repository.NewRepository(db)
	auditLog := auditlog.NewAuditLog(repo)
	geoService := geo.NewGeoService()

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.CORSMiddleware())

	routes.RegisterPublicRoutes(router, repo, geoService)
	routes.RegisterProtectedRoutes(router, repo, auditLog)
	routes.RegisterUtilityRoutes(router)

	if err := router.Run(os.Getenv("APP_HOST")); err != nil {
		panic(err)
	}
}
