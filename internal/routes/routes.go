package routes

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/dispatch"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/donors"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/geo"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/hospitals"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/integrations/googlesheets"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/locations"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/middleware"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/requests"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/users"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/vehicles"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/auditlog"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/security"
)

func RegisterPublicRoutes(router *gin.Engine, repo *repository.Repository, geoService *geo.GeoService) {
	authHandler := security.NewAuthHandler(repo)
	authHandler.RegisterRoutes(router)
	locations.RegisterRoutes(router, repo)

	// geo routes proxy external providers, bound their total time
	geoRoutes := router.Group("", middleware.TimeoutMiddleware(20*time.Second))
	geo.RegisterRoutes(geoRoutes, geoService)
}

func RegisterProtectedRoutes(router *gin.Engine, repo *repository.Repository, auditLog *auditlog.Auditlog) {
	protectedRoutes := router.Group("")
	protectedRoutes.Use(security.JWTMiddleware())

	requests.RegisterRoutes(protectedRoutes, repo, auditLog)
	users.RegisterRoutes(protectedRoutes, repo)
	donors.RegisterRoutes(protectedRoutes, repo)
	hospitals.RegisterRoutes(protectedRoutes, repo)
	vehicles.RegisterRoutes(protectedRoutes, repo)
	dispatch.RegisterRoutes(protectedRoutes, repo, auditLog)

	driveHandler, err := googlesheets.NewDriveScheduleHandler()
	if err != nil {
		log.Printf("Warning: drive roster integration disabled: %v", err)
	} else {
		driveHandler.RegisterRoutes(protectedRoutes)
	}
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
