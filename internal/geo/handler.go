package geo

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
)

type GeoHandler struct {
	Service *GeoService
}

func NewHandler(service *GeoService) *GeoHandler {
	return &GeoHandler{Service: service}
}

func RegisterRoutes(router *gin.RouterGroup, service *GeoService) {
	handler := NewHandler(service)

	router.GET("/geo/directions", handler.GetDirections)
	router.GET("/geo/reverse-geocode", handler.ReverseGeocode)
}

func (h *GeoHandler) GetDirections(c *gin.Context) {
	origin, ok := parsePoint(c, "origin_lat", "origin_lng")
	if !ok {
		return
	}
	destination, ok := parsePoint(c, "dest_lat", "dest_lng")
	if !ok {
		return
	}

	mode := c.DefaultQuery("mode", "driving")
	if !IsValidMode(mode) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid travel mode"})
		return
	}

	ctx := c.Request.Context()

	// the address lookup runs alongside the route lookup; neither waits on
	// the other and a failed address never blocks the route
	addressCh := make(chan string, 1)
	go func() {
		addressCh <- h.Service.ResolveAddress(ctx, destination)
	}()

	result, err := h.Service.GetDirections(ctx, origin, destination, mode)
	if err != nil {
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Directions lookup cancelled"})
		return
	}

	if address := <-addressCh; address != "" {
		result.DestinationAddress = address
	}

	c.JSON(http.StatusOK, result)
}

func (h *GeoHandler) ReverseGeocode(c *gin.Context) {
	point, ok := parsePoint(c, "lat", "lng")
	if !ok {
		return
	}

	address := h.Service.ResolveAddress(c.Request.Context(), point)

	c.JSON(http.StatusOK, gin.H{"address": address})
}

func parsePoint(c *gin.Context, latParam, lngParam string) (models.Coordinates, bool) {
	lat, err := strconv.ParseFloat(c.Query(latParam), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing " + latParam})
		return models.Coordinates{}, false
	}

	lng, err := strconv.ParseFloat(c.Query(lngParam), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid or missing " + lngParam})
		return models.Coordinates{}, false
	}

	point := models.Coordinates{Lat: lat, Lng: lng}
	if !point.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of range"})
		return models.Coordinates{}, false
	}

	return point, true
}
