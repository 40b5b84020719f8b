package hospitals

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/security"
)

type HospitalsHandler struct {
	Repository HospitalRepository
}

func NewHandler(r HospitalRepository) *HospitalsHandler {
	return &HospitalsHandler{Repository: r}
}

func RegisterRoutes(router *gin.RouterGroup, repo *repository.Repository) {
	handler := NewHandler(NewHospitalRepository(repo))

	router.POST("/hospitals", security.Authorize("admin"), handler.CreateHospital)
	router.GET("/hospitals", handler.GetHospitalList)
	router.GET("/hospitals/:id", handler.GetHospital)
	router.PATCH("/hospitals/:id", security.Authorize("admin"), handler.UpdateHospital)
	router.DELETE("/hospitals/:id", security.Authorize("admin"), handler.DeleteHospital)
}

type createHospitalRequest struct {
	Name      string  `json:"name" binding:"required"`
	Address   string  `json:"address" binding:"required"`
	City      string  `json:"city" binding:"required"`
	State     string  `json:"state" binding:"required"`
	Phone     *string `json:"phone"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (h *HospitalsHandler) CreateHospital(c *gin.Context) {
	var req createHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	point := models.Coordinates{Lat: req.Latitude, Lng: req.Longitude}
	if !point.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of range"})
		return
	}

	hospital := &models.Hospital{
		Name:      req.Name,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		Phone:     req.Phone,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	if err := h.Repository.PersistHospital(hospital); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create hospital", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, hospital)
}

func (h *HospitalsHandler) GetHospitalList(c *gin.Context) {
	city := c.DefaultQuery("city", "")
	state := c.DefaultQuery("state", "")

	hospitals, err := h.Repository.GetHospitals(city, state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hospitals", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, hospitals)
}

func (h *HospitalsHandler) GetHospital(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hospital ID", "details": err.Error()})
		return
	}

	hospital, err := h.Repository.GetHospital(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch hospital", "details": err.Error()})
		return
	}
	if hospital == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find hospital", "code": "HOSPITAL_NOT_FOUND"})
		return
	}

	c.JSON(http.StatusOK, hospital)
}

func (h *HospitalsHandler) UpdateHospital(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hospital ID", "details": err.Error()})
		return
	}

	var req UpdateHospitalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if req.Latitude != nil || req.Longitude != nil {
		if req.Latitude == nil || req.Longitude == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Latitude and longitude must be updated together"})
			return
		}
		point := models.Coordinates{Lat: *req.Latitude, Lng: *req.Longitude}
		if !point.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of range"})
			return
		}
	}

	hospital, err := h.Repository.UpdateHospital(id, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update hospital", "details": err.Error()})
		return
	}
	if hospital == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find hospital", "code": "HOSPITAL_NOT_FOUND"})
		return
	}

	c.JSON(http.StatusOK, hospital)
}

func (h *HospitalsHandler) DeleteHospital(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hospital ID", "details": err.Error()})
		return
	}

	if err := h.Repository.DeleteHospital(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete hospital", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hospital deleted successfully"})
}
