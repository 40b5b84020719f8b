package vehicles

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/security"
)

type VehiclesHandler struct {
	Repository VehicleRepository
}

func NewHandler(r VehicleRepository) *VehiclesHandler {
	return &VehiclesHandler{Repository: r}
}

func RegisterRoutes(router *gin.RouterGroup, repo *repository.Repository) {
	handler := NewHandler(NewVehicleRepository(repo))

	router.POST("/vehicles", security.Authorize("admin"), handler.CreateVehicle)
	router.GET("/vehicles", security.Authorize("admin"), handler.GetVehicleList)
	router.GET("/vehicles/:id", security.Authorize("admin"), handler.GetVehicle)
	router.PATCH("/vehicles/:id", security.Authorize("admin"), handler.UpdateVehicle)
	router.DELETE("/vehicles/:id", security.Authorize("admin"), handler.DeleteVehicle)
}

type createVehicleRequest struct {
	RegistrationNo string  `json:"registrationNo" binding:"required"`
	VehicleType    string  `json:"vehicleType" binding:"required,oneof=ambulance van bike"`
	DriverName     *string `json:"driverName"`
	DriverPhone    *string `json:"driverPhone"`
}

func (h *VehiclesHandler) CreateVehicle(c *gin.Context) {
	var req createVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	vehicle := &models.Vehicle{
		RegistrationNo: req.RegistrationNo,
		VehicleType:    req.VehicleType,
		Status:         models.VehicleStatusAvailable,
		DriverName:     req.DriverName,
		DriverPhone:    req.DriverPhone,
	}

	if err := h.Repository.PersistVehicle(vehicle); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (h *VehiclesHandler) GetVehicleList(c *gin.Context) {
	status := c.DefaultQuery("status", "")

	vehicles, err := h.Repository.GetVehicles(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

func (h *VehiclesHandler) GetVehicle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID", "details": err.Error()})
		return
	}

	vehicle, err := h.Repository.GetVehicle(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle", "details": err.Error()})
		return
	}
	if vehicle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find vehicle", "code": "VEHICLE_NOT_FOUND"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *VehiclesHandler) UpdateVehicle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID", "details": err.Error()})
		return
	}

	var req UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if req.Status != nil {
		switch *req.Status {
		case models.VehicleStatusAvailable, models.VehicleStatusOnDispatch, models.VehicleStatusMaintenance:
		default:
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle status"})
			return
		}
	}

	vehicle, err := h.Repository.UpdateVehicle(id, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle", "details": err.Error()})
		return
	}
	if vehicle == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find vehicle", "code": "VEHICLE_NOT_FOUND"})
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

func (h *VehiclesHandler) DeleteVehicle(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vehicle ID", "details": err.Error()})
		return
	}

	if err := h.Repository.DeleteVehicle(id); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}
