package dispatch

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/requests"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/auditlog"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/security"
)

type DispatchHandler struct {
	Service *DispatchService
}

func NewHandler(service *DispatchService) *DispatchHandler {
	return &DispatchHandler{Service: service}
}

func RegisterRoutes(router *gin.RouterGroup, repo *repository.Repository, audit *auditlog.Auditlog) {
	service := NewService(repo, NewDispatchRepository(repo), requests.NewRequestRepository(repo), audit)
	handler := NewHandler(service)

	router.POST("/dispatches", security.Authorize("admin"), handler.CreateDispatch)
	router.GET("/dispatches", security.Authorize("admin"), handler.GetDispatchList)
	router.GET("/dispatches/:id", security.Authorize("admin"), handler.GetDispatch)
	router.PATCH("/dispatches/:id/status", security.Authorize("admin"), handler.FinishDispatch)
}

func (h *DispatchHandler) CreateDispatch(c *gin.Context) {
	var in CreateDispatchInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	d, err := h.Service.CreateDispatch(in)
	if err != nil {
		switch {
		case errors.Is(err, requests.ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find request", "code": "REQUEST_NOT_FOUND"})
		case errors.Is(err, ErrRequestNotDispatchable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Request is not in progress"})
		case errors.Is(err, ErrVehicleUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": "Vehicle is not available"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create dispatch", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, d)
}

func (h *DispatchHandler) GetDispatchList(c *gin.Context) {
	status := c.DefaultQuery("status", "")

	dispatches, err := h.Service.ListDispatches(status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dispatches", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dispatches)
}

func (h *DispatchHandler) GetDispatch(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dispatch ID", "details": err.Error()})
		return
	}

	d, err := h.Service.GetDispatch(id)
	if err != nil {
		if errors.Is(err, ErrDispatchNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find dispatch", "code": "DISPATCH_NOT_FOUND"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch dispatch", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, d)
}

func (h *DispatchHandler) FinishDispatch(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dispatch ID", "details": err.Error()})
		return
	}

	var in struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	d, err := h.Service.Finish(id, in.Status)
	if err != nil {
		switch {
		case errors.Is(err, ErrDispatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find dispatch", "code": "DISPATCH_NOT_FOUND"})
		case errors.Is(err, ErrInvalidDispatchStatus), errors.Is(err, ErrDispatchFinished):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update dispatch", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, d)
}
