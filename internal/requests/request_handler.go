package requests

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/locations"
	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/auditlog"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/security"
)

type RequestsHandler struct {
	Service *Service
	Audit   *auditlog.Auditlog
}

func NewHandler(service *Service, audit *auditlog.Auditlog) *RequestsHandler {
	return &RequestsHandler{Service: service, Audit: audit}
}

func RegisterRoutes(router *gin.RouterGroup, repo *repository.Repository, audit *auditlog.Auditlog) {
	service := NewService(NewRequestRepository(repo), locations.NewRegionRepository(repo), audit)
	handler := NewHandler(service, audit)

	router.POST("/requests", security.Authorize("requester"), handler.CreateRequest)
	router.GET("/requests/me", handler.GetMyRequests)
	router.GET("/requests", security.Authorize("admin"), handler.GetRequests)
	router.GET("/requests/:id", handler.GetRequest)
	router.PATCH("/requests/:id/status", security.Authorize("admin"), handler.UpdateStatus)
	router.POST("/requests/:id/respond", security.Authorize("donor"), handler.Respond)
	router.GET("/requests/:id/log", security.Authorize("admin"), handler.GetRequestLog)
}

func (h *RequestsHandler) CreateRequest(c *gin.Context) {
	var in CreateRequestInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	requesterID, err := h.callerID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	req, err := h.Service.CreateRequest(requesterID, in)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCoordinates):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Coordinates out of range"})
		case errors.Is(err, ErrCityNotInState):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Selected city does not belong to the selected state"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create blood request", "details": err.Error()})
		}
		return
	}

	log.Println("Created blood request", req.Reference)
	c.JSON(http.StatusCreated, req)
}

func (h *RequestsHandler) GetMyRequests(c *gin.Context) {
	requesterID, err := h.callerID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	reqs, err := h.Service.ListMyRequests(requesterID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reqs)
}

func (h *RequestsHandler) GetRequests(c *gin.Context) {
	status := c.DefaultQuery("status", "")
	bloodType := c.DefaultQuery("blood_type", "")

	reqs, err := h.Service.ListRequests(status, bloodType)
	if err != nil {
		if errors.Is(err, ErrInvalidStatus) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status filter"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch requests", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, reqs)
}

func (h *RequestsHandler) GetRequest(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID", "details": err.Error()})
		return
	}

	req, err := h.Service.GetRequest(id)
	if err != nil {
		if errors.Is(err, ErrRequestNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find request", "code": "REQUEST_NOT_FOUND"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch request", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, req)
}

func (h *RequestsHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID", "details": err.Error()})
		return
	}

	var in UpdateStatusInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	if err := h.Service.ChangeStatus(id, in.Status); err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find request", "code": "REQUEST_NOT_FOUND"})
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidTransition):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update request status", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Request status updated successfully", "status": in.Status})
}

func (h *RequestsHandler) Respond(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID", "details": err.Error()})
		return
	}

	userID, err := h.callerID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		return
	}

	if err := h.Service.Respond(id, userID); err != nil {
		switch {
		case errors.Is(err, ErrRequestNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find request", "code": "REQUEST_NOT_FOUND"})
		case errors.Is(err, ErrDonorNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": "No donor profile for this account"})
		case errors.Is(err, ErrAlreadyResponded):
			c.JSON(http.StatusConflict, gin.H{"error": "You already responded to this request"})
		case errors.Is(err, ErrRequestNotRespondable):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Request no longer accepts responses"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register response", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Response registered successfully"})
}

func (h *RequestsHandler) GetRequestLog(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request ID", "details": err.Error()})
		return
	}

	entries, err := h.Audit.ResourceLog(id, "blood_request")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch audit log", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (h *RequestsHandler) callerID(c *gin.Context) (int, error) {
	raw, err := security.GetUserIDFromToken(c)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(raw)
}
