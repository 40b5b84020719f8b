package donors

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/models"
	"github.com/manojbhatti001/Blood-Hero-sub000/pkg/security"
)

type DonorsHandler struct {
	Repository DonorRepository
}

func NewHandler(r DonorRepository) *DonorsHandler {
	return &DonorsHandler{Repository: r}
}

func RegisterRoutes(router *gin.RouterGroup, repo *repository.Repository) {
	handler := NewHandler(NewDonorRepository(repo))

	router.POST("/donors", security.Authorize("donor"), handler.RegisterDonor)
	router.GET("/donors", security.Authorize("requester"), handler.GetDonorList)
	router.GET("/donors/:id", security.Authorize("requester"), handler.GetDonor)
	router.PATCH("/donors/:id", security.Authorize("donor"), handler.UpdateDonor)
	router.DELETE("/donors/:id", security.Authorize("admin"), handler.DeleteDonor)
}

type createDonorRequest struct {
	Name      string `json:"name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Phone     string `json:"phone" binding:"required"`
	BloodType string `json:"bloodType" binding:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	City      string `json:"city" binding:"required"`
	State     string `json:"state" binding:"required"`
}

func (h *DonorsHandler) RegisterDonor(c *gin.Context) {
	var req createDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	donor := &models.Donor{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		BloodType: req.BloodType,
		City:      req.City,
		State:     req.State,
		Available: true,
	}

	if raw, err := security.GetUserIDFromToken(c); err == nil {
		if userID, err := strconv.Atoi(raw); err == nil {
			donor.UserID = &userID
		}
	}

	if err := h.Repository.PersistDonor(donor); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to register donor",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, donor)
}

func (h *DonorsHandler) GetDonorList(c *gin.Context) {
	bloodType := c.DefaultQuery("blood_type", "")
	city := c.DefaultQuery("city", "")
	state := c.DefaultQuery("state", "")
	onlyAvailable := c.DefaultQuery("available", "") == "true"

	if bloodType != "" && !models.IsValidBloodType(bloodType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid blood type filter"})
		return
	}

	donors, err := h.Repository.GetDonors(bloodType, city, state, onlyAvailable)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch donors", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, donors)
}

func (h *DonorsHandler) GetDonor(c *gin.Context) {
	donorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donor ID", "details": err.Error()})
		return
	}

	donor, err := h.Repository.GetDonor(donorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch donor", "details": err.Error()})
		return
	}
	if donor == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find donor", "code": "DONOR_NOT_FOUND"})
		return
	}

	c.JSON(http.StatusOK, donor)
}

type updateDonorRequest struct {
	Phone        *string    `json:"phone"`
	City         *string    `json:"city"`
	State        *string    `json:"state"`
	Available    *bool      `json:"available"`
	LastDonation *time.Time `json:"lastDonation"`
}

func (h *DonorsHandler) UpdateDonor(c *gin.Context) {
	donorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donor ID", "details": err.Error()})
		return
	}

	var req updateDonorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "details": err.Error()})
		return
	}

	donor, err := h.Repository.GetDonor(donorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch donor", "details": err.Error()})
		return
	}
	if donor == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Unable to find donor", "code": "DONOR_NOT_FOUND"})
		return
	}

	// donors may edit only their own profile, admins anything
	if !h.isAllowed(c, donor) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden", "details": "You are not allowed to modify this donor"})
		return
	}

	changes := &models.DonorChanges{
		Phone:        req.Phone,
		City:         req.City,
		State:        req.State,
		Available:    req.Available,
		LastDonation: req.LastDonation,
	}

	if !changes.HasChanges() {
		c.JSON(http.StatusOK, donor)
		return
	}

	if err := h.Repository.UpdateDonor(donorID, changes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update donor", "details": err.Error()})
		return
	}

	updated, err := h.Repository.GetDonor(donorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get updated donor", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, updated)
}

func (h *DonorsHandler) DeleteDonor(c *gin.Context) {
	donorID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid donor ID", "details": err.Error()})
		return
	}

	if err := h.Repository.DeleteDonor(donorID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete donor", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Donor deleted successfully"})
}

func (h *DonorsHandler) isAllowed(c *gin.Context, donor *models.Donor) bool {
	if role, exists := c.Get("role"); exists && role == "admin" {
		return true
	}

	raw, err := security.GetUserIDFromToken(c)
	if err != nil {
		return false
	}
	userID, err := strconv.Atoi(raw)
	if err != nil {
		return false
	}

	return donor.UserID != nil && *donor.UserID == userID
}
