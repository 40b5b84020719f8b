package locations

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/manojbhatti001/Blood-Hero-sub000/internal/repository"
)

type RegionHandler struct {
	Repository RegionRepository
}

func NewHandler(r RegionRepository) *RegionHandler {
	return &RegionHandler{Repository: r}
}

func RegisterRoutes(router *gin.Engine, repo *repository.Repository) {
	handler := NewHandler(NewRegionRepository(repo))
	router.GET("/location/states", handler.GetStates)
}

func (h *RegionHandler) GetStates(c *gin.Context) {
	states, err := h.Repository.GetStates()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch states", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, states)
}
