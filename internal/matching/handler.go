package matching

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// List technicians near the requested location
// --------------------------------------------------
func (h *Handler) AvailableTechnicians(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lat"})
		return
	}

	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid lng"})
		return
	}

	params := Params{Latitude: lat, Longitude: lng}

	if raw := c.Query("scheduled_time"); raw != "" {
		scheduled, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "scheduled_time must be RFC3339"})
			return
		}
		params.ScheduledTime = scheduled
	}

	candidates, err := h.service.FindAvailableTechnicians(c.Request.Context(), params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch technicians"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"technicians": candidates})
}
