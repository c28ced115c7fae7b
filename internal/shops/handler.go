package shops

import (
	"net/http"

	"github.com/axis-meridian-dev/Luber-development/internal/middleware"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// Add technician to roster
// --------------------------------------------------
func (h *Handler) AddTechnician(c *gin.Context) {
	var req struct {
		ProfileID     string `json:"profile_id"`
		LicenseNumber string `json:"license_number"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	tech, err := h.service.AddTechnician(c.Request.Context(), ownerID, req.ProfileID, req.LicenseNumber)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tech)
}

// --------------------------------------------------
// List roster
// --------------------------------------------------
func (h *Handler) ListTechnicians(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	technicians, err := h.service.ListTechnicians(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch technicians"})
		return
	}

	c.JSON(http.StatusOK, technicians)
}

// --------------------------------------------------
// Remove (deactivate) technician
// --------------------------------------------------
func (h *Handler) RemoveTechnician(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.RemoveTechnician(c.Request.Context(), ownerID, c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"deactivated": true})
}

// --------------------------------------------------
// Toggle availability
// --------------------------------------------------
func (h *Handler) SetAvailability(c *gin.Context) {
	var req struct {
		IsAvailable *bool `json:"is_available"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.IsAvailable == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_available is required"})
		return
	}

	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.SetAvailability(c.Request.Context(), ownerID, c.Param("id"), *req.IsAvailable); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_available": *req.IsAvailable})
}
