package dispatch

import (
	"errors"
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

func statusForError(err error) int {
	switch {
	case errors.Is(err, ErrUnauthorized):
		return http.StatusForbidden
	case errors.Is(err, ErrBookingNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrNoAvailableTechnicians), errors.Is(err, ErrInvalidTransition):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// --------------------------------------------------
// Manual assign
// --------------------------------------------------
func (h *Handler) Assign(c *gin.Context) {
	var req struct {
		BookingID    string `json:"booking_id"`
		TechnicianID string `json:"technician_id"`
		ShopID       string `json:"shop_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil ||
		req.BookingID == "" || req.TechnicianID == "" || req.ShopID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_id, technician_id and shop_id are required"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.service.AssignJob(c.Request.Context(), userID, req.BookingID, req.TechnicianID, req.ShopID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------------------------------------------------
// Reassign
// --------------------------------------------------
func (h *Handler) Reassign(c *gin.Context) {
	var req struct {
		BookingID       string `json:"booking_id"`
		NewTechnicianID string `json:"new_technician_id"`
		ShopID          string `json:"shop_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil ||
		req.BookingID == "" || req.NewTechnicianID == "" || req.ShopID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_id, new_technician_id and shop_id are required"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	if err := h.service.ReassignJob(c.Request.Context(), userID, req.BookingID, req.NewTechnicianID, req.ShopID); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --------------------------------------------------
// Auto-assign
// --------------------------------------------------
func (h *Handler) AutoAssign(c *gin.Context) {
	var req struct {
		BookingID string `json:"booking_id"`
		ShopID    string `json:"shop_id"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.BookingID == "" || req.ShopID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "booking_id and shop_id are required"})
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
		return
	}

	technicianID, err := h.service.AutoAssignJob(c.Request.Context(), userID, req.BookingID, req.ShopID)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "technician_id": technicianID})
}
