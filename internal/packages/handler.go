package packages

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
	case errors.Is(err, ErrPackageNotFound):
		return http.StatusNotFound
	default:
		return http.StatusBadRequest
	}
}

// --------------------------------------------------
// Create package
// --------------------------------------------------
func (h *Handler) Create(c *gin.Context) {
	var input PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pkg, err := h.service.CreatePackage(c.Request.Context(), ownerID, input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, pkg)
}

// --------------------------------------------------
// List packages
// --------------------------------------------------
func (h *Handler) List(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pkgs, err := h.service.ListPackages(c.Request.Context(), ownerID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch packages"})
		return
	}

	c.JSON(http.StatusOK, pkgs)
}

// --------------------------------------------------
// Update package
// --------------------------------------------------
func (h *Handler) Update(c *gin.Context) {
	var input PackageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	pkg, err := h.service.UpdatePackage(c.Request.Context(), ownerID, c.Param("id"), input)
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, pkg)
}

// --------------------------------------------------
// Delete package (soft when referenced)
// --------------------------------------------------
func (h *Handler) Delete(c *gin.Context) {
	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	outcome, err := h.service.DeletePackage(c.Request.Context(), ownerID, c.Param("id"))
	if err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	if outcome == Deactivated {
		c.JSON(http.StatusOK, gin.H{
			"outcome": outcome,
			"message": "package deactivated (cannot delete because it's used in bookings)",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"outcome": outcome})
}

// --------------------------------------------------
// Toggle active
// --------------------------------------------------
func (h *Handler) ToggleActive(c *gin.Context) {
	var req struct {
		IsActive *bool `json:"is_active"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.IsActive == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "is_active is required"})
		return
	}

	ownerID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.service.TogglePackageActive(c.Request.Context(), ownerID, c.Param("id"), *req.IsActive); err != nil {
		c.JSON(statusForError(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"is_active": *req.IsActive})
}
