package jobs

import (
	"errors"
	"net/http"

	"github.com/axis-meridian-dev/Luber-development/internal/auth"
	"github.com/axis-meridian-dev/Luber-development/internal/middleware"
	"github.com/axis-meridian-dev/Luber-development/internal/pricing"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// --------------------------------------------------
// POST /api/jobs
// --------------------------------------------------
func (h *Handler) CreateJob(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var input CreateJobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	job, clientSecret, err := h.service.CreateJob(c.Request.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingFields),
			errors.Is(err, ErrInvalidOilType),
			errors.Is(err, pricing.ErrVehicleNotServiceable):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, ErrVehicleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		default:
			// Payment processor or database failures are not the
			// caller's fault.
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"job":           job,
		"client_secret": clientSecret,
	})
}

// --------------------------------------------------
// GET /api/jobs/:id
// --------------------------------------------------
func (h *Handler) GetJob(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	job, err := h.service.GetJob(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrJobNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch job"})
		return
	}
	c.JSON(http.StatusOK, job)
}

// --------------------------------------------------
// POST /api/jobs/:id/accept
// --------------------------------------------------
func (h *Handler) AcceptJob(c *gin.Context) {
	identity, ok := identityFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	job, err := h.service.AcceptJob(c.Request.Context(), identity, c.Param("id"))
	if err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// --------------------------------------------------
// POST /api/jobs/:id/start
// --------------------------------------------------
func (h *Handler) StartJob(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	job, err := h.service.StartJob(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// --------------------------------------------------
// POST /api/jobs/:id/complete
// --------------------------------------------------
func (h *Handler) CompleteJob(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	job, err := h.service.CompleteJob(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// --------------------------------------------------
// POST /api/jobs/:id/cancel
// --------------------------------------------------
func (h *Handler) CancelJob(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	// Reason is optional; ignore body parse errors on an empty body.
	_ = c.ShouldBindJSON(&body)

	job, err := h.service.CancelJob(c.Request.Context(), userID, c.Param("id"), body.Reason)
	if err != nil {
		h.writeLifecycleError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

func (h *Handler) writeLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrJobNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
	case errors.Is(err, ErrNotTechnician), errors.Is(err, ErrNotAssigned):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ErrJobNotPending), errors.Is(err, ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "request failed"})
	}
}

func identityFromContext(c *gin.Context) (auth.Identity, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		return auth.Identity{}, false
	}
	role, ok := middleware.UserRole(c)
	if !ok {
		return auth.Identity{}, false
	}
	return auth.Identity{UserID: userID, Role: role}, true
}
