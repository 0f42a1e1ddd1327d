package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coverbridge/coverbridge/internal/api/dto"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/service"
)

type InsurerHandler struct {
	service service.InsurerService
	log     *logger.Logger
}

func NewInsurerHandler(service service.InsurerService, log *logger.Logger) *InsurerHandler {
	return &InsurerHandler{service: service, log: log}
}

// CreateInsurer handles POST /insurers.
func (h *InsurerHandler) CreateInsurer(c *gin.Context) {
	var req dto.CreateInsurerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateInsurer(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create insurer", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetInsurer handles GET /insurers/:id.
func (h *InsurerHandler) GetInsurer(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Insurer ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetInsurer(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get insurer", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateInsurer handles PATCH /insurers/:id.
func (h *InsurerHandler) UpdateInsurer(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Insurer ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.UpdateInsurerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateInsurer(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Failed to update insurer", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeactivateInsurer handles POST /insurers/:id/deactivate.
func (h *InsurerHandler) DeactivateInsurer(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Insurer ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.DeactivateInsurer(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to deactivate insurer", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
