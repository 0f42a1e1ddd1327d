package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coverbridge/coverbridge/internal/api/dto"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/service"
)

type ClientHandler struct {
	service service.ClientService
	log     *logger.Logger
}

func NewClientHandler(service service.ClientService, log *logger.Logger) *ClientHandler {
	return &ClientHandler{service: service, log: log}
}

// CreateClient handles POST /clients.
func (h *ClientHandler) CreateClient(c *gin.Context) {
	var req dto.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreateClient(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create client", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetClient handles GET /clients/:id.
func (h *ClientHandler) GetClient(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Client ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetClient(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get client", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateClient handles PATCH /clients/:id.
func (h *ClientHandler) UpdateClient(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Client ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdateClient(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Failed to update client", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeactivateClient handles POST /clients/:id/deactivate.
func (h *ClientHandler) DeactivateClient(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Client ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.DeactivateClient(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to deactivate client", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
