package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coverbridge/coverbridge/internal/api/dto"
	ierr "github.com/coverbridge/coverbridge/internal/errors"
	"github.com/coverbridge/coverbridge/internal/logger"
	"github.com/coverbridge/coverbridge/internal/service"
	"github.com/coverbridge/coverbridge/internal/types"
)

type PolicyHandler struct {
	service service.PolicyService
	log     *logger.Logger
}

func NewPolicyHandler(service service.PolicyService, log *logger.Logger) *PolicyHandler {
	return &PolicyHandler{service: service, log: log}
}

// CreatePolicy handles POST /policies.
func (h *PolicyHandler) CreatePolicy(c *gin.Context) {
	var req dto.CreatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.CreatePolicy(c.Request.Context(), req)
	if err != nil {
		h.log.Error("Failed to create policy", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetPolicy handles GET /policies/:id.
func (h *PolicyHandler) GetPolicy(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Policy ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetPolicy(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get policy", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListPolicies handles GET /policies.
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	filter := types.NewPolicyFilter()
	if ids, ok := c.GetQueryArray("client_id"); ok {
		filter.ClientIDs = ids
	}
	if ids, ok := c.GetQueryArray("insurer_id"); ok {
		filter.InsurerIDs = ids
	}
	if statuses, ok := c.GetQueryArray("status"); ok {
		for _, s := range statuses {
			filter.Statuses = append(filter.Statuses, types.PolicyStatus(s))
		}
	}
	if limit := c.Query("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil {
			c.Error(ierr.NewError("invalid limit").
				WithHint("Limit must be an integer").
				Mark(ierr.ErrValidation))
			return
		}
		filter.QueryFilter.Limit = &n
	}
	if offset := c.Query("offset"); offset != "" {
		n, err := strconv.Atoi(offset)
		if err != nil {
			c.Error(ierr.NewError("invalid offset").
				WithHint("Offset must be an integer").
				Mark(ierr.ErrValidation))
			return
		}
		filter.QueryFilter.Offset = &n
	}

	resp, err := h.service.ListPolicies(c.Request.Context(), filter)
	if err != nil {
		h.log.Error("Failed to list policies", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdatePolicy handles PATCH /policies/:id.
func (h *PolicyHandler) UpdatePolicy(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Policy ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.UpdatePolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.UpdatePolicy(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Failed to update policy", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// TransitionPolicy handles POST /policies/:id/transition.
func (h *PolicyHandler) TransitionPolicy(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Policy ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	var req dto.TransitionPolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Error("Failed to bind JSON", "error", err)
		c.Error(ierr.WithError(err).
			WithHint("Invalid request format").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.TransitionPolicy(c.Request.Context(), id, req)
	if err != nil {
		h.log.Error("Failed to transition policy", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeletePolicy handles DELETE /policies/:id.
func (h *PolicyHandler) DeletePolicy(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Policy ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.DeletePolicy(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to delete policy", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetPolicyHistory handles GET /policies/:id/history.
func (h *PolicyHandler) GetPolicyHistory(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.Error(ierr.NewError("id is required").
			WithHint("Policy ID is required").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.service.GetPolicyHistory(c.Request.Context(), id)
	if err != nil {
		h.log.Error("Failed to get policy history", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
