package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ucode/ucode_go_report_builder_service/models"
	"ucode/ucode_go_report_builder_service/pkg/jaeger"
)

func (h *Handler) RegisterProject(c *gin.Context) {
	var req models.RegisterProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ProjectId == "" || req.DatabaseURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "project_id and database_url are required"})
		return
	}

	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.RegisterProject", req.ProjectId)
	defer span.Finish()

	if err := h.strg.Project().Register(ctx, &req); err != nil {
		h.handleError(c, err, "error registering project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registered"})
}

func (h *Handler) DeregisterProject(c *gin.Context) {
	var req models.DeregisterProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.DeregisterProject", req.ProjectId)
	defer span.Finish()

	if err := h.strg.Project().Deregister(ctx, &req); err != nil {
		h.handleError(c, err, "error deregistering project")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deregistered"})
}
