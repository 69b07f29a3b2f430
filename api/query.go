package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ucode/ucode_go_report_builder_service/models"
	"ucode/ucode_go_report_builder_service/pkg/jaeger"
	"ucode/ucode_go_report_builder_service/pkg/logger"
)

// BuildQuery compiles a declarative report query into parameterized SQL
// without executing it.
func (h *Handler) BuildQuery(c *gin.Context) {
	var req models.RunReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.BuildQuery", req)
	defer span.Finish()

	resp, err := h.strg.Report().BuildQuery(ctx, &req)
	if err != nil {
		h.handleError(c, err, "error building query")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RunReport builds and executes a declarative query against the project's
// database.
func (h *Handler) RunReport(c *gin.Context) {
	var req models.RunReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.RunReport", req)
	defer span.Finish()

	resp, err := h.strg.Report().Run(ctx, &req)
	if err != nil {
		h.handleError(c, err, "error running report")
		return
	}

	h.log.Info("report executed",
		logger.String("project_id", req.ProjectId),
		logger.Int("row_count", resp.Count))

	c.JSON(http.StatusOK, resp)
}

// RunSavedQuery loads a stored definition and executes it.
func (h *Handler) RunSavedQuery(c *gin.Context) {
	req := models.SavedQueryPrimaryKey{
		Id:        c.Param("id"),
		ProjectId: c.Query("project-id"),
	}

	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.RunSavedQuery", req)
	defer span.Finish()

	saved, err := h.strg.SavedQuery().GetByID(ctx, &req)
	if err != nil {
		h.handleError(c, err, "error getting saved query")
		return
	}

	resp, err := h.strg.Report().Run(ctx, &models.RunReportRequest{
		ProjectId: saved.ProjectId,
		Query:     saved.Definition,
	})
	if err != nil {
		h.handleError(c, err, "error running saved query")
		return
	}

	c.JSON(http.StatusOK, resp)
}
