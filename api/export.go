package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ucode/ucode_go_report_builder_service/models"
	"ucode/ucode_go_report_builder_service/pkg/jaeger"
	"ucode/ucode_go_report_builder_service/pkg/logger"
)

func (h *Handler) ExportExcel(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.ExportExcel", req)
	defer span.Finish()

	resp, err := h.strg.Export().ExportExcel(ctx, &req)
	if err != nil {
		h.handleError(c, err, "error exporting to excel")
		return
	}

	h.log.Info("excel export completed",
		logger.String("project_id", req.ProjectId),
		logger.String("file_name", resp.FileName))

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) ExportCSV(c *gin.Context) {
	var req models.ExportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.ExportCSV", req)
	defer span.Finish()

	resp, err := h.strg.Export().ExportCSV(ctx, &req)
	if err != nil {
		h.handleError(c, err, "error exporting to csv")
		return
	}

	c.JSON(http.StatusOK, resp)
}
