package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cast"

	"ucode/ucode_go_report_builder_service/models"
	"ucode/ucode_go_report_builder_service/pkg/jaeger"
)

func (h *Handler) CreateSavedQuery(c *gin.Context) {
	var req models.SavedQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.CreateSavedQuery", req)
	defer span.Finish()

	resp, err := h.strg.SavedQuery().Create(ctx, &req)
	if err != nil {
		h.handleError(c, err, "error creating saved query")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *Handler) GetSavedQuery(c *gin.Context) {
	req := models.SavedQueryPrimaryKey{
		Id:        c.Param("id"),
		ProjectId: c.Query("project-id"),
	}

	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.GetSavedQuery", req)
	defer span.Finish()

	resp, err := h.strg.SavedQuery().GetByID(ctx, &req)
	if err != nil {
		h.handleError(c, err, "error getting saved query")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) GetAllSavedQueries(c *gin.Context) {
	req := models.GetAllSavedQueriesRequest{
		ProjectId: c.Query("project-id"),
		Search:    c.Query("search"),
		Limit:     cast.ToUint64(c.DefaultQuery("limit", "10")),
		Offset:    cast.ToUint64(c.DefaultQuery("offset", "0")),
	}

	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.GetAllSavedQueries", req)
	defer span.Finish()

	resp, err := h.strg.SavedQuery().GetAll(ctx, &req)
	if err != nil {
		h.handleError(c, err, "error listing saved queries")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) UpdateSavedQuery(c *gin.Context) {
	var req models.SavedQuery
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.Id = c.Param("id")

	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.UpdateSavedQuery", req)
	defer span.Finish()

	resp, err := h.strg.SavedQuery().Update(ctx, &req)
	if err != nil {
		h.handleError(c, err, "error updating saved query")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *Handler) DeleteSavedQuery(c *gin.Context) {
	req := models.SavedQueryPrimaryKey{
		Id:        c.Param("id"),
		ProjectId: c.Query("project-id"),
	}

	span, ctx := jaeger.StartSpanFromContext(c.Request.Context(), "api.DeleteSavedQuery", req)
	defer span.Finish()

	if err := h.strg.SavedQuery().Delete(ctx, &req); err != nil {
		h.handleError(c, err, "error deleting saved query")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "deleted"})
}
