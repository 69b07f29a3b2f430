package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ucode/ucode_go_report_builder_service/config"
	"ucode/ucode_go_report_builder_service/pkg/logger"
	"ucode/ucode_go_report_builder_service/storage"
)

type Handler struct {
	cfg  config.Config
	log  logger.LoggerI
	strg storage.StorageI
}

// SetUpRouter wires the HTTP surface over the storage layer.
func SetUpRouter(cfg config.Config, log logger.LoggerI, strg storage.StorageI) *gin.Engine {
	h := &Handler{
		cfg:  cfg,
		log:  log,
		strg: strg,
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", h.Health)

	v1 := router.Group("/v1")
	{
		v1.POST("/queries/build", h.BuildQuery)
		v1.POST("/queries/run", h.RunReport)

		v1.POST("/saved-queries", h.CreateSavedQuery)
		v1.GET("/saved-queries", h.GetAllSavedQueries)
		v1.GET("/saved-queries/:id", h.GetSavedQuery)
		v1.PUT("/saved-queries/:id", h.UpdateSavedQuery)
		v1.DELETE("/saved-queries/:id", h.DeleteSavedQuery)
		v1.POST("/saved-queries/:id/run", h.RunSavedQuery)

		v1.POST("/exports/excel", h.ExportExcel)
		v1.POST("/exports/csv", h.ExportCSV)

		v1.POST("/projects/register", h.RegisterProject)
		v1.POST("/projects/deregister", h.DeregisterProject)
	}

	return router
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": h.cfg.ServiceName,
		"version": h.cfg.Version,
	})
}

// handleError translates grpc status codes coming from the storage layer
// into HTTP responses.
func (h *Handler) handleError(c *gin.Context, err error, message string) {
	h.log.Error(message, logger.Error(err))

	st, ok := status.FromError(err)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(httpStatus(st.Code()), gin.H{"error": st.Message()})
}

func httpStatus(code codes.Code) int {
	switch code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.NotFound:
		return http.StatusNotFound
	case codes.AlreadyExists:
		return http.StatusConflict
	case codes.PermissionDenied:
		return http.StatusForbidden
	case codes.Unauthenticated:
		return http.StatusUnauthorized
	case codes.FailedPrecondition:
		return http.StatusPreconditionFailed
	case codes.OutOfRange:
		return http.StatusBadRequest
	case codes.DeadlineExceeded:
		return http.StatusGatewayTimeout
	case codes.Unavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
