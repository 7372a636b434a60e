package handler

import (
	"net/http"

	"gettupp-server/internal/apierrors"
	"gettupp-server/internal/observability"
	"gettupp-server/internal/reports/processor"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	processor processor.ReportsProcessor
	logger    *observability.Logger
}

func New(processor processor.ReportsProcessor, logger *observability.Logger) Handler {
	return Handler{processor: processor, logger: logger}
}

func (h *Handler) HandleListReports(c *gin.Context) {
	ctx := c.Request.Context()
	c.JSON(http.StatusOK, gin.H{"reports": h.processor.GenerateAll(ctx)})
}

func (h *Handler) HandleGetReport(c *gin.Context) {
	ctx := c.Request.Context()

	report, err := h.processor.Generate(ctx, c.Param("source"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusOK, report)
}
