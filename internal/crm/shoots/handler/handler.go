package handler

import (
	"net/http"
	"strconv"
	"time"

	"gettupp-server/internal/apierrors"
	"gettupp-server/internal/crm/shoots/processor"
	"gettupp-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.ShootProcessor
	logger    *observability.Logger
}

func New(processor processor.ShootProcessor, logger *observability.Logger) Handler {
	return Handler{processor: processor, logger: logger}
}

type CreateShootRequest struct {
	ClientID         string    `json:"client_id" binding:"required,uuid"`
	Type             string    `json:"type" binding:"required"`
	ScheduledAt      time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes  int       `json:"duration_minutes"`
	Location         *string   `json:"location"`
	PhotographerName *string   `json:"photographer_name"`
	Notes            *string   `json:"notes"`
}

func (h *Handler) HandleCreateShoot(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateShootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid client id"))
		return
	}

	shoot, err := h.processor.CreateShoot(ctx, processor.CreateShootRequest{
		ClientID:         clientID,
		Type:             req.Type,
		ScheduledAt:      req.ScheduledAt,
		DurationMinutes:  req.DurationMinutes,
		Location:         req.Location,
		PhotographerName: req.PhotographerName,
		Notes:            req.Notes,
	})
	if err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusCreated, shoot)
}

func (h *Handler) HandleGetShoot(c *gin.Context) {
	ctx := c.Request.Context()

	shootID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid shoot id"))
		return
	}

	shoot, err := h.processor.GetShoot(ctx, shootID)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusOK, shoot)
}

func (h *Handler) HandleListClientShoots(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid client id"))
		return
	}

	shoots, err := h.processor.ListShootsByClient(ctx, clientID)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"shoots": shoots})
}

func (h *Handler) HandleListUpcomingShoots(c *gin.Context) {
	ctx := c.Request.Context()

	limit := intQuery(c, "limit", 50)
	shoots, err := h.processor.ListUpcomingShoots(ctx, limit)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"shoots": shoots})
}

type AdvanceShootRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) HandleAdvanceShoot(c *gin.Context) {
	ctx := c.Request.Context()

	shootID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid shoot id"))
		return
	}

	var req AdvanceShootRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	shoot, err := h.processor.AdvanceShoot(ctx, shootID, req.Status)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusOK, shoot)
}

type SetDeliveredImagesRequest struct {
	DeliveredImages *int `json:"delivered_images" binding:"required"`
}

func (h *Handler) HandleSetDeliveredImages(c *gin.Context) {
	ctx := c.Request.Context()

	shootID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid shoot id"))
		return
	}

	var req SetDeliveredImagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	shoot, err := h.processor.SetDeliveredImages(ctx, shootID, *req.DeliveredImages)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusOK, shoot)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
