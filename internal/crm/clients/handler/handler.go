package handler

import (
	"net/http"
	"strconv"

	"gettupp-server/internal/apierrors"
	"gettupp-server/internal/crm/clients/processor"
	"gettupp-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.ClientProcessor
	logger    *observability.Logger
}

func New(processor processor.ClientProcessor, logger *observability.Logger) Handler {
	return Handler{processor: processor, logger: logger}
}

type CreateClientRequest struct {
	Name      string  `json:"name" binding:"required"`
	Email     string  `json:"email" binding:"required,email"`
	Phone     *string `json:"phone"`
	Instagram *string `json:"instagram"`
	Tier      string  `json:"tier" binding:"required"`
}

func (h *Handler) HandleCreateClient(c *gin.Context) {
	ctx := c.Request.Context()

	var req CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	client, err := h.processor.CreateClient(ctx, processor.CreateClientRequest{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Instagram: req.Instagram,
		Tier:      req.Tier,
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

func (h *Handler) HandleGetClient(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid client id"))
		return
	}

	detail, err := h.processor.GetClient(ctx, clientID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (h *Handler) HandleListClients(c *gin.Context) {
	ctx := c.Request.Context()

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	clients, err := h.processor.ListClients(ctx, status, intQuery(c, "limit", 50), intQuery(c, "offset", 0))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

type SetClientStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) HandleSetClientStatus(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid client id"))
		return
	}

	var req SetClientStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	client, err := h.processor.SetClientStatus(ctx, clientID, req.Status)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, client)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if v, ok := c.GetQuery(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
