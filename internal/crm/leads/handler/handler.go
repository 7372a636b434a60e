package handler

import (
	"net/http"
	"strconv"

	"gettupp-server/internal/apierrors"
	"gettupp-server/internal/crm/leads/processor"
	"gettupp-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	processor processor.LeadProcessor
	logger    *observability.Logger
}

func New(processor processor.LeadProcessor, logger *observability.Logger) Handler {
	return Handler{processor: processor, logger: logger}
}

type SubmitLeadRequest struct {
	VenueName     string  `json:"venue_name" binding:"required"`
	Instagram     string  `json:"instagram" binding:"required"`
	ContactName   string  `json:"contact_name" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         *string `json:"phone"`
	EventType     *string `json:"event_type"`
	AttendeeCount *int    `json:"attendee_count"`
	Budget        *string `json:"budget"`
	Message       *string `json:"message"`
	CaptchaToken  *string `json:"captcha_token"`
}

// HandleSubmitLead is the public intake form endpoint.
func (h *Handler) HandleSubmitLead(c *gin.Context) {
	ctx := c.Request.Context()

	var req SubmitLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	result, err := h.processor.SubmitLead(ctx, processor.SubmitLeadRequest{
		VenueName:     req.VenueName,
		Instagram:     req.Instagram,
		ContactName:   req.ContactName,
		Email:         req.Email,
		Phone:         req.Phone,
		EventType:     req.EventType,
		AttendeeCount: req.AttendeeCount,
		Budget:        req.Budget,
		Message:       req.Message,
		CaptchaToken:  req.CaptchaToken,
		RemoteIP:      c.ClientIP(),
	})
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *Handler) HandleGetLead(c *gin.Context) {
	ctx := c.Request.Context()

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid lead id"))
		return
	}

	lead, err := h.processor.GetLead(ctx, leadID)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

func (h *Handler) HandleListLeads(c *gin.Context) {
	ctx := c.Request.Context()

	var status *string
	if s := c.Query("status"); s != "" {
		status = &s
	}

	leads, err := h.processor.ListLeads(ctx, status, intQuery(c, "limit", 50), intQuery(c, "offset", 0))
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

type SetLeadStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) HandleSetLeadStatus(c *gin.Context) {
	ctx := c.Request.Context()

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid lead id"))
		return
	}

	var req SetLeadStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	lead, err := h.processor.SetLeadStatus(ctx, leadID, req.Status)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

type SetLeadScoreRequest struct {
	Score int `json:"score"`
}

func (h *Handler) HandleSetLeadScore(c *gin.Context) {
	ctx := c.Request.Context()

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid lead id"))
		return
	}

	var req SetLeadScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	lead, err := h.processor.SetLeadScore(ctx, leadID, req.Score)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, lead)
}

type ConvertLeadRequest struct {
	Tier string `json:"tier" binding:"required"`
}

func (h *Handler) HandleConvertLead(c *gin.Context) {
	ctx := c.Request.Context()

	leadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid lead id"))
		return
	}

	var req ConvertLeadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	adminID := c.MustGet("Admin-ID")
	ctx = observability.WithFields(ctx, observability.Field{Key: "admin_id", Value: adminID})

	client, err := h.processor.ConvertLead(ctx, leadID, req.Tier)
	if err != nil {
		apierrors.RespondWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, client)
}

func intQuery(c *gin.Context, key string, fallback int) int {
	if v, ok := c.GetQuery(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
