package handler

import (
	"io"
	"net/http"

	"gettupp-server/internal/apierrors"
	"gettupp-server/internal/crm/invoices/processor"
	"gettupp-server/internal/observability"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v79/webhook"
)

type Handler struct {
	processor processor.InvoiceProcessor
	logger    *observability.Logger
}

func New(processor processor.InvoiceProcessor, logger *observability.Logger) Handler {
	return Handler{processor: processor, logger: logger}
}

type GenerateInvoiceRequest struct {
	ClientID string `json:"client_id" binding:"required,uuid"`
	// Tier to bill. Empty means the client's stored tier; a different tier
	// invoices an upgrade or downgrade.
	Tier string `json:"tier"`
}

func (h *Handler) HandleGenerateInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	var req GenerateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	clientID, err := uuid.Parse(req.ClientID)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid client id"))
		return
	}

	generated, err := h.processor.GenerateInvoice(ctx, clientID, req.Tier)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusCreated, generated)
}

func (h *Handler) HandleGetInvoice(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid invoice id"))
		return
	}

	invoice, err := h.processor.GetInvoice(ctx, invoiceID)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) HandleListClientInvoices(c *gin.Context) {
	ctx := c.Request.Context()

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid client id"))
		return
	}

	invoices, err := h.processor.ListInvoicesByClient(ctx, clientID)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"invoices": invoices})
}

func (h *Handler) HandleMarkInvoicePaid(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid invoice id"))
		return
	}

	invoice, err := h.processor.MarkInvoicePaid(ctx, invoiceID)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusOK, invoice)
}

type SetInvoiceStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) HandleSetInvoiceStatus(c *gin.Context) {
	ctx := c.Request.Context()

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid invoice id"))
		return
	}

	var req SetInvoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.RespondWithValidationError(c, err)
		return
	}

	invoice, err := h.processor.SetInvoiceStatus(ctx, invoiceID, req.Status)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) HandleWebhook(c *gin.Context) {
	ctx := c.Request.Context()

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("failed to read request body"))
		return
	}

	signatureHeader := c.GetHeader("Stripe-Signature")
	if signatureHeader == "" {
		apierrors.RespondWithError(c, apierrors.BadRequest("missing Stripe-Signature header"))
		return
	}

	event, err := webhook.ConstructEvent(payload, signatureHeader, h.processor.WebhookSecret())
	if err != nil {
		apierrors.RespondWithError(c, apierrors.BadRequest("invalid webhook signature"))
		return
	}

	if err := h.processor.HandleWebhook(ctx, event); err != nil {
		apierrors.RespondWithError(c, apierrors.MapError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "success"})
}
