package apierrors

import (
	"errors"

	authproc "gettupp-server/internal/auth/processor"
	clientsproc "gettupp-server/internal/crm/clients/processor"
	invoicesproc "gettupp-server/internal/crm/invoices/processor"
	leadsproc "gettupp-server/internal/crm/leads/processor"
	shootsproc "gettupp-server/internal/crm/shoots/processor"
	reportsproc "gettupp-server/internal/reports/processor"
	"gettupp-server/internal/store"
	"gettupp-server/internal/tiers"
)

// MapError translates domain sentinel errors into API errors. Anything
// unrecognized becomes a sanitized 500.
func MapError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	switch {
	// auth
	case errors.Is(err, authproc.ErrAdminNotFound),
		errors.Is(err, authproc.ErrIncorrectPassword),
		errors.Is(err, authproc.ErrFailedLogin):
		return Unauthorized("invalid email or password")
	case errors.Is(err, authproc.ErrExpiredToken),
		errors.Is(err, authproc.ErrInvalidJWTToken),
		errors.Is(err, authproc.ErrParseJWTToken):
		return Unauthorized("invalid or expired token")

	// not found
	case errors.Is(err, leadsproc.ErrLeadNotFound):
		return NotFound(CodeNotFound, "lead not found")
	case errors.Is(err, clientsproc.ErrClientNotFound),
		errors.Is(err, shootsproc.ErrClientNotFound),
		errors.Is(err, invoicesproc.ErrClientNotFound):
		return NotFound(CodeNotFound, "client not found")
	case errors.Is(err, shootsproc.ErrShootNotFound):
		return NotFound(CodeNotFound, "shoot not found")
	case errors.Is(err, invoicesproc.ErrInvoiceNotFound):
		return NotFound(CodeNotFound, "invoice not found")
	case errors.Is(err, reportsproc.ErrUnknownReport):
		return NotFound(CodeNotFound, "report not found")
	case errors.Is(err, store.ErrNotFound):
		return NotFound(CodeNotFound, "record not found")

	// invalid input
	case errors.Is(err, leadsproc.ErrInvalidLeadStatus),
		errors.Is(err, clientsproc.ErrInvalidClientStatus):
		return BadRequestWithCode(CodeInvalidStatus, "invalid status value")
	case errors.Is(err, leadsproc.ErrInvalidTier),
		errors.Is(err, clientsproc.ErrInvalidTier),
		errors.Is(err, invoicesproc.ErrInvalidTier),
		errors.Is(err, tiers.ErrUnknownTier):
		return BadRequestWithCode(CodeInvalidTier, "unknown tier")
	case errors.Is(err, shootsproc.ErrInvalidShootType):
		return BadRequestWithCode(CodeInvalidInput, "invalid shoot type")
	case errors.Is(err, shootsproc.ErrInvariantViolation):
		return BadRequestWithCode(CodeInvariantViolation, "delivered images cannot exceed total images")

	// captcha
	case errors.Is(err, leadsproc.ErrCaptchaRequired):
		return BadRequestWithCode(CodeCaptchaRequired, "captcha token is required")
	case errors.Is(err, leadsproc.ErrCaptchaFailed):
		return BadRequestWithCode(CodeCaptchaFailed, "captcha verification failed")

	// lifecycle conflicts
	case errors.Is(err, shootsproc.ErrInvalidTransition),
		errors.Is(err, invoicesproc.ErrInvalidInvoiceTransition):
		return Conflict(CodeInvalidTransition, "status transition not allowed")
	case errors.Is(err, invoicesproc.ErrInvoiceAlreadyPaid):
		return Conflict(CodeInvalidTransition, "invoice is already paid")
	case errors.Is(err, shootsproc.ErrClientNotActive):
		return Conflict(CodeInvalidStatus, "client is not active")

	// external collaborators
	case errors.Is(err, invoicesproc.ErrFailedToCreateCheckout),
		errors.Is(err, invoicesproc.ErrFailedToCreateCustomer):
		return ServiceUnavailable(CodeExternalService, "payment provider is unavailable", err)

	default:
		return InternalError(err)
	}
}
