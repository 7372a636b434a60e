package apierrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	invoicesproc "gettupp-server/internal/crm/invoices/processor"
	leadsproc "gettupp-server/internal/crm/leads/processor"
	shootsproc "gettupp-server/internal/crm/shoots/processor"
	"gettupp-server/internal/store"
	"gettupp-server/internal/tiers"

	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"lead not found", leadsproc.ErrLeadNotFound, http.StatusNotFound, CodeNotFound},
		{"wrapped lead not found", fmt.Errorf("lookup: %w", leadsproc.ErrLeadNotFound), http.StatusNotFound, CodeNotFound},
		{"unknown tier", tiers.ErrUnknownTier, http.StatusBadRequest, CodeInvalidTier},
		{"invalid shoot transition", shootsproc.ErrInvalidTransition, http.StatusConflict, CodeInvalidTransition},
		{"invoice already paid", invoicesproc.ErrInvoiceAlreadyPaid, http.StatusConflict, CodeInvalidTransition},
		{"client not active", shootsproc.ErrClientNotActive, http.StatusConflict, CodeInvalidStatus},
		{"delivered over total", shootsproc.ErrInvariantViolation, http.StatusBadRequest, CodeInvariantViolation},
		{"captcha required", leadsproc.ErrCaptchaRequired, http.StatusBadRequest, CodeCaptchaRequired},
		{"stripe down", invoicesproc.ErrFailedToCreateCheckout, http.StatusServiceUnavailable, CodeExternalService},
		{"bare store miss", store.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apiErr := MapError(tt.err)
			assert.Equal(t, tt.wantStatus, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.Code)
		})
	}
}

func TestMapError_PassesThroughAPIError(t *testing.T) {
	original := Forbidden("no access")

	mapped := MapError(fmt.Errorf("handler: %w", original))
	assert.Same(t, original, mapped)
}

func TestInternalError_HidesCause(t *testing.T) {
	cause := errors.New("pq: connection refused")
	apiErr := InternalError(cause)

	assert.NotContains(t, apiErr.Message, "connection refused")
	assert.ErrorIs(t, apiErr, cause)
}
