package turnstile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"gettupp-server/internal/observability"
)

const verifyURL = "https://challenges.cloudflare.com/turnstile/v0/siteverify"

var (
	ErrInvalidToken     = errors.New("invalid captcha token")
	ErrVerificationFail = errors.New("captcha verification failed")
)

// verifyResponse is the siteverify API response body.
type verifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes,omitempty"`
	Hostname   string   `json:"hostname,omitempty"`
}

// Client verifies Cloudflare Turnstile tokens from the public intake form.
// With an empty secret key the client reports itself disabled and intake
// skips captcha entirely (local development).
type Client struct {
	secretKey  string
	httpClient *http.Client
	logger     *observability.Logger
}

func NewClient(secretKey string, logger *observability.Logger) *Client {
	return &Client{
		secretKey: secretKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Verify validates a Turnstile token against the siteverify endpoint.
func (c *Client) Verify(ctx context.Context, token string, remoteIP string) error {
	if token == "" {
		return ErrInvalidToken
	}

	form := url.Values{}
	form.Set("secret", c.secretKey)
	form.Set("response", token)
	if remoteIP != "" {
		form.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, verifyURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create verification request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error(ctx, "failed to call turnstile siteverify", err)
		return fmt.Errorf("failed to verify captcha: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn(ctx, fmt.Sprintf("turnstile siteverify returned status %d", resp.StatusCode))
		return fmt.Errorf("captcha verification returned status %d", resp.StatusCode)
	}

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		c.logger.Error(ctx, "failed to parse turnstile response", err)
		return fmt.Errorf("failed to parse verification response: %w", err)
	}

	if !body.Success {
		c.logger.Info(ctx, fmt.Sprintf("turnstile rejected token: %v", body.ErrorCodes))
		return ErrVerificationFail
	}
	return nil
}

// IsEnabled reports whether a secret key is configured.
func (c *Client) IsEnabled() bool {
	return c.secretKey != ""
}
