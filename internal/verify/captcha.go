// Package verify checks human-verification tokens from the public intake form.
package verify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/liorkima5-coder/CityPulseAI/internal/config"
)

// ErrTokenRejected is returned when the provider refuses the token.
var ErrTokenRejected = errors.New("verify: token rejected")

// Verifier validates an opaque human-verification token. An empty token is
// rejected by the intake pipeline before Verify is ever called.
type Verifier interface {
	Verify(ctx context.Context, token string) error
}

type siteverifyResponse struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes"`
}

// RecaptchaVerifier validates tokens against the reCAPTCHA siteverify API.
// With no secret configured it accepts any non-empty token, which keeps
// local development working without provider credentials.
type RecaptchaVerifier struct {
	client *resty.Client
	cfg    config.CaptchaConfig
}

// NewRecaptchaVerifier builds the verifier.
func NewRecaptchaVerifier(cfg config.CaptchaConfig) *RecaptchaVerifier {
	client := resty.New().SetTimeout(10 * time.Second)
	return &RecaptchaVerifier{client: client, cfg: cfg}
}

// Verify checks the token with the provider.
func (v *RecaptchaVerifier) Verify(ctx context.Context, token string) error {
	if v.cfg.Secret == "" {
		return nil
	}

	var result siteverifyResponse
	resp, err := v.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"secret":   v.cfg.Secret,
			"response": token,
		}).
		SetResult(&result).
		Post(v.cfg.VerifyURL)
	if err != nil {
		return fmt.Errorf("siteverify: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("siteverify: provider returned %d", resp.StatusCode())
	}
	if !result.Success {
		return ErrTokenRejected
	}
	return nil
}
