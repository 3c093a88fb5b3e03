// Package notify sends transactional confirmation emails through a hosted
// template-based provider.
package notify

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/liorkima5-coder/CityPulseAI/internal/config"
)

// Mailer sends a templated email with a flat set of named parameters.
type Mailer interface {
	Send(ctx context.Context, params map[string]string) error
}

// ErrNotConfigured is returned when no provider endpoint is set. Callers on
// the intake path treat it like any other send failure: logged, not surfaced.
var ErrNotConfigured = errors.New("notify: mailer not configured")

type templatePayload struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// TemplateMailer posts template sends to an EmailJS-compatible endpoint.
type TemplateMailer struct {
	client *resty.Client
	cfg    config.NotificationConfig
}

// NewTemplateMailer builds the mailer.
func NewTemplateMailer(cfg config.NotificationConfig) *TemplateMailer {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Content-Type", "application/json")
	return &TemplateMailer{client: client, cfg: cfg}
}

// Send posts the template parameters to the provider. Exactly one attempt is
// made per call; retry policy belongs to the caller, and intake makes none.
func (m *TemplateMailer) Send(ctx context.Context, params map[string]string) error {
	if m.cfg.Endpoint == "" {
		return ErrNotConfigured
	}

	resp, err := m.client.R().
		SetContext(ctx).
		SetBody(templatePayload{
			ServiceID:      m.cfg.ServiceID,
			TemplateID:     m.cfg.TemplateID,
			UserID:         m.cfg.PublicKey,
			TemplateParams: params,
		}).
		Post(m.cfg.Endpoint)
	if err != nil {
		return fmt.Errorf("send template %s: %w", m.cfg.TemplateID, err)
	}
	if resp.IsError() {
		return fmt.Errorf("send template %s: provider returned %d", m.cfg.TemplateID, resp.StatusCode())
	}
	return nil
}
