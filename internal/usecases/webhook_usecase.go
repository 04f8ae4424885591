package usecases

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"site-weaver.backend/internal/domain/entities"
	domainerrors "site-weaver.backend/internal/domain/errors"
	"site-weaver.backend/internal/domain/repositories"
	"site-weaver.backend/pkg/crypto"
	"site-weaver.backend/pkg/logger"
	"site-weaver.backend/pkg/utils"
)

// deliveryTimeout bounds a single webhook delivery attempt end to end.
const deliveryTimeout = 10 * time.Second

// signatureHeader carries the hex HMAC-SHA256 of the payload, keyed by the
// webhook's secret.
const signatureHeader = "X-SiteWeaver-Signature"

// WebhookEvent is the payload delivered to a registered endpoint.
type WebhookEvent struct {
	Event      string      `json:"event"`
	SiteID     uuid.UUID   `json:"siteId"`
	OccurredAt time.Time   `json:"occurredAt"`
	Data       interface{} `json:"data"`
}

// WebhookUsecase manages webhook registrations and deliveries.
type WebhookUsecase struct {
	webhookRepo repositories.WebhookRepository
	httpClient  *http.Client
}

// NewWebhookUsecase creates a new webhook usecase
func NewWebhookUsecase(webhookRepo repositories.WebhookRepository) *WebhookUsecase {
	return &WebhookUsecase{
		webhookRepo: webhookRepo,
		httpClient:  &http.Client{Timeout: deliveryTimeout},
	}
}

// CreateWebhook registers an endpoint for a site and generates its signing
// secret. The secret is returned once on the entity; list responses omit it.
func (u *WebhookUsecase) CreateWebhook(ctx context.Context, siteID uuid.UUID, input *entities.CreateWebhookInput) (*entities.Webhook, string, error) {
	if len(input.Events) == 0 {
		return nil, "", domainerrors.ValidationError("at least one event is required")
	}

	secret, err := crypto.GenerateWebhookSecret()
	if err != nil {
		return nil, "", domainerrors.InternalError(err)
	}

	now := time.Now()
	webhook := &entities.Webhook{
		ID:        utils.GenerateUUIDv7(),
		SiteID:    siteID,
		URL:       input.URL,
		Secret:    secret,
		Events:    input.Events,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := u.webhookRepo.Create(ctx, webhook); err != nil {
		return nil, "", domainerrors.InternalError(err)
	}
	return webhook, secret, nil
}

// ListWebhooks lists a site's registered endpoints.
func (u *WebhookUsecase) ListWebhooks(ctx context.Context, siteID uuid.UUID) ([]*entities.Webhook, error) {
	webhooks, err := u.webhookRepo.ListBySiteID(ctx, siteID)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return webhooks, nil
}

// DeleteWebhook removes a registration belonging to the site.
func (u *WebhookUsecase) DeleteWebhook(ctx context.Context, siteID, webhookID uuid.UUID) error {
	webhook, err := u.webhookRepo.GetByID(ctx, webhookID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("webhook not found")
		}
		return domainerrors.InternalError(err)
	}
	if webhook.SiteID != siteID {
		return domainerrors.NotFound("webhook not found")
	}
	if err := u.webhookRepo.Delete(ctx, webhookID); err != nil {
		return domainerrors.InternalError(err)
	}
	return nil
}

// Dispatch delivers an event to every active endpoint subscribed to it.
// Delivery failures are logged, never propagated to the triggering request.
func (u *WebhookUsecase) Dispatch(ctx context.Context, siteID uuid.UUID, event string, data interface{}) {
	webhooks, err := u.webhookRepo.ListActiveByEvent(ctx, siteID, event)
	if err != nil {
		logger.Error(ctx, "failed to list webhooks for event",
			zap.String("event", event), zap.Error(err))
		return
	}
	if len(webhooks) == 0 {
		return
	}

	payload := WebhookEvent{
		Event:      event,
		SiteID:     siteID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}

	for _, webhook := range webhooks {
		if err := u.deliver(ctx, webhook, payload); err != nil {
			logger.Warn(ctx, "webhook delivery failed",
				zap.String("webhook_id", webhook.ID.String()),
				zap.String("event", event),
				zap.Error(err))
			continue
		}

		webhook.LastFired = null.TimeFrom(time.Now())
		if err := u.webhookRepo.Update(ctx, webhook); err != nil {
			logger.Warn(ctx, "failed to record webhook delivery",
				zap.String("webhook_id", webhook.ID.String()),
				zap.Error(err))
		}
	}
}

// deliver POSTs the signed payload within the delivery timeout. Timeouts are
// reported distinctly from connection failures so operators can tell a slow
// endpoint from a dead one.
func (u *WebhookUsecase) deliver(ctx context.Context, webhook *entities.Webhook, payload WebhookEvent) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, deliveryTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhook.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(signatureHeader, signPayload(webhook.Secret, body))

	resp, err := u.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return errors.New("delivery timed out after " + deliveryTimeout.String())
		}
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return errors.New("endpoint responded with status " + resp.Status)
	}
	return nil
}

func signPayload(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}
