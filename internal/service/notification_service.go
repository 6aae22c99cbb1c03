package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/smtp"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/auroranet/portal-service/internal/config"
	"github.com/auroranet/portal-service/internal/events"
)

// NotificationService fans domain events out to the staff webhook and, for
// password resets, to the mail relay.
type NotificationService struct {
	webhookURL string
	mail       config.MailConfig
	client     *retryablehttp.Client
	logger     *zap.Logger
}

// NewNotificationService constructs the service with a retrying HTTP client.
func NewNotificationService(cfg *config.Config, logger *zap.Logger) *NotificationService {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.Logger = nil

	return &NotificationService{
		webhookURL: cfg.Notify.WebhookURL,
		mail:       cfg.Mail,
		client:     client,
		logger:     logger,
	}
}

// webhookEventTypes lists the events forwarded to the staff webhook.
var webhookEventTypes = []events.EventType{
	events.EventOrderCreated,
	events.EventOrderStatusChanged,
	events.EventTicketCreated,
	events.EventTicketStatusChanged,
	events.EventTicketMessageAdded,
	events.EventSubscriptionStatusChanged,
}

// Register subscribes the service's handlers on the dispatcher.
func (s *NotificationService) Register(dispatcher events.Dispatcher) {
	for _, eventType := range webhookEventTypes {
		dispatcher.Subscribe(eventType, s.HandleWebhookEvent)
	}
	dispatcher.Subscribe(events.EventPasswordResetRequested, s.HandlePasswordReset)
}

// HandleWebhookEvent posts the event to the configured webhook endpoint.
func (s *NotificationService) HandleWebhookEvent(ctx context.Context, event events.Event) error {
	if s.webhookURL == "" {
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "POST", s.webhookURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("webhook delivery failed",
			zap.String("event_type", string(event.Type)),
			zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		s.logger.Warn("webhook rejected",
			zap.String("event_type", string(event.Type)),
			zap.Int("status", resp.StatusCode))
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}

// HandlePasswordReset sends the reset link to the account's address.
func (s *NotificationService) HandlePasswordReset(_ context.Context, event events.Event) error {
	payload, ok := event.Payload.(events.PasswordResetRequestedPayload)
	if !ok {
		return fmt.Errorf("unexpected payload type for %s", event.Type)
	}
	if s.mail.Host == "" {
		s.logger.Info("mail relay not configured, skipping reset mail",
			zap.String("email", payload.Email))
		return nil
	}

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Reset your password\r\n\r\n"+
		"A password reset was requested for your account.\r\n\r\n"+
		"Open the link below to choose a new password. The link expires shortly.\r\n\r\n%s\r\n",
		s.mail.From, payload.Email, payload.ResetURL)

	addr := s.mail.Host + ":" + s.mail.Port
	var auth smtp.Auth
	if s.mail.Username != "" {
		auth = smtp.PlainAuth("", s.mail.Username, s.mail.Password, s.mail.Host)
	}

	if err := smtp.SendMail(addr, auth, s.mail.From, []string{payload.Email}, []byte(msg)); err != nil {
		s.logger.Warn("reset mail delivery failed",
			zap.String("email", payload.Email),
			zap.Error(err))
		return err
	}
	return nil
}
