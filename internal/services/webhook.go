package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/managio-dev/managio/internal/models"
)

// WebhookPayload is the JSON body posted to an organization's configured
// webhook URL whenever the dispatcher creates a notification.
type WebhookPayload struct {
	Event      string `json:"event"`
	Title      string `json:"title"`
	Message    string `json:"message"`
	Priority   string `json:"priority"`
	EntityType string `json:"entity_type,omitempty"`
	EntityID   *uint  `json:"entity_id,omitempty"`
	Timestamp  string `json:"timestamp"`
}

func SendOrganizationWebhook(org models.Organization, notification models.Notification) error {
	if org.WebhookURL == "" {
		return nil
	}

	payload := WebhookPayload{
		Event:      notification.Type,
		Title:      notification.Title,
		Message:    notification.Message,
		Priority:   notification.Priority,
		EntityType: notification.EntityType,
		EntityID:   notification.EntityID,
		Timestamp:  time.Now().Format(time.RFC3339),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal webhook payload: %w", err)
	}

	resp, err := http.Post(org.WebhookURL, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to send webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	return nil
}
