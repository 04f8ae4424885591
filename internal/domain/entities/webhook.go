package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// Webhook is an outbound HTTP callback registered for a site.
type Webhook struct {
	ID        uuid.UUID `json:"id"`
	SiteID    uuid.UUID `json:"siteId"`
	URL       string    `json:"url"`
	Secret    string    `json:"-"`
	Events    []string  `json:"events"`
	IsActive  bool      `json:"isActive"`
	LastFired null.Time `json:"lastFired,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateWebhookInput struct {
	URL    string   `json:"url" binding:"required,url"`
	Events []string `json:"events" binding:"required"`
}

// ConnectionTestResult reports the outcome of probing a site's external
// integration endpoint. Reachability failures are reported in Message rather
// than as errors; only infrastructure faults surface as errors.
type ConnectionTestResult struct {
	OK         bool          `json:"ok"`
	StatusCode int           `json:"statusCode,omitempty"`
	Message    string        `json:"message"`
	Latency    time.Duration `json:"latencyMs"`
}
