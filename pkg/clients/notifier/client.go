package notifier

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/mamadbah2/stockroom/internal/domain/models"
)

// Client delivers low-stock digests to an external receiver.
type Client interface {
	SendLowStockDigest(ctx context.Context, digest Digest) error
}

// Digest is the JSON body posted to the webhook.
type Digest struct {
	Threshold   int64                  `json:"threshold"`
	GeneratedAt time.Time              `json:"generatedAt"`
	Text        string                 `json:"text"`
	Alerts      []models.LowStockAlert `json:"alerts"`
}

// WebhookClient is a resty-backed implementation of Client.
type WebhookClient struct {
	httpClient *resty.Client
	url        string
}

// NewWebhookClient builds a client posting to url.
func NewWebhookClient(url string) *WebhookClient {
	restyClient := resty.New().
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &WebhookClient{httpClient: restyClient, url: url}
}

// apiError captures a receiver's error body, when it sends one.
type apiError struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

func (c *WebhookClient) SendLowStockDigest(ctx context.Context, digest Digest) error {
	apiErr := new(apiError)

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(digest).
		SetError(apiErr).
		Post(c.url)
	if err != nil {
		return fmt.Errorf("send low-stock digest: %w", err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Message
		if message == "" {
			message = apiErr.Error
		}
		return fmt.Errorf("digest webhook error: code=%d, message=%s", resp.StatusCode(), message)
	}

	return nil
}
