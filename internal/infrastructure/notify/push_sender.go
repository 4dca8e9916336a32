package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketcore/marketplace-api/internal/core/domain"
	"github.com/marketcore/marketplace-api/internal/core/ports"
)

var _ ports.NotificationSender = (*PushSender)(nil)

const defaultTimeout = 10 * time.Second

// Config holds the push gateway settings.
type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

// PushSender delivers push notifications through the HTTP push gateway.
type PushSender struct {
	url        string
	apiKey     string
	httpClient *http.Client
	log        zerolog.Logger
}

func NewPushSender(cfg Config, log zerolog.Logger) *PushSender {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &PushSender{
		url:        cfg.URL,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        log,
	}
}

// Send posts the notification to the gateway. Non-2xx responses are errors
// so the caller can retry.
func (s *PushSender) Send(ctx context.Context, n *domain.PushNotification) error {
	body, err := json.Marshal(n)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("Authorization", "key="+s.apiKey)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("push gateway: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}

	s.log.Debug().Str("to", n.To).Msg("push notification delivered")
	return nil
}
