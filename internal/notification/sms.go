package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"pixshare/internal/config"
	"pixshare/internal/logger"
)

// SMSSender posts messages to the SMS provider's HTTP API.
type SMSSender struct {
	apiURL  string
	token   string
	from    string
	client  *http.Client
	enabled bool
}

func NewSMSSender(cfg *config.SMSConfig) *SMSSender {
	enabled := cfg.APIURL != ""
	if !enabled {
		logger.Warn("SMS sender disabled: missing SMS_API_URL")
	}

	return &SMSSender{
		apiURL:  cfg.APIURL,
		token:   cfg.Token,
		from:    cfg.From,
		client:  &http.Client{Timeout: 10 * time.Second},
		enabled: enabled,
	}
}

type smsRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Message string `json:"message"`
}

func (s *SMSSender) Send(to, message string) error {
	if !s.enabled {
		logger.Warn("SMS sender disabled, dropping message")
		return nil
	}

	payload, err := json.Marshal(smsRequest{
		From:    s.from,
		To:      to,
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("failed to encode sms request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.apiURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call sms provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("sms provider returned status %d", resp.StatusCode)
	}

	return nil
}
