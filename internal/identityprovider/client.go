// Package identityprovider calls the federated auth provider that backs
// the OAuth login flow. The provider base URL comes from configuration
// only: there is no default and no fallback URL anywhere in this
// package, so a missing value fails at startup instead of silently
// talking to the wrong host.
package identityprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	providertypes "github.com/lawateaditya/Stock-Management/internal/core/datamodel/identityprovider"
)

const sessionDataPath = "/auth/v1/env/oauth/session-data"

type Config struct {
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

func NewClient(config Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := config.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: config.BaseURL,
		timeout: timeout,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// GetSessionData asks the provider to verify an OAuth session and
// returns its payload. Callers must treat every error the same way; the
// error text stays generic so no provider detail can leak to clients.
func (c *Client) GetSessionData(ctx context.Context, sessionID string) (*providertypes.SessionData, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+sessionDataPath, nil)
	if err != nil {
		return nil, fmt.Errorf("build session-data request: %w", err)
	}
	req.Header.Set("X-Session-ID", sessionID)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("auth provider request failed", "error", err)
		return nil, fmt.Errorf("auth provider request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("auth provider rejected session", "status", resp.StatusCode)
		return nil, fmt.Errorf("auth provider returned status %d", resp.StatusCode)
	}

	var data providertypes.SessionData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode session-data response: %w", err)
	}
	if err := data.Validate(); err != nil {
		return nil, fmt.Errorf("invalid session-data payload: %w", err)
	}

	return &data, nil
}
