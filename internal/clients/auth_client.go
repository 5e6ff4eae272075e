// Package clients holds HTTP clients for the external services the
// storefront depends on.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/coffeehub/coffeehub-storefront-service/internal/config"
	"github.com/coffeehub/coffeehub-storefront-service/internal/models"
)

// AuthClient looks up users in the external auth service.
type AuthClient interface {
	GetUser(ctx context.Context, userID string) (*models.User, error)
	ValidateUser(ctx context.Context, userID string) (bool, error)
}

// HTTPAuthClient implements AuthClient over HTTP. Calls carry the
// configured timeout and are never retried here.
type HTTPAuthClient struct {
	baseURL    string
	httpClient *http.Client
	apiKey     string
	logger     *zap.Logger
}

// NewHTTPAuthClient creates an HTTP-based auth client.
func NewHTTPAuthClient(cfg config.ServiceConfig, logger *zap.Logger) *HTTPAuthClient {
	return &HTTPAuthClient{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		apiKey: cfg.APIKey,
		logger: logger,
	}
}

// GetUser retrieves a user by ID. A missing user returns (nil, nil).
func (c *HTTPAuthClient) GetUser(ctx context.Context, userID string) (*models.User, error) {
	url := fmt.Sprintf("%s/api/v1/users/%s", c.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to fetch user",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("auth service returned status %d", resp.StatusCode)
	}

	var user models.User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

// ValidateUser reports whether the user exists.
func (c *HTTPAuthClient) ValidateUser(ctx context.Context, userID string) (bool, error) {
	user, err := c.GetUser(ctx, userID)
	if err != nil {
		return false, err
	}
	return user != nil, nil
}

func (c *HTTPAuthClient) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}
}
