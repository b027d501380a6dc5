package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/maheshrc27/autogram/internal/transfer"
)

// Container processing states reported by the Graph API status endpoint.
const (
	ContainerStatusInProgress = "IN_PROGRESS"
	ContainerStatusFinished   = "FINISHED"
	ContainerStatusError      = "ERROR"
)

// Client is the Instagram Graph API surface the publisher and token manager
// depend on.
type Client interface {
	CreateMedia(ctx context.Context, igUserID, imageURL, caption, accessToken string) (string, error)
	ContainerStatus(ctx context.Context, creationID, accessToken string) (string, error)
	PublishMedia(ctx context.Context, igUserID, creationID, accessToken string) (string, error)
	ExchangeToken(ctx context.Context, clientID, clientSecret, accessToken string) (string, error)
}

type graphClient struct {
	baseURL string
	http    *http.Client
}

func NewGraphClient(baseURL string) Client {
	return &graphClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// CreateMedia creates a media container for the image and returns its
// creation id (phase one of the publish protocol).
func (c *graphClient) CreateMedia(ctx context.Context, igUserID, imageURL, caption, accessToken string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media", c.baseURL, igUserID)
	payload := map[string]interface{}{
		"image_url":    imageURL,
		"caption":      caption,
		"access_token": accessToken,
	}

	result, err := c.postJSON(ctx, endpoint, payload)
	if err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", errors.New(graphErrorMessage(result))
	}
	return result.ID, nil
}

// ContainerStatus fetches the processing state of a media container.
func (c *graphClient) ContainerStatus(ctx context.Context, creationID, accessToken string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=status_code&access_token=%s",
		c.baseURL, creationID, url.QueryEscape(accessToken))

	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}

	result, err := c.do(req)
	if err != nil {
		return "", err
	}
	if result.StatusCode == "" {
		return "", errors.New(graphErrorMessage(result))
	}
	return result.StatusCode, nil
}

// PublishMedia finalizes a media container (phase two) and returns the
// Instagram post id.
func (c *graphClient) PublishMedia(ctx context.Context, igUserID, creationID, accessToken string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/media_publish", c.baseURL, igUserID)
	payload := map[string]interface{}{
		"creation_id":  creationID,
		"access_token": accessToken,
	}

	result, err := c.postJSON(ctx, endpoint, payload)
	if err != nil {
		return "", err
	}
	if result.ID == "" {
		return "", errors.New(graphErrorMessage(result))
	}
	return result.ID, nil
}

// ExchangeToken trades the current long-lived token for a fresh one.
func (c *graphClient) ExchangeToken(ctx context.Context, clientID, clientSecret, accessToken string) (string, error) {
	endpoint := fmt.Sprintf("%s/oauth/access_token", c.baseURL)

	data := url.Values{}
	data.Set("grant_type", "fb_exchange_token")
	data.Set("client_id", clientID)
	data.Set("client_secret", clientSecret)
	data.Set("fb_exchange_token", accessToken)

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, strings.NewReader(data.Encode()))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	result, err := c.do(req)
	if err != nil {
		return "", err
	}
	if result.AccessToken == "" {
		return "", errors.New(graphErrorMessage(result))
	}
	return result.AccessToken, nil
}

func (c *graphClient) postJSON(ctx context.Context, endpoint string, payload map[string]interface{}) (*transfer.GraphAPIResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("error marshalling payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *graphClient) do(req *http.Request) (*transfer.GraphAPIResult, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("HTTP request error: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response body: %w", err)
	}

	var result transfer.GraphAPIResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("error parsing response: %w", err)
	}
	return &result, nil
}

func graphErrorMessage(result *transfer.GraphAPIResult) string {
	if result.Error.Message != "" {
		return result.Error.Message
	}
	return "Unknown error"
}
