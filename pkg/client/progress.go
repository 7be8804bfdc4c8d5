package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"canteen/pkg/model"
)

type ProgressClient struct {
	httpClient *HttpClient
}

func NewProgressClient(baseURL, token string) *ProgressClient {
	return &ProgressClient{
		httpClient: NewHttpClient(baseURL, token),
	}
}

func (c *ProgressClient) GetProgress(ctx context.Context, bookingRef string) (*model.Progress, error) {
	resp, err := c.httpClient.GET(ctx, "/progress/customerDashboard/"+url.PathEscape(bookingRef))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch progress: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp, "Failed to fetch progress")
	}

	var progress model.Progress
	if err := resp.DecodeJSON(&progress); err != nil {
		return nil, fmt.Errorf("failed to decode progress: %w", err)
	}
	return &progress, nil
}
