package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"canteen/pkg/model"
)

const (
	reportDownloadFailed = "Failed to download report"
	reportListFailed     = "Failed to load booking reports"
)

type ReportsClient struct {
	httpClient *HttpClient
}

func NewReportsClient(baseURL, token string) *ReportsClient {
	return &ReportsClient{
		httpClient: NewHttpClient(baseURL, token),
	}
}

// DownloadReport fetches the server-rendered event report PDF for a booking.
func (c *ReportsClient) DownloadReport(ctx context.Context, bookingID string) ([]byte, error) {
	return c.download(ctx, "/pdf/events/"+url.PathEscape(bookingID))
}

// DownloadMenuSummary fetches the menu summary PDF for a booking.
func (c *ReportsClient) DownloadMenuSummary(ctx context.Context, bookingID string) ([]byte, error) {
	return c.download(ctx, "/pdf/menu-summary/"+url.PathEscape(bookingID))
}

func (c *ReportsClient) download(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.httpClient.GETWithHeaders(ctx, path, map[string]string{"Accept": "application/pdf"})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", reportDownloadFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp, reportDownloadFailed)
	}
	return resp.Body, nil
}

func (c *ReportsClient) ListBookingReports(ctx context.Context, filter model.BookingReportFilter) ([]model.BookingReportRow, error) {
	q := url.Values{}
	if filter.Date != "" {
		q.Set("date", filter.Date)
	}
	if filter.Name != "" {
		q.Set("name", filter.Name)
	}
	if filter.Type != "" {
		q.Set("type", filter.Type)
	}

	path := "/pdf/booking-reports"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	resp, err := c.httpClient.GET(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", reportListFailed, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, newAPIError(resp, reportListFailed)
	}

	var rows []model.BookingReportRow
	if err := resp.DecodeJSON(&rows); err != nil {
		return nil, fmt.Errorf("failed to decode booking reports: %w", err)
	}
	return rows, nil
}
