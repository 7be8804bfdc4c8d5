package service

import (
	"strings"
	"time"

	"canteen/pkg/model"
)

// FilterRows applies the listing filters. Date matches the calendar day of
// booking_date in loc, name is a case-insensitive substring of the customer
// name and type is a case-insensitive exact event type. Empty filters match
// every row.
func FilterRows(rows []model.BookingReportRow, filter model.BookingReportFilter, loc *time.Location) []model.BookingReportRow {
	if loc == nil {
		loc = time.UTC
	}
	date := strings.TrimSpace(filter.Date)
	name := strings.ToLower(strings.TrimSpace(filter.Name))
	eventType := strings.TrimSpace(filter.Type)

	out := make([]model.BookingReportRow, 0, len(rows))
	for _, row := range rows {
		if date != "" && (row.BookingDate.IsZero() || row.BookingDate.In(loc).Format(time.DateOnly) != date) {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(row.CustomerName), name) {
			continue
		}
		if eventType != "" && !strings.EqualFold(strings.TrimSpace(row.EventType), eventType) {
			continue
		}
		out = append(out, row)
	}
	return out
}
