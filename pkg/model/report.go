package model

import "time"

// BookingReportRow is one row of the admin booking-report listing: a booking
// joined with its event details. The mixed key casing is what existing
// clients read.
type BookingReportRow struct {
	BookingID         string        `json:"booking_id" bson:"booking_id"`
	CustomerName      string        `json:"customer_name" bson:"customer_name"`
	Email             string        `json:"email" bson:"email"`
	Phone             string        `json:"phone" bson:"phone"`
	BookingDate       time.Time     `json:"booking_date" bson:"booking_date"`
	EventType         string        `json:"event_type" bson:"event_type"`
	EventID           string        `json:"Event_ID" bson:"event_id"`
	GroomName         string        `json:"Groom_Name" bson:"groom_name"`
	BrideName         string        `json:"Bride_Name" bson:"bride_name"`
	EventName         string        `json:"Event_Name" bson:"event_name"`
	ContactPersonName string        `json:"ContactPersonName" bson:"contact_person_name"`
	GuestCount        int           `json:"guest_count" bson:"guest_count"`
	Status            BookingStatus `json:"status" bson:"status"`
}

// BookingReportFilter narrows the listing. Empty fields match everything.
type BookingReportFilter struct {
	Date string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Name string `json:"name,omitempty" validate:"omitempty,max=100"`
	Type string `json:"type,omitempty" validate:"omitempty,max=50"`
}

type ReportKind string

const (
	ReportMenuSummary ReportKind = "menu_summary"
	ReportEvent       ReportKind = "event_report"
)

// ReportGeneratedEvent is published after a report document is produced.
type ReportGeneratedEvent struct {
	EventID     string     `json:"event_id" bson:"event_id" validate:"required,uuid"`
	BookingID   string     `json:"booking_id" bson:"booking_id" validate:"required"`
	Kind        ReportKind `json:"kind" bson:"kind" validate:"required,oneof=menu_summary event_report"`
	Filename    string     `json:"filename" bson:"filename" validate:"required"`
	SizeBytes   int        `json:"size_bytes" bson:"size_bytes" validate:"gt=0"`
	RequestedBy string     `json:"requested_by" bson:"requested_by"`
	GeneratedAt time.Time  `json:"generated_at" bson:"generated_at" validate:"required"`
}

// ReportAudit is the stored form of a ReportGeneratedEvent.
type ReportAudit struct {
	ReportGeneratedEvent `bson:",inline"`
	ReceivedAt           time.Time `json:"received_at" bson:"received_at"`
}

// MenuSummaryData is what the menu summary document is drawn from. Menu is
// nil when the customer has not chosen a menu yet.
type MenuSummaryData struct {
	Booking Booking
	Menu    *MenuSelection
}

// EventReportData gathers every planning section of one booking. Missing
// sections are nil.
type EventReportData struct {
	Booking  Booking
	Event    *EventDetails
	Menu     *MenuSelection
	Services *ServicesSelection
	Tables   *TableArrangement
	Bar      *BarSelection
}

// GeneratedReport is a rendered document ready to be served.
type GeneratedReport struct {
	BookingID string
	Kind      ReportKind
	Filename  string
	Pages     int
	Content   []byte
}
