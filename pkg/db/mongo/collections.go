package mongo

const (
	CollectionBookings          = "Bookings"
	CollectionEventDetails      = "EventDetails"
	CollectionMenuSelections    = "MenuSelections"
	CollectionServiceSelections = "ServiceSelections"
	CollectionTableArrangements = "TableArrangements"
	CollectionBarSelections     = "BarSelections"
	CollectionReportAudit       = "ReportAudit"
)
