package render

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"canteen/pkg/logger"
	"canteen/pkg/model"
	"canteen/pkg/sanitizer"
)

type Renderer struct {
	layout Layout
	loader WatermarkLoader
	log    *logger.Logger
}

func NewRenderer(layout Layout, loader WatermarkLoader, log *logger.Logger) *Renderer {
	return &Renderer{
		layout: layout,
		loader: loader,
		log:    log,
	}
}

// loadWatermark never fails the document: any problem is logged and the
// pages are drawn without a watermark.
func (r *Renderer) loadWatermark(ctx context.Context) *Watermark {
	if r.loader == nil {
		return nil
	}
	wm, err := r.loader.Load(ctx)
	if err != nil {
		r.log.Warn("Failed to load watermark, continuing without it", "error", err)
		return nil
	}
	return wm
}

// MenuSummary draws the header, the customer block and every selected menu
// with category, menu and grand totals.
func (r *Renderer) MenuSummary(ctx context.Context, data *model.MenuSummaryData, generatedAt time.Time) (*Document, error) {
	if data == nil {
		return nil, fmt.Errorf("menu summary data is nil")
	}

	d := newDocument("Menu Summary", r.layout, r.loadWatermark(ctx), generatedAt, r.log)
	d.title("Menu Summary", "Generated on "+d.date(generatedAt))
	d.bookingBlock(data.Booking)

	d.heading("Selected Menus")
	d.menus(data.Menu)

	return d.finish()
}

// EventReport draws every planning section of a booking.
func (r *Renderer) EventReport(ctx context.Context, data *model.EventReportData, generatedAt time.Time) (*Document, error) {
	if data == nil {
		return nil, fmt.Errorf("event report data is nil")
	}

	d := newDocument("Event Report", r.layout, r.loadWatermark(ctx), generatedAt, r.log)
	d.title("Event Report", "Generated on "+d.date(generatedAt))
	d.bookingBlock(data.Booking)
	d.eventBlock(data.Event)

	d.heading("Menu Selection")
	d.menus(data.Menu)

	d.services(data.Services)
	d.tables(data.Tables)
	d.bar(data.Bar)

	return d.finish()
}

func (d *document) bookingBlock(b model.Booking) {
	d.heading("Booking Details")
	d.field("Booking ID", clean(b.BookingID))
	d.field("Customer", clean(b.CustomerName))
	d.field("Email", clean(b.Email))
	d.field("Phone", sanitizer.FormatPhone(clean(b.Phone)))
	d.field("Event Date", d.date(b.BookingDate))
	d.field("Event Type", clean(b.EventType))
	d.field("Guest Count", strconv.Itoa(b.GuestCount))
	d.field("Status", string(b.Status))
}

func (d *document) eventBlock(e *model.EventDetails) {
	d.heading("Event Details")
	if e == nil {
		d.note("Event details have not been provided.")
		return
	}
	d.field("Event ID", clean(e.EventID))
	d.field("Event Name", clean(e.EventName))
	d.field("Groom", clean(e.GroomName))
	d.field("Bride", clean(e.BrideName))
	d.field("Contact Person", clean(e.ContactPersonName))
	d.field("Venue", clean(e.Venue))
	d.field("Date", d.date(e.EventDate))
	if notes := clean(e.Notes); notes != "" {
		d.subheading("Notes")
		d.paragraph(notes)
	}
}

func (d *document) menus(sel *model.MenuSelection) {
	if sel == nil || sel.ItemCount() == 0 {
		d.note("No menu items have been selected.")
		return
	}

	totals := sel.Totals()
	for i, menu := range sel.Menus {
		d.subheading(orDefault(menu.Name, fmt.Sprintf("Menu %d", i+1)))
		for j, category := range menu.Categories {
			d.ensureSpace(2 * lineHeight)
			d.pdf.SetFont(fontFamily, "BI", 10)
			d.pdf.SetX(marginLeft + 2)
			d.pdf.CellFormat(0, lineHeight, d.tr(orDefault(category.Name, "Items")), "", 1, "L", false, 0, "")
			for _, item := range category.Items {
				d.line(orDefault(item.Name, "Unnamed item"), item.Price)
			}
			d.total("Category subtotal", totals.Categories[i][j], 9)
		}
		d.total("Menu subtotal", totals.Menus[i], 10)
		d.pdf.Ln(2)
	}
	d.total("Grand total", totals.Grand, 12)
}

func (d *document) services(sel *model.ServicesSelection) {
	d.heading("Services")
	if sel == nil || len(sel.Services) == 0 {
		d.note("No services have been selected.")
		return
	}

	var total float64
	for _, s := range sel.Services {
		label := orDefault(s.Name, "Service")
		if vendor := clean(s.Vendor); vendor != "" {
			label += " (" + vendor + ")"
		}
		d.line(label, s.Price)
		total += s.Price
	}
	d.total("Services total", total, 10)
}

var tableColumns = []float64{40, 30, 20, 45, 45}

func (d *document) tables(sel *model.TableArrangement) {
	d.heading("Table Arrangement")
	if sel == nil || len(sel.Tables) == 0 {
		d.note("No tables have been arranged.")
		return
	}

	d.row(tableColumns, []string{"Table", "Shape", "Seats", "Chairs", "Colour Scheme"}, true)
	seats := 0
	for i, t := range sel.Tables {
		d.row(tableColumns, []string{
			orDefault(t.Label, fmt.Sprintf("Table %d", i+1)),
			orDash(clean(t.Shape)),
			strconv.Itoa(t.Seats),
			orDash(clean(t.Chairs)),
			orDash(clean(t.ColorScheme)),
		}, false)
		seats += t.Seats
	}
	d.field("Tables", strconv.Itoa(len(sel.Tables)))
	d.field("Total Seats", strconv.Itoa(seats))
}

func (d *document) bar(sel *model.BarSelection) {
	d.heading("Bite and Bar Plan")
	if sel == nil || len(sel.Items) == 0 {
		d.note("No bar items have been selected.")
		return
	}

	var total float64
	for _, item := range sel.Items {
		label := fmt.Sprintf("%s x %d", orDefault(item.Name, "Item"), item.Quantity)
		if category := clean(item.Category); category != "" {
			label = category + ": " + label
		}
		lineTotal := item.Price * float64(item.Quantity)
		d.line(label, lineTotal)
		total += lineTotal
	}
	d.total("Bar total", total, 10)
}
