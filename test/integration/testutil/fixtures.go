package testutil

import (
	"time"

	"github.com/google/uuid"

	"canteen/pkg/model"
)

// BookingFixture is one booking plus whichever planning documents a test
// wants present.
type BookingFixture struct {
	Booking  model.Booking
	Event    *model.EventDetails
	Menu     *model.MenuSelection
	Services *model.ServicesSelection
	Tables   *model.TableArrangement
	Bar      *model.BarSelection
}

type BookingBuilder struct {
	f BookingFixture
}

func NewBookingBuilder() *BookingBuilder {
	id := "it-" + uuid.NewString()[:8]
	return &BookingBuilder{
		f: BookingFixture{
			Booking: model.Booking{
				BookingID:    id,
				CustomerID:   "customer-" + id,
				CustomerName: "Integration Customer",
				Email:        "it@example.com",
				Phone:        "+94771234567",
				BookingDate:  time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
				EventType:    "Wedding",
				GuestCount:   120,
				Status:       model.BookingConfirmed,
				CreatedAt:    time.Now().UTC(),
			},
		},
	}
}

func (b *BookingBuilder) WithCustomer(id, name string) *BookingBuilder {
	b.f.Booking.CustomerID = id
	b.f.Booking.CustomerName = name
	return b
}

func (b *BookingBuilder) WithEventType(eventType string) *BookingBuilder {
	b.f.Booking.EventType = eventType
	return b
}

func (b *BookingBuilder) WithEvent() *BookingBuilder {
	b.f.Event = &model.EventDetails{
		BookingID:         b.f.Booking.BookingID,
		EventID:           "EV-" + b.f.Booking.BookingID,
		EventName:         "Reception",
		GroomName:         "Groom",
		BrideName:         "Bride",
		ContactPersonName: "Contact",
		Venue:             "Main Hall",
		EventDate:         b.f.Booking.BookingDate,
	}
	return b
}

func (b *BookingBuilder) WithMenu(items ...model.MenuItem) *BookingBuilder {
	b.f.Menu = &model.MenuSelection{
		BookingID: b.f.Booking.BookingID,
		Menus: []model.Menu{{
			Name:       "Dinner",
			Categories: []model.MenuCategory{{Name: "Mains", Items: items}},
		}},
	}
	return b
}

func (b *BookingBuilder) WithServices(services ...model.ServiceItem) *BookingBuilder {
	b.f.Services = &model.ServicesSelection{BookingID: b.f.Booking.BookingID, Services: services}
	return b
}

func (b *BookingBuilder) Build() *BookingFixture {
	f := b.f
	return &f
}
