package model

import (
	"time"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type Booking struct {
	ID           string        `json:"-" bson:"_id,omitempty"`
	BookingID    string        `json:"booking_id" bson:"booking_id"`
	CustomerID   string        `json:"customer_id" bson:"customer_id"`
	CustomerName string        `json:"customer_name" bson:"customer_name"`
	Email        string        `json:"email" bson:"email"`
	Phone        string        `json:"phone" bson:"phone"`
	BookingDate  time.Time     `json:"booking_date" bson:"booking_date"`
	EventType    string        `json:"event_type" bson:"event_type"`
	GuestCount   int           `json:"guest_count" bson:"guest_count"`
	Status       BookingStatus `json:"status" bson:"status"`
	CreatedAt    time.Time     `json:"created_at" bson:"created_at"`
}

type EventDetails struct {
	BookingID         string    `json:"booking_id" bson:"booking_id"`
	EventID           string    `json:"event_id" bson:"event_id"`
	EventName         string    `json:"event_name" bson:"event_name"`
	GroomName         string    `json:"groom_name" bson:"groom_name"`
	BrideName         string    `json:"bride_name" bson:"bride_name"`
	ContactPersonName string    `json:"contact_person_name" bson:"contact_person_name"`
	Venue             string    `json:"venue" bson:"venue"`
	EventDate         time.Time `json:"event_date" bson:"event_date"`
	Notes             string    `json:"notes" bson:"notes"`
}
