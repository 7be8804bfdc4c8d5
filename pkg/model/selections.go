package model

type ServiceItem struct {
	Name   string  `json:"name" bson:"name"`
	Vendor string  `json:"vendor" bson:"vendor"`
	Price  float64 `json:"price" bson:"price"`
}

type ServicesSelection struct {
	BookingID string        `json:"booking_id" bson:"booking_id"`
	Services  []ServiceItem `json:"services" bson:"services"`
}

type Table struct {
	Label       string `json:"label" bson:"label"`
	Shape       string `json:"shape" bson:"shape"`
	Seats       int    `json:"seats" bson:"seats"`
	Chairs      string `json:"chairs" bson:"chairs"`
	ColorScheme string `json:"color_scheme" bson:"color_scheme"`
}

type TableArrangement struct {
	BookingID string  `json:"booking_id" bson:"booking_id"`
	Tables    []Table `json:"tables" bson:"tables"`
}

// BarItem is one line of the bite and bar plan.
type BarItem struct {
	Name     string  `json:"name" bson:"name"`
	Category string  `json:"category" bson:"category"`
	Quantity int     `json:"quantity" bson:"quantity"`
	Price    float64 `json:"price" bson:"price"`
}

type BarSelection struct {
	BookingID string    `json:"booking_id" bson:"booking_id"`
	Items     []BarItem `json:"items" bson:"items"`
}
