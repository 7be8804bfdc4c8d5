package model

type MenuItem struct {
	Name  string  `json:"name" bson:"name"`
	Price float64 `json:"price" bson:"price"`
}

type MenuCategory struct {
	Name  string     `json:"name" bson:"name"`
	Items []MenuItem `json:"items" bson:"items"`
}

type Menu struct {
	Name       string         `json:"name" bson:"name"`
	Categories []MenuCategory `json:"categories" bson:"categories"`
}

type MenuSelection struct {
	BookingID string `json:"booking_id" bson:"booking_id"`
	Menus     []Menu `json:"menus" bson:"menus"`
}

func (c MenuCategory) Subtotal() float64 {
	var total float64
	for _, item := range c.Items {
		total += item.Price
	}
	return total
}

func (m Menu) Subtotal() float64 {
	var total float64
	for _, c := range m.Categories {
		total += c.Subtotal()
	}
	return total
}

func (s MenuSelection) ItemCount() int {
	n := 0
	for _, m := range s.Menus {
		for _, c := range m.Categories {
			n += len(c.Items)
		}
	}
	return n
}

// MenuTotals is the price breakdown of one menu selection, keyed by position
// so that menus or categories sharing a name stay distinct.
type MenuTotals struct {
	Categories [][]float64
	Menus      []float64
	Grand      float64
}

func (s MenuSelection) Totals() MenuTotals {
	totals := MenuTotals{
		Categories: make([][]float64, len(s.Menus)),
		Menus:      make([]float64, len(s.Menus)),
	}
	for i, m := range s.Menus {
		totals.Categories[i] = make([]float64, len(m.Categories))
		for j, c := range m.Categories {
			sub := c.Subtotal()
			totals.Categories[i][j] = sub
			totals.Menus[i] += sub
		}
		totals.Grand += totals.Menus[i]
	}
	return totals
}
