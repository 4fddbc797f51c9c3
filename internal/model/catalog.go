package model

// Catalog returns the fixed set of ticket types sold at the
// conference. The slice is rebuilt on every call so callers cannot
// mutate the catalog.
func Catalog() []TicketType {
	return []TicketType{
		{Name: "Single", PriceCents: 10000, Exhibitions: []string{"A"}},
		{Name: "Double", PriceCents: 15000, Exhibitions: []string{"A", "B"}},
		{Name: "Full", PriceCents: 20000, Exhibitions: []string{"A", "B", "C"}},
	}
}

// TicketTypeByName looks a ticket type up in the catalog. The second
// return value is false when no type with that name is sold.
func TicketTypeByName(name string) (TicketType, bool) {
	for _, t := range Catalog() {
		if t.Name == name {
			return t, true
		}
	}
	return TicketType{}, false
}
