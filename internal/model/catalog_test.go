package model

import "testing"

func TestCatalog(t *testing.T) {
	tests := []struct {
		name       string
		priceCents uint32
		granted    []string
		denied     []string
	}{
		{"Single", 10000, []string{"A"}, []string{"B", "C"}},
		{"Double", 15000, []string{"A", "B"}, []string{"C"}},
		{"Full", 20000, []string{"A", "B", "C"}, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tt, ok := TicketTypeByName(tc.name)
			if !ok {
				t.Fatalf("TicketTypeByName(%q) not found", tc.name)
			}
			if tt.PriceCents != tc.priceCents {
				t.Errorf("price = %d, want %d", tt.PriceCents, tc.priceCents)
			}
			for _, ex := range tc.granted {
				if !tt.Grants(ex) {
					t.Errorf("Grants(%q) = false, want true", ex)
				}
			}
			for _, ex := range tc.denied {
				if tt.Grants(ex) {
					t.Errorf("Grants(%q) = true, want false", ex)
				}
			}
		})
	}

	if _, ok := TicketTypeByName("Platinum"); ok {
		t.Error("TicketTypeByName(Platinum) found, want miss")
	}
	// Lookups are exact and case-sensitive.
	if _, ok := TicketTypeByName("single"); ok {
		t.Error("TicketTypeByName(single) found, want miss")
	}
}

func TestCatalogIsolation(t *testing.T) {
	c := Catalog()
	c[0].Name = "mutated"
	c[0].Exhibitions[0] = "Z"
	if tt, _ := TicketTypeByName("Single"); !tt.Grants("A") {
		t.Fatal("mutating a returned catalog slice leaked into later calls")
	}
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{PaymentCard, PaymentCredit, PaymentDebit, PaymentApplePay, PaymentCash} {
		if !ValidPaymentMethod(m) {
			t.Errorf("ValidPaymentMethod(%q) = false, want true", m)
		}
	}
	for _, m := range []string{"", "barter", "CARD"} {
		if ValidPaymentMethod(m) {
			t.Errorf("ValidPaymentMethod(%q) = true, want false", m)
		}
	}
}
