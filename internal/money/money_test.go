package money

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestItemAmount(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		rate     string
		want     string
	}{
		{"whole numbers", "1", "2000.00", "2000.00"},
		{"multiple units", "5", "100.00", "500.00"},
		{"fractional quantity", "1.5", "99.99", "149.99"},
		{"rounds half up", "3", "0.335", "1.01"},
		{"zero rate", "10", "0", "0.00"},
		{"cent drift case", "0.1", "0.2", "0.02"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ItemAmount(dec(t, tt.quantity), dec(t, tt.rate))
			if got.StringFixed(2) != tt.want {
				t.Errorf("ItemAmount(%s, %s) = %s, want %s", tt.quantity, tt.rate, got, tt.want)
			}
		})
	}
}

func TestSubtotal(t *testing.T) {
	amounts := []decimal.Decimal{dec(t, "2000.00"), dec(t, "500.00")}
	if got := Subtotal(amounts); got.StringFixed(2) != "2500.00" {
		t.Errorf("Subtotal() = %s, want 2500.00", got)
	}

	// Order must not matter.
	reversed := []decimal.Decimal{amounts[1], amounts[0]}
	if got := Subtotal(reversed); !got.Equal(Subtotal(amounts)) {
		t.Errorf("Subtotal not commutative: %s vs %s", got, Subtotal(amounts))
	}

	if got := Subtotal(nil); got.StringFixed(2) != "0.00" {
		t.Errorf("Subtotal(nil) = %s, want 0.00", got)
	}
}

func TestTaxAmount(t *testing.T) {
	tests := []struct {
		name     string
		subtotal string
		rate     string
		want     string
	}{
		{"20 percent", "2500.00", "20", "500.00"},
		{"zero rate", "2500.00", "0", "0.00"},
		{"fractional rate", "100.00", "5.5", "5.50"},
		{"rounds to cents", "33.33", "7.25", "2.42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TaxAmount(dec(t, tt.subtotal), dec(t, tt.rate))
			if got.StringFixed(2) != tt.want {
				t.Errorf("TaxAmount(%s, %s) = %s, want %s", tt.subtotal, tt.rate, got, tt.want)
			}
		})
	}
}

func TestTotal(t *testing.T) {
	// Two already-rounded quantities add exactly, no re-rounding drift.
	got := Total(dec(t, "2500.00"), dec(t, "500.00"))
	if got.StringFixed(2) != "3000.00" {
		t.Errorf("Total() = %s, want 3000.00", got)
	}
}

func TestIdempotentAtCentBoundary(t *testing.T) {
	// Recomputing from stored 2-decimal values must reproduce them exactly.
	subtotal := Subtotal([]decimal.Decimal{
		ItemAmount(dec(t, "1"), dec(t, "2000.00")),
		ItemAmount(dec(t, "5"), dec(t, "100.00")),
	})
	tax := TaxAmount(subtotal, dec(t, "20"))
	total := Total(subtotal, tax)

	if subtotal.StringFixed(2) != "2500.00" || tax.StringFixed(2) != "500.00" || total.StringFixed(2) != "3000.00" {
		t.Fatalf("got subtotal=%s tax=%s total=%s", subtotal, tax, total)
	}
	if again := Total(subtotal, TaxAmount(subtotal, dec(t, "20"))); !again.Equal(total) {
		t.Errorf("recomputed total %s differs from %s", again, total)
	}
}

func TestFormat(t *testing.T) {
	if got := Format(dec(t, "3000")); got != "3000.00" {
		t.Errorf("Format() = %q, want %q", got, "3000.00")
	}
}
