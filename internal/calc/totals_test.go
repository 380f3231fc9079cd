package calc

import (
	"math"
	"testing"

	"invoicedesk/internal/model"
)

func widget() []model.LineItem {
	return []model.LineItem{{Description: "Widget", Quantity: 2, Rate: 50, Amount: 100}}
}

func TestInvoiceTotals(t *testing.T) {
	tests := []struct {
		name       string
		items      []model.LineItem
		taxRate    float64
		commission float64
		currency   string
		wantRows   int
		subtotal   float64
		tax        float64
		total      float64
	}{
		{
			name:     "plain invoice",
			items:    widget(),
			taxRate:  10,
			wantRows: 1,
			subtotal: 100, tax: 10, total: 110,
		},
		{
			name:       "commission mode bills only the commission row",
			items:      widget(),
			taxRate:    10,
			commission: 5,
			wantRows:   2,
			subtotal:   5, tax: 0.5, total: 5.5,
		},
		{
			name: "notes never count",
			items: []model.LineItem{
				{Description: "Widget", Quantity: 1, Rate: 20, Amount: 20},
				{Description: "shipped by sea", Amount: 999, IsNote: true},
			},
			wantRows: 2,
			subtotal: 20, tax: 0, total: 20,
		},
		{
			name: "commission skipped without product base",
			items: []model.LineItem{
				{Description: "Service fee", Quantity: 0, Rate: 40, Amount: 40},
			},
			commission: 5,
			wantRows:   1,
			subtotal:   40, tax: 0, total: 40,
		},
		{
			name: "commission mode without product base bills zero-quantity rows only",
			items: []model.LineItem{
				{Description: "Credit", Quantity: -1, Rate: 10, Amount: -10},
				{Description: "Widget", Quantity: 2, Rate: 0, Amount: 0},
			},
			taxRate:    10,
			commission: 5,
			wantRows:   2,
			subtotal:   0, tax: 0, total: 0,
		},
		{
			name:     "empty items",
			items:    nil,
			taxRate:  10,
			wantRows: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := InvoiceTotals(tt.items, tt.taxRate, tt.commission, tt.currency)
			if len(got.Items) != tt.wantRows {
				t.Fatalf("rows = %d, want %d", len(got.Items), tt.wantRows)
			}
			if !near(got.Subtotal, tt.subtotal) || !near(got.TaxAmount, tt.tax) || !near(got.Total, tt.total) {
				t.Errorf("totals = %v/%v/%v, want %v/%v/%v",
					got.Subtotal, got.TaxAmount, got.Total, tt.subtotal, tt.tax, tt.total)
			}
		})
	}
}

func TestInvoiceTotalsCommissionRow(t *testing.T) {
	got := InvoiceTotals(widget(), 10, 5, "")
	row := got.Items[len(got.Items)-1]

	if !IsCommissionRow(row) {
		t.Fatalf("last row %+v is not a commission row", row)
	}
	if row.Description != "Commission 5% of EUR 100.00" {
		t.Errorf("description = %q", row.Description)
	}
	if row.Amount != 5 || row.Rate != 5 {
		t.Errorf("amount/rate = %v/%v, want 5/5", row.Amount, row.Rate)
	}

	usd := InvoiceTotals(widget(), 0, 2.5, "USD")
	if d := usd.Items[1].Description; d != "Commission 2.5% of USD 100.00" {
		t.Errorf("description = %q", d)
	}
}

func TestInvoiceTotalsIdempotent(t *testing.T) {
	items := []model.LineItem{
		{Description: "A", Quantity: 3, Rate: 33.33, Amount: 99.99},
		{Description: "B", Quantity: 1, Rate: 0.1, Amount: 0.1},
		{Description: "note", IsNote: true},
	}
	for _, pct := range []float64{0, 3.5, 12} {
		first := InvoiceTotals(items, 7.5, pct, "EUR")
		second := InvoiceTotals(first.Items, 7.5, pct, "EUR")

		if first.Subtotal != second.Subtotal || first.TaxAmount != second.TaxAmount || first.Total != second.Total {
			t.Errorf("pct %v: drift %+v -> %+v", pct, first, second)
		}
		if len(first.Items) != len(second.Items) {
			t.Errorf("pct %v: rows %d -> %d", pct, len(first.Items), len(second.Items))
		}
	}
}

func TestInvoiceTotalsSingleCommissionRow(t *testing.T) {
	items := widget()
	for i := 0; i < 5; i++ {
		items = InvoiceTotals(items, 0, 7, "EUR").Items
	}
	count := 0
	for _, it := range items {
		if IsCommissionRow(it) {
			count++
			if want := Round2(ProductBase(items) * 7 / 100); it.Amount != want {
				t.Errorf("commission amount = %v, want %v", it.Amount, want)
			}
		}
	}
	if count != 1 {
		t.Fatalf("commission rows = %d, want 1", count)
	}
}

func TestInvoiceTotalsDropsCommissionWhenDisabled(t *testing.T) {
	withCommission := InvoiceTotals(widget(), 0, 5, "EUR")
	got := InvoiceTotals(withCommission.Items, 0, 0, "EUR")
	if len(got.Items) != 1 || got.Subtotal != 100 {
		t.Errorf("got %+v, want the single product row billed at 100", got)
	}
}

func TestInvoiceTotalsDoesNotMutateInput(t *testing.T) {
	items := widget()
	InvoiceTotals(items, 10, 5, "EUR")
	if len(items) != 1 || items[0].Amount != 100 {
		t.Errorf("input mutated: %+v", items)
	}
}

func TestLocalBillTotals(t *testing.T) {
	items := []model.LineItem{
		{Description: "Rice", Quantity: 2, Rate: 50, Amount: 100},
		{Description: "Discount", Quantity: 0, Rate: 0, Amount: -10},
		{Description: "Commission 5% of EUR 1.00", Quantity: 0, Amount: 5},
		{Description: "deliver before noon", IsNote: true, Amount: 42},
	}
	got := LocalBillTotals(items, 15)
	if !near(got.Subtotal, 95) || !near(got.TaxAmount, 14.25) || !near(got.Total, 109.25) {
		t.Errorf("got %+v", got)
	}
	if len(got.Items) != 4 {
		t.Errorf("rows = %d, want 4", len(got.Items))
	}
}

func TestProformaTotal(t *testing.T) {
	items := []model.ProformaItem{{Amount: 1200.5}, {Amount: 99.5}, {}}
	if got := ProformaTotal(items); got != 1300 {
		t.Errorf("ProformaTotal = %v, want 1300", got)
	}
}

func TestLocalProformaTotals(t *testing.T) {
	items := []model.LocalProformaItem{
		{Sln: 7, ItemDescription: "Potato", QuantityInKg: 100, UnitPriceTk: 25, TotalPriceTk: 1},
		{Sln: 3, ItemDescription: "Onion", QuantityInKg: 50.5, UnitPriceTk: 40},
	}
	rows, grand, qty := LocalProformaTotals(items)
	if rows[0].Sln != 1 || rows[1].Sln != 2 {
		t.Errorf("sln = %d,%d want 1,2", rows[0].Sln, rows[1].Sln)
	}
	if rows[0].TotalPriceTk != 2500 || rows[1].TotalPriceTk != 2020 {
		t.Errorf("row totals = %v,%v", rows[0].TotalPriceTk, rows[1].TotalPriceTk)
	}
	if grand != 4520 || qty != 150.5 {
		t.Errorf("grand/qty = %v/%v, want 4520/150.5", grand, qty)
	}
	if items[0].Sln != 7 {
		t.Errorf("input mutated")
	}
}

func TestLocalChalanTotals(t *testing.T) {
	rows, qty := LocalChalanTotals([]model.LocalChalanItem{
		{Sln: 9, Description: "Bags", Unit: "pcs", Quantity: 10},
		{Sln: 9, Description: "Sacks", Unit: "pcs", Quantity: 2.5},
	})
	if rows[0].Sln != 1 || rows[1].Sln != 2 || qty != 12.5 {
		t.Errorf("rows %+v qty %v", rows, qty)
	}
}

func TestRound2(t *testing.T) {
	tests := map[float64]float64{
		1.005:  1.01,
		2.675:  2.68,
		-1.005: -1.01,
		5:      5,
		0.125:  0.13,
	}
	for in, want := range tests {
		if got := Round2(in); got != want {
			t.Errorf("Round2(%v) = %v, want %v", in, got, want)
		}
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
