// Package calc derives document totals from line items.
// All functions are pure; callers own the slices they pass in.
package calc

import (
	"strconv"
	"strings"

	"invoicedesk/internal/model"

	"github.com/shopspring/decimal"
)

// CommissionPrefix marks a synthesized commission row.
const CommissionPrefix = "Commission "

// DefaultCurrency is used in the commission label when an invoice has none.
const DefaultCurrency = "EUR"

// Totals is the derived money summary of an invoice-shaped document.
type Totals struct {
	Items     []model.LineItem
	Subtotal  float64
	TaxAmount float64
	Total     float64
}

// Round2 rounds half away from zero to two decimals.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// IsCommissionRow reports whether item was synthesized by InvoiceTotals.
func IsCommissionRow(item model.LineItem) bool {
	return !item.IsNote && item.Quantity == 0 && strings.HasPrefix(item.Description, CommissionPrefix)
}

// ProductBase sums the amounts of non-note rows with a positive quantity.
func ProductBase(items []model.LineItem) float64 {
	base := decimal.Zero
	for _, it := range items {
		if !it.IsNote && it.Quantity > 0 {
			base = base.Add(decimal.NewFromFloat(it.Amount))
		}
	}
	return base.InexactFloat64()
}

// StripCommission returns items without any previously synthesized commission row.
func StripCommission(items []model.LineItem) []model.LineItem {
	out := make([]model.LineItem, 0, len(items))
	for _, it := range items {
		if IsCommissionRow(it) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// CommissionLabel renders the description of a commission row,
// e.g. "Commission 5% of EUR 1000.00".
func CommissionLabel(percent, base float64, currency string) string {
	if currency == "" {
		currency = DefaultCurrency
	}
	return CommissionPrefix + strconv.FormatFloat(percent, 'f', -1, 64) + "% of " +
		currency + " " + decimal.NewFromFloat(base).StringFixed(2)
}

// InvoiceTotals strips stale commission rows, appends a fresh one when
// commissionPercent and the product base are both positive, and computes totals.
//
// With a positive commissionPercent the subtotal is the sum of non-note rows
// with zero quantity, so product rows are listed but not billed even when
// no commission row could be added.
// Running it on its own output yields the same result.
func InvoiceTotals(items []model.LineItem, taxRate, commissionPercent float64, currency string) Totals {
	rows := StripCommission(items)
	base := ProductBase(rows)

	commissionMode := commissionPercent > 0
	if commissionMode && base > 0 {
		amount := Round2(base * commissionPercent / 100)
		rows = append(rows, model.LineItem{
			Description: CommissionLabel(commissionPercent, base, currency),
			Quantity:    0,
			Rate:        amount,
			Amount:      amount,
		})
	}

	subtotal := decimal.Zero
	for _, it := range rows {
		if it.IsNote {
			continue
		}
		if commissionMode && it.Quantity != 0 {
			continue
		}
		subtotal = subtotal.Add(decimal.NewFromFloat(it.Amount))
	}

	return withTax(rows, subtotal, taxRate)
}

// LocalBillTotals sums every non-note row and applies tax. There is no commission step.
func LocalBillTotals(items []model.LineItem, taxRate float64) Totals {
	rows := make([]model.LineItem, len(items))
	copy(rows, items)

	subtotal := decimal.Zero
	for _, it := range rows {
		if !it.IsNote {
			subtotal = subtotal.Add(decimal.NewFromFloat(it.Amount))
		}
	}
	return withTax(rows, subtotal, taxRate)
}

func withTax(rows []model.LineItem, subtotal decimal.Decimal, taxRate float64) Totals {
	tax := subtotal.Mul(decimal.NewFromFloat(taxRate)).Div(decimal.NewFromInt(100))
	return Totals{
		Items:     rows,
		Subtotal:  subtotal.InexactFloat64(),
		TaxAmount: tax.InexactFloat64(),
		Total:     subtotal.Add(tax).InexactFloat64(),
	}
}

// ProformaTotal is the plain sum of item amounts.
func ProformaTotal(items []model.ProformaItem) float64 {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(decimal.NewFromFloat(it.Amount))
	}
	return total.InexactFloat64()
}

// LocalProformaTotals recomputes each row's TotalPriceTk, renumbers Sln from 1,
// and returns the rows with the grand total and total quantity.
func LocalProformaTotals(items []model.LocalProformaItem) ([]model.LocalProformaItem, float64, float64) {
	rows := make([]model.LocalProformaItem, len(items))
	grand, qty := decimal.Zero, decimal.Zero
	for i, it := range items {
		price := decimal.NewFromFloat(it.QuantityInKg).Mul(decimal.NewFromFloat(it.UnitPriceTk))
		it.Sln = i + 1
		it.TotalPriceTk = price.InexactFloat64()
		rows[i] = it
		grand = grand.Add(price)
		qty = qty.Add(decimal.NewFromFloat(it.QuantityInKg))
	}
	return rows, grand.InexactFloat64(), qty.InexactFloat64()
}

// LocalChalanTotals renumbers Sln from 1 and sums the quantities.
func LocalChalanTotals(items []model.LocalChalanItem) ([]model.LocalChalanItem, float64) {
	rows := make([]model.LocalChalanItem, len(items))
	qty := decimal.Zero
	for i, it := range items {
		it.Sln = i + 1
		rows[i] = it
		qty = qty.Add(decimal.NewFromFloat(it.Quantity))
	}
	return rows, qty.InexactFloat64()
}
