package calc

import (
	"fmt"

	"invoicedesk/internal/model"
)

// Editable line-item fields.
const (
	FieldDescription = "description"
	FieldQuantity    = "quantity"
	FieldRate        = "rate"
	FieldAmount      = "amount"
)

// Edit is a single cell change on a quantity/rate/amount row.
type Edit struct {
	Index  int     `json:"index"`
	Field  string  `json:"field" binding:"required,oneof=description quantity rate amount"`
	Value  float64 `json:"value"`
	Text   string  `json:"text"`
	IsNote *bool   `json:"isNote,omitempty"`
}

// ApplyEdit returns a copy of items with e applied.
// Quantity and rate edits recompute the amount. An amount edit keeps the typed
// value and back-solves the rate when the quantity is positive.
func ApplyEdit(items []model.LineItem, e Edit) ([]model.LineItem, error) {
	if e.Index < 0 || e.Index >= len(items) {
		return nil, fmt.Errorf("item index %d out of range", e.Index)
	}
	rows := make([]model.LineItem, len(items))
	copy(rows, items)

	it := &rows[e.Index]
	if e.IsNote != nil {
		it.IsNote = *e.IsNote
	}
	switch e.Field {
	case FieldDescription:
		it.Description = e.Text
	case FieldQuantity:
		it.Quantity = e.Value
		it.Amount = it.Quantity * it.Rate
	case FieldRate:
		it.Rate = e.Value
		it.Amount = it.Quantity * it.Rate
	case FieldAmount:
		if it.Quantity > 0 {
			it.Rate = e.Value / it.Quantity
		}
		it.Amount = e.Value
	default:
		return nil, fmt.Errorf("unknown item field %q", e.Field)
	}
	return rows, nil
}

// ApplyProformaEdit applies an edit to a proforma row. Only the amount and
// description are numeric-aware; the unit price is free text.
func ApplyProformaEdit(items []model.ProformaItem, e Edit) ([]model.ProformaItem, error) {
	if e.Index < 0 || e.Index >= len(items) {
		return nil, fmt.Errorf("item index %d out of range", e.Index)
	}
	rows := make([]model.ProformaItem, len(items))
	copy(rows, items)

	switch e.Field {
	case FieldDescription:
		rows[e.Index].Description = e.Text
	case FieldAmount:
		rows[e.Index].Amount = e.Value
	default:
		return nil, fmt.Errorf("field %q is not editable on proforma items", e.Field)
	}
	return rows, nil
}

// ApplyLocalProformaEdit maps quantity to kilograms and rate to the unit price.
// The row total is recomputed by LocalProformaTotals.
func ApplyLocalProformaEdit(items []model.LocalProformaItem, e Edit) ([]model.LocalProformaItem, error) {
	if e.Index < 0 || e.Index >= len(items) {
		return nil, fmt.Errorf("item index %d out of range", e.Index)
	}
	rows := make([]model.LocalProformaItem, len(items))
	copy(rows, items)

	switch e.Field {
	case FieldDescription:
		rows[e.Index].ItemDescription = e.Text
	case FieldQuantity:
		rows[e.Index].QuantityInKg = e.Value
	case FieldRate:
		rows[e.Index].UnitPriceTk = e.Value
	default:
		return nil, fmt.Errorf("field %q is not editable on local proforma items", e.Field)
	}
	return rows, nil
}

// ApplyLocalChalanEdit supports description and quantity changes.
func ApplyLocalChalanEdit(items []model.LocalChalanItem, e Edit) ([]model.LocalChalanItem, error) {
	if e.Index < 0 || e.Index >= len(items) {
		return nil, fmt.Errorf("item index %d out of range", e.Index)
	}
	rows := make([]model.LocalChalanItem, len(items))
	copy(rows, items)

	switch e.Field {
	case FieldDescription:
		rows[e.Index].Description = e.Text
	case FieldQuantity:
		rows[e.Index].Quantity = e.Value
	default:
		return nil, fmt.Errorf("field %q is not editable on chalan items", e.Field)
	}
	return rows, nil
}
