package service

import (
	"context"
	"fmt"
	"strings"

	"invoicedesk/internal/calc"
	"invoicedesk/internal/model"
	"invoicedesk/internal/repository"

	"gorm.io/datatypes"
)

// Route segments for each document kind
const (
	KindInvoices         = "invoices"
	KindProformaInvoices = "proforma-invoices"
	KindLocalBills       = "local-bills"
	KindLocalChalans     = "local-chalans"
	KindLocalProformas   = "local-proformas"
)

// InvoiceKind recomputes commission totals and records analytics events.
func InvoiceKind(events repository.AnalyticsRepository) Kind[model.Invoice] {
	return Kind[model.Invoice]{
		Name:      KindInvoices,
		Label:     "Invoice",
		Numbering: SequentialNumbering,
		Recalculate: func(inv *model.Invoice) {
			t := calc.InvoiceTotals(inv.Items, inv.TaxRate, inv.CommissionPercent, inv.Currency)
			inv.Items, inv.Subtotal, inv.TaxAmount, inv.Total = t.Items, t.Subtotal, t.TaxAmount, t.Total
		},
		Validate: func(inv *model.Invoice) error {
			if inv.Status == "" {
				return invalid("status", "is required")
			}
			if inv.CommissionPercent < 0 {
				return invalid("commissionPercent", "must not be negative")
			}
			return validateBill(inv.InvoiceNumber, inv.ClientName, len(inv.Items))
		},
		Edit: func(inv *model.Invoice, e calc.Edit) error {
			items, err := calc.ApplyEdit(inv.Items, e)
			if err != nil {
				return err
			}
			inv.Items = items
			return nil
		},
		Hooks: invoiceEvents(events),
	}
}

// LocalBillKind is the invoice flow without commission or analytics.
func LocalBillKind() Kind[model.LocalBill] {
	return Kind[model.LocalBill]{
		Name:      KindLocalBills,
		Label:     "Local bill",
		Numbering: SequentialNumbering,
		Recalculate: func(bill *model.LocalBill) {
			t := calc.LocalBillTotals(bill.Items, bill.TaxRate)
			bill.Items, bill.Subtotal, bill.TaxAmount, bill.Total = t.Items, t.Subtotal, t.TaxAmount, t.Total
		},
		Validate: func(bill *model.LocalBill) error {
			return validateBill(bill.InvoiceNumber, bill.ClientName, len(bill.Items))
		},
		Edit: func(bill *model.LocalBill, e calc.Edit) error {
			items, err := calc.ApplyEdit(bill.Items, e)
			if err != nil {
				return err
			}
			bill.Items = items
			return nil
		},
	}
}

func ProformaInvoiceKind() Kind[model.ProformaInvoice] {
	return Kind[model.ProformaInvoice]{
		Name:      KindProformaInvoices,
		Label:     "Proforma invoice",
		Numbering: ProformaNumbering,
		Recalculate: func(pi *model.ProformaInvoice) {
			if pi.Items == nil {
				pi.Items = datatypes.JSONSlice[model.ProformaItem]{}
			}
			pi.Total = calc.ProformaTotal(pi.Items)
		},
		Validate: func(pi *model.ProformaInvoice) error {
			if err := requireNumber(pi.InvoiceNumber); err != nil {
				return err
			}
			if strings.TrimSpace(pi.CompanyName) == "" {
				return invalid("companyName", "is required")
			}
			return nil
		},
		Edit: func(pi *model.ProformaInvoice, e calc.Edit) error {
			items, err := calc.ApplyProformaEdit(pi.Items, e)
			if err != nil {
				return err
			}
			pi.Items = items
			return nil
		},
	}
}

// LocalProformaKind renumbers rows and recomputes kilogram totals.
func LocalProformaKind() Kind[model.LocalProforma] {
	return Kind[model.LocalProforma]{
		Name:      KindLocalProformas,
		Label:     "Local proforma",
		Numbering: DatePrefixNumbering,
		Recalculate: func(lp *model.LocalProforma) {
			lp.Items, lp.GrandTotal, lp.TotalQuantity = calc.LocalProformaTotals(lp.Items)
		},
		Validate: func(lp *model.LocalProforma) error {
			return requireNumber(lp.InvoiceNumber)
		},
		Edit: func(lp *model.LocalProforma, e calc.Edit) error {
			items, err := calc.ApplyLocalProformaEdit(lp.Items, e)
			if err != nil {
				return err
			}
			lp.Items = items
			return nil
		},
	}
}

func LocalChalanKind() Kind[model.LocalChalan] {
	return Kind[model.LocalChalan]{
		Name:      KindLocalChalans,
		Label:     "Local chalan",
		Numbering: DatePrefixNumbering,
		Recalculate: func(lc *model.LocalChalan) {
			lc.Items, lc.TotalQuantity = calc.LocalChalanTotals(lc.Items)
		},
		Validate: func(lc *model.LocalChalan) error {
			return requireNumber(lc.InvoiceNumber)
		},
		Edit: func(lc *model.LocalChalan, e calc.Edit) error {
			items, err := calc.ApplyLocalChalanEdit(lc.Items, e)
			if err != nil {
				return err
			}
			lc.Items = items
			return nil
		},
	}
}

func requireNumber(number string) error {
	if strings.TrimSpace(number) == "" {
		return invalid("invoiceNumber", "is required")
	}
	return nil
}

func validateBill(number, clientName string, items int) error {
	if err := requireNumber(number); err != nil {
		return err
	}
	if strings.TrimSpace(clientName) == "" {
		return invalid("clientName", "client name is required")
	}
	if items == 0 {
		return invalid("items", "at least one line item is required")
	}
	return nil
}

// invoiceEvents appends an analytics event in the same transaction as each invoice mutation.
func invoiceEvents(events repository.AnalyticsRepository) Hooks[model.Invoice] {
	record := func(ctx context.Context, inv *model.Invoice, eventType string, amount float64) error {
		id := inv.ID
		event := &model.AnalyticsEvent{
			UserID:    inv.UserID,
			InvoiceID: &id,
			EventType: eventType,
			EventData: datatypes.NewJSONType(model.EventData{
				Amount: amount,
				Status: inv.Status,
			}),
		}
		if err := events.Append(ctx, event); err != nil {
			return fmt.Errorf("failed to record %s: %w", eventType, err)
		}
		return nil
	}

	return Hooks[model.Invoice]{
		Created: func(ctx context.Context, inv *model.Invoice) error {
			return record(ctx, inv, model.EventInvoiceCreated, inv.Total)
		},
		Updated: func(ctx context.Context, before, after *model.Invoice) error {
			if after.Status == before.Status {
				return nil
			}
			amount := after.Total
			if amount == 0 {
				amount = before.Total
			}
			return record(ctx, after, model.EventInvoiceStatusChanged, amount)
		},
		Removed: func(ctx context.Context, inv *model.Invoice) error {
			return record(ctx, inv, model.EventInvoiceDeleted, inv.Total)
		},
	}
}
