package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EventInvoiceCreated       = "invoice_created"
	EventInvoiceStatusChanged = "invoice_status_changed"
	EventInvoiceDeleted       = "invoice_deleted"
)

// EventData is the snapshot stored with an analytics event
type EventData struct {
	Amount   float64 `json:"amount"`
	Status   string  `json:"status"`
	Metadata string  `json:"metadata,omitempty"`
}

// AnalyticsEvent is an append-only record of an invoice lifecycle change.
// InvoiceID is kept after the invoice is deleted; nothing enforces the reference.
type AnalyticsEvent struct {
	ID        uuid.UUID                     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID                     `gorm:"type:uuid;not null;index;index:,composite:user_event,priority:1" json:"userId"`
	InvoiceID *uuid.UUID                    `gorm:"type:uuid;index" json:"invoiceId,omitempty"`
	EventType string                        `gorm:"type:varchar(50);not null;index:,composite:user_event,priority:2" json:"eventType"`
	EventData datatypes.JSONType[EventData] `json:"eventData"`
	CreatedAt time.Time                     `gorm:"index" json:"createdAt"`
}
