package model

import (
	"time"

	"github.com/google/uuid"
)

// Document status enum constants
const (
	StatusDraft     = "draft"
	StatusSent      = "sent"
	StatusPaid      = "paid"
	StatusOverdue   = "overdue"
	StatusCancelled = "cancelled"
)

// Statuses lists every accepted document status in display order.
var Statuses = []string{StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusCancelled}

// IsValidStatus reports whether s is one of the fixed document statuses.
func IsValidStatus(s string) bool {
	for _, status := range Statuses {
		if s == status {
			return true
		}
	}
	return false
}

// DocumentBase carries the columns shared by every document kind.
// Ownership is stamped by the server on create and never changes afterwards.
type DocumentBase struct {
	ID            uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index;index:,composite:user_status,priority:1" json:"userId"`
	InvoiceNumber string    `gorm:"type:varchar(50);not null;index" json:"invoiceNumber"`
	Status        string    `gorm:"type:varchar(20);index:,composite:user_status,priority:2" json:"status,omitempty"`
	CreatedAt     time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// Base exposes the shared columns of any document embedding DocumentBase.
func (b *DocumentBase) Base() *DocumentBase {
	return b
}

// Document is implemented by pointers to every persisted document kind.
type Document interface {
	Base() *DocumentBase
}

// DocumentPtr constrains a type parameter to a pointer-to-T that is a Document.
type DocumentPtr[T any] interface {
	*T
	Document
}
