package service

import (
	"fmt"
	"time"
)

// Numbering builds the suggested invoiceNumber for a new document.
// The suggestion is advisory; users may overwrite it and nothing enforces uniqueness.
type Numbering struct {
	// Letters precedes the YYYYMMDD date, e.g. "IGS".
	Letters string
	// Format appends the per-day sequence to the date prefix.
	Format func(prefix string, next int64) string
}

// Prefix returns Letters followed by the local calendar date of now.
func (n Numbering) Prefix(now time.Time) string {
	return n.Letters + now.Format("20060102")
}

var (
	// SequentialNumbering yields IGS2025030101, IGS2025030102, ...
	SequentialNumbering = Numbering{
		Letters: "IGS",
		Format: func(prefix string, next int64) string {
			return fmt.Sprintf("%s%02d", prefix, next)
		},
	}

	// ProformaNumbering yields GD20250301SAD-1, GD20250301SAD-2, ...
	ProformaNumbering = Numbering{
		Letters: "GD",
		Format: func(prefix string, next int64) string {
			return fmt.Sprintf("%sSAD-%d", prefix, next)
		},
	}

	// DatePrefixNumbering yields the bare IGS date prefix for every document of
	// the day. Same-day documents share a suggestion until the user edits it.
	DatePrefixNumbering = Numbering{
		Letters: "IGS",
		Format: func(prefix string, _ int64) string {
			return prefix
		},
	}
)
