package domain

import (
	"time"

	"github.com/lesezeit/lesezeit-server/internal/errors"
)

// DueStatus classifies a borrowing against its due date.
// It is derived at read time from the persisted dates and never stored.
type DueStatus string

const (
	DueStatusOnTime   DueStatus = "ON_TIME"
	DueStatusDueToday DueStatus = "DUE_TODAY"
	DueStatusOverdue  DueStatus = "OVERDUE"
)

// Borrowing links one customer to one media item for a loan period.
//
// Invariants:
//   - a media item is referenced by at most one borrowing at a time
//     (a customer may hold any number of concurrent borrowings);
//   - ExtendedOn, when set, is strictly after Dateborrowed;
//   - there is no "returned" state: deleting the borrowing is the return.
type Borrowing struct {
	ID           string    `json:"id"`
	Dateborrowed Date      `json:"dateborrowed,omitzero"`
	Duedate      Date      `json:"duedate,omitzero"`
	ExtendedOn   Date      `json:"extended_on,omitzero"`
	CustomerID   string    `json:"customer_id,omitempty"`
	MediaID      string    `json:"media_id,omitempty"`
	Customer     *Customer `json:"customer,omitempty"` // embedded on reads
	Media        *Media    `json:"media,omitempty"`    // embedded on reads
	CreatedAt    time.Time `json:"created_at,omitzero"`
	UpdatedAt    time.Time `json:"updated_at,omitzero"`
}

// Extended reports whether the loan has been extended.
func (b *Borrowing) Extended() bool {
	return !b.ExtendedOn.IsZero()
}

// DueStatus returns the loan's status relative to today.
func (b *Borrowing) DueStatus(today Date) DueStatus {
	switch {
	case today.Before(b.Duedate):
		return DueStatusOnTime
	case today.Equal(b.Duedate):
		return DueStatusDueToday
	default:
		return DueStatusOverdue
	}
}

// Overdue reports whether today is strictly after the due date.
func (b *Borrowing) Overdue(today Date) bool {
	return today.After(b.Duedate)
}

// Validate checks the borrowing's date invariants.
func (b *Borrowing) Validate() error {
	if b.Duedate.IsZero() {
		return errors.Validation("duedate is required")
	}
	if b.CustomerID == "" {
		return errors.Validation("customer is required")
	}
	if b.MediaID == "" {
		return errors.Validation("media is required")
	}
	if !b.ExtendedOn.IsZero() && !b.ExtendedOn.After(b.Dateborrowed) {
		return errors.Validationf("extended_on %s must be after dateborrowed %s", b.ExtendedOn, b.Dateborrowed)
	}
	return nil
}
