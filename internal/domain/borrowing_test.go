package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/lesezeit/lesezeit-server/internal/errors"
)

func TestDueStatus(t *testing.T) {
	due := NewDate(2026, time.September, 11)
	b := &Borrowing{
		Dateborrowed: due.AddDays(-14),
		Duedate:      due,
	}

	tests := []struct {
		name  string
		today Date
		want  DueStatus
	}{
		{"day before due", due.AddDays(-1), DueStatusOnTime},
		{"weeks before due", due.AddDays(-30), DueStatusOnTime},
		{"due day", due, DueStatusDueToday},
		{"day after due", due.AddDays(1), DueStatusOverdue},
		{"long overdue", due.AddDays(365), DueStatusOverdue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.DueStatus(tt.today))
		})
	}
}

// Overdue(today) must agree with today > duedate for any pair of dates.
func TestOverdueMatchesDateComparison(t *testing.T) {
	due := NewDate(2026, time.March, 1)
	b := &Borrowing{Duedate: due}

	for offset := -30; offset <= 30; offset++ {
		today := due.AddDays(offset)
		assert.Equal(t, today.After(due), b.Overdue(today), "offset %d days", offset)
	}
}

func TestExtended(t *testing.T) {
	b := &Borrowing{}
	assert.False(t, b.Extended())

	b.ExtendedOn = Today()
	assert.True(t, b.Extended())
}

func TestValidate(t *testing.T) {
	borrowed := NewDate(2026, time.May, 1)

	valid := &Borrowing{
		CustomerID:   "cust-1",
		MediaID:      "med-1",
		Dateborrowed: borrowed,
		Duedate:      borrowed.AddDays(14),
	}
	assert.NoError(t, valid.Validate())

	// Extension strictly after the borrow date is fine.
	extended := *valid
	extended.ExtendedOn = borrowed.AddDays(7)
	assert.NoError(t, extended.Validate())

	// Extension on the borrow date itself is rejected.
	sameDay := *valid
	sameDay.ExtendedOn = borrowed
	assert.True(t, errors.Is(sameDay.Validate(), errors.ErrValidation))

	// Extension before the borrow date is rejected.
	backdated := *valid
	backdated.ExtendedOn = borrowed.AddDays(-1)
	assert.True(t, errors.Is(backdated.Validate(), errors.ErrValidation))

	missingDue := *valid
	missingDue.Duedate = Date{}
	assert.True(t, errors.Is(missingDue.Validate(), errors.ErrValidation))

	missingCustomer := *valid
	missingCustomer.CustomerID = ""
	assert.True(t, errors.Is(missingCustomer.Validate(), errors.ErrValidation))

	missingMedia := *valid
	missingMedia.MediaID = ""
	assert.True(t, errors.Is(missingMedia.Validate(), errors.ErrValidation))
}
