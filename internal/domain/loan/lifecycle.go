package loan

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"agricredit-backend/internal/domain/errs"
	"agricredit-backend/pkg/clock"
	"agricredit-backend/pkg/id"

	"github.com/shopspring/decimal"
)

// AmountPlaces matches the decimal(18,2) amount column.
const AmountPlaces = 2

// Application carries the borrower-supplied fields of a new loan.
type Application struct {
	FarmerID         uint64
	Amount           decimal.Decimal
	Purpose          string
	InterestRate     float64
	DurationInMonths int
}

func (a Application) Validate() error {
	var bad []string
	if a.FarmerID == 0 {
		bad = append(bad, "farmer_id is required")
	}
	if !a.Amount.IsPositive() {
		bad = append(bad, "amount must be positive")
	} else if !a.Amount.Equal(a.Amount.Truncate(AmountPlaces)) {
		bad = append(bad, "amount must have at most 2 decimal places")
	}
	if strings.TrimSpace(a.Purpose) == "" {
		bad = append(bad, "purpose is required")
	}
	if a.InterestRate < 0 {
		bad = append(bad, "interest_rate must not be negative")
	}
	if a.DurationInMonths < 1 {
		bad = append(bad, "duration_in_months must be positive")
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", errs.ErrValidation, strings.Join(bad, "; "))
	}
	return nil
}

// New builds a PENDING loan applied at now. Applied and due dates derive
// from the same instant, stamped at storage precision so the integrity hash
// can be recomputed from a reloaded row.
func New(a Application, now time.Time) (*Loan, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}
	now = clock.Stamp(now)
	return &Loan{
		FarmerID:         a.FarmerID,
		Amount:           a.Amount,
		Purpose:          strings.TrimSpace(a.Purpose),
		InterestRate:     a.InterestRate,
		DurationInMonths: a.DurationInMonths,
		Status:           StatusPending,
		AppliedDate:      now,
		DueDate:          AddMonths(now, a.DurationInMonths),
		IntegrityHash:    IntegrityHash(a.FarmerID, a.Amount, now),
	}, nil
}

// Approve moves PENDING -> APPROVED.
func (l *Loan) Approve(lenderID uint64, at time.Time) error {
	if l.Status != StatusPending {
		return ErrNotPending
	}
	at = clock.Stamp(at)
	l.LenderID = &lenderID
	l.Status = StatusApproved
	l.ApprovedDate = &at
	return nil
}

// Reject moves PENDING -> REJECTED.
func (l *Loan) Reject(remarks string) error {
	if l.Status != StatusPending {
		return ErrNotPending
	}
	l.Status = StatusRejected
	l.Remarks = remarks
	return nil
}

// Disburse moves APPROVED -> DISBURSED.
func (l *Loan) Disburse(at time.Time) error {
	if l.Status != StatusApproved {
		return ErrNotApproved
	}
	at = clock.Stamp(at)
	l.Status = StatusDisbursed
	l.DisbursementDate = &at
	return nil
}

// AddMonths adds calendar months, clamping to the last day of the target
// month (Jan 31 + 1 month = Feb 28/29) instead of overflowing like AddDate.
func AddMonths(t time.Time, months int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m+time.Month(months), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := daysIn(first); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

func daysIn(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}

func IntegrityHash(farmerID uint64, amount decimal.Decimal, applied time.Time) string {
	return id.Fingerprint(
		strconv.FormatUint(farmerID, 10),
		amount.String(),
		applied.UTC().Format(time.RFC3339Nano),
	)
}
