package loan

import (
	"fmt"
	"strings"
	"time"

	"agricredit-backend/internal/domain/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = fmt.Errorf("loan %w", errs.ErrNotFound)
	ErrNotPending    = fmt.Errorf("%w: loan is not in pending status", errs.ErrInvalidState)
	ErrNotApproved   = fmt.Errorf("%w: loan is not approved", errs.ErrInvalidState)
	ErrUnknownStatus = fmt.Errorf("%w: unknown loan status", errs.ErrValidation)
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusDisbursed Status = "DISBURSED"
	StatusClosed    Status = "CLOSED"
	StatusDefaulted Status = "DEFAULTED"
)

// ParseStatus accepts any casing and returns the canonical name.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusPending, StatusApproved, StatusRejected, StatusDisbursed, StatusClosed, StatusDefaulted:
		return st, nil
	}
	return "", ErrUnknownStatus
}

// HasLender reports whether a loan in this status must carry a lender.
func (s Status) HasLender() bool {
	switch s {
	case StatusApproved, StatusDisbursed, StatusClosed, StatusDefaulted:
		return true
	}
	return false
}

type Loan struct {
	ID               uint64          `gorm:"primaryKey;column:id" json:"id"`
	FarmerID         uint64          `gorm:"not null;index:idx_loans_farmer_status,priority:1" json:"farmer_id"`
	LenderID         *uint64         `gorm:"index:idx_loans_lender" json:"lender_id,omitempty"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	Purpose          string          `gorm:"size:255;not null" json:"purpose"`
	InterestRate     float64         `gorm:"not null" json:"interest_rate"`
	DurationInMonths int             `gorm:"not null" json:"duration_in_months"`
	Status           Status          `gorm:"size:16;not null;index:idx_loans_farmer_status,priority:2;index:idx_loans_status" json:"status"`
	AppliedDate      time.Time       `gorm:"not null" json:"applied_date"`
	ApprovedDate     *time.Time      `json:"approved_date,omitempty"`
	DisbursementDate *time.Time      `json:"disbursement_date,omitempty"`
	DueDate          time.Time       `gorm:"not null" json:"due_date"`
	ClosedDate       *time.Time      `json:"closed_date,omitempty"`
	Remarks          string          `gorm:"size:1000" json:"remarks"`
	IntegrityHash    string          `gorm:"size:66" json:"integrity_hash"`
	CreatedAt        time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Loan) TableName() string { return "loans" }
