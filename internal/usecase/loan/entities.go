package loan

import (
	"time"

	domain "agricredit-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type ApplyInput struct {
	FarmerID         uint64          `json:"farmer_id"`
	Amount           decimal.Decimal `json:"amount"`
	Purpose          string          `json:"purpose"`
	InterestRate     float64         `json:"interest_rate"`
	DurationInMonths int             `json:"duration_in_months"`
}

// LoanDTO is the read view of a loan with owner names resolved.
type LoanDTO struct {
	ID               uint64          `json:"id"`
	FarmerID         uint64          `json:"farmer_id"`
	FarmerName       string          `json:"farmer_name"`
	LenderID         *uint64         `json:"lender_id,omitempty"`
	LenderName       string          `json:"lender_name,omitempty"`
	Amount           decimal.Decimal `json:"amount"`
	Purpose          string          `json:"purpose"`
	InterestRate     float64         `json:"interest_rate"`
	DurationInMonths int             `json:"duration_in_months"`
	Status           string          `json:"status"`
	AppliedDate      time.Time       `json:"applied_date"`
	ApprovedDate     *time.Time      `json:"approved_date,omitempty"`
	DisbursementDate *time.Time      `json:"disbursement_date,omitempty"`
	DueDate          time.Time       `json:"due_date"`
	ClosedDate       *time.Time      `json:"closed_date,omitempty"`
	Remarks          string          `json:"remarks,omitempty"`
	IntegrityHash    string          `json:"integrity_hash"`
}

func toDTO(l *domain.Loan, names map[uint64]string) *LoanDTO {
	dto := &LoanDTO{
		ID:               l.ID,
		FarmerID:         l.FarmerID,
		FarmerName:       names[l.FarmerID],
		Amount:           l.Amount,
		Purpose:          l.Purpose,
		InterestRate:     l.InterestRate,
		DurationInMonths: l.DurationInMonths,
		Status:           string(l.Status),
		AppliedDate:      l.AppliedDate,
		ApprovedDate:     l.ApprovedDate,
		DisbursementDate: l.DisbursementDate,
		DueDate:          l.DueDate,
		ClosedDate:       l.ClosedDate,
		Remarks:          l.Remarks,
		IntegrityHash:    l.IntegrityHash,
	}
	if l.LenderID != nil {
		lender := *l.LenderID
		dto.LenderID = &lender
		dto.LenderName = names[lender]
	}
	return dto
}
