package uow

import (
	"context"

	"agricredit-backend/internal/domain/loan"
	"agricredit-backend/internal/domain/receipt"
	"agricredit-backend/internal/domain/user"
)

// Repos are bound to the transaction opened by the UnitOfWork.
type Repos struct {
	Loans    loan.Repository
	Receipts receipt.Repository
	Users    user.Repository
}

type UnitOfWork interface {
	// plain tx
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	// lock the loan row first, then pass it in; loan.ErrNotFound if missing
	WithinLoanTx(ctx context.Context, loanID uint64, fn func(r Repos, l *loan.Loan) error) error
	// same for a warehouse receipt; receipt.ErrNotFound if missing
	WithinReceiptTx(ctx context.Context, receiptID uint64, fn func(r Repos, rc *receipt.Receipt) error) error
}
