package uowmock

import (
	"context"
	"errors"

	"agricredit-backend/internal/domain/loan"
	"agricredit-backend/internal/domain/receipt"
	"agricredit-backend/internal/domain/uow"
)

// Ensure compile-time compliance
var _ uow.UnitOfWork = (*UoW)(nil)

var errUnimplemented = errors.New("uowmock: method not implemented")

// UoW is a function-backed mock that satisfies uow.UnitOfWork.
// Fill in the function fields you need in a test; unfilled ones return errUnimplemented.
type UoW struct {
	WithinTxFn        func(ctx context.Context, fn func(r uow.Repos) error) error
	WithinLoanTxFn    func(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error
	WithinReceiptTxFn func(ctx context.Context, receiptID uint64, fn func(r uow.Repos, rc *receipt.Receipt) error) error
}

func New() *UoW { return &UoW{} }

// Passthrough runs every callback directly against repos, loading the locked
// row through the repos' GetByIDForUpdate like the real implementation.
func Passthrough(repos uow.Repos) *UoW {
	return &UoW{
		WithinTxFn: func(_ context.Context, fn func(uow.Repos) error) error {
			return fn(repos)
		},
		WithinLoanTxFn: func(ctx context.Context, loanID uint64, fn func(uow.Repos, *loan.Loan) error) error {
			l, err := repos.Loans.GetByIDForUpdate(ctx, loanID)
			if err != nil {
				return err
			}
			return fn(repos, l)
		},
		WithinReceiptTxFn: func(ctx context.Context, receiptID uint64, fn func(uow.Repos, *receipt.Receipt) error) error {
			rc, err := repos.Receipts.GetByIDForUpdate(ctx, receiptID)
			if err != nil {
				return err
			}
			return fn(repos, rc)
		},
	}
}

func (m *UoW) WithWithinTx(fn func(context.Context, func(uow.Repos) error) error) *UoW {
	m.WithinTxFn = fn
	return m
}
func (m *UoW) WithWithinLoanTx(fn func(context.Context, uint64, func(uow.Repos, *loan.Loan) error) error) *UoW {
	m.WithinLoanTxFn = fn
	return m
}
func (m *UoW) Reset() { *m = UoW{} }

// Methods implementing UnitOfWork
func (m *UoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	if m.WithinTxFn != nil {
		return m.WithinTxFn(ctx, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinLoanTx(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error {
	if m.WithinLoanTxFn != nil {
		return m.WithinLoanTxFn(ctx, loanID, fn)
	}
	return errUnimplemented
}
func (m *UoW) WithinReceiptTx(ctx context.Context, receiptID uint64, fn func(r uow.Repos, rc *receipt.Receipt) error) error {
	if m.WithinReceiptTxFn != nil {
		return m.WithinReceiptTxFn(ctx, receiptID, fn)
	}
	return errUnimplemented
}
