package gormdb

import (
	"context"

	"agricredit-backend/internal/domain/loan"
	"agricredit-backend/internal/domain/receipt"
	"agricredit-backend/internal/domain/uow"

	"gorm.io/gorm"
)

type GormUoW struct{ db *gorm.DB }

func NewGormUoW(db *gorm.DB) *GormUoW { return &GormUoW{db: db} }

func reposFor(tx *gorm.DB) uow.Repos {
	return uow.Repos{
		Loans:    &LoanRepository{db: tx},
		Receipts: &ReceiptRepository{db: tx},
		Users:    &UserRepository{db: tx},
	}
}

func (u *GormUoW) WithinTx(ctx context.Context, fn func(r uow.Repos) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(reposFor(tx))
	})
}

func (u *GormUoW) WithinLoanTx(ctx context.Context, loanID uint64, fn func(r uow.Repos, l *loan.Loan) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		// lock the loan row up-front so concurrent transitions serialize
		l, err := r.Loans.GetByIDForUpdate(ctx, loanID)
		if err != nil {
			return err
		}
		return fn(r, l)
	})
}

func (u *GormUoW) WithinReceiptTx(ctx context.Context, receiptID uint64, fn func(r uow.Repos, rc *receipt.Receipt) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		r := reposFor(tx)
		rc, err := r.Receipts.GetByIDForUpdate(ctx, receiptID)
		if err != nil {
			return err
		}
		return fn(r, rc)
	})
}
