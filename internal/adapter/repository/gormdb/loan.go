package gormdb

import (
	"context"

	loanDomain "agricredit-backend/internal/domain/loan"

	"gorm.io/gorm"
)

type LoanRepository struct{ db *gorm.DB }

func NewLoanRepository(db *gorm.DB) *LoanRepository { return &LoanRepository{db: db} }

func (r *LoanRepository) Create(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Create(l).Error
}

func (r *LoanRepository) Save(ctx context.Context, l *loanDomain.Loan) error {
	return r.db.WithContext(ctx).Save(l).Error
}

func (r *LoanRepository) GetByID(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*loanDomain.Loan, error) {
	var out loanDomain.Loan
	if err := r.db.WithContext(ctx).Clauses(forUpdate).First(&out, id).Error; err != nil {
		return nil, notFound(err, loanDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *LoanRepository) ListByFarmer(ctx context.Context, farmerID uint64) ([]loanDomain.Loan, error) {
	return r.list(ctx, "farmer_id = ?", farmerID)
}

func (r *LoanRepository) ListByLender(ctx context.Context, lenderID uint64) ([]loanDomain.Loan, error) {
	return r.list(ctx, "lender_id = ?", lenderID)
}

func (r *LoanRepository) ListByStatus(ctx context.Context, status loanDomain.Status) ([]loanDomain.Loan, error) {
	return r.list(ctx, "status = ?", status)
}

func (r *LoanRepository) ListByFarmerAndStatus(ctx context.Context, farmerID uint64, status loanDomain.Status) ([]loanDomain.Loan, error) {
	return r.list(ctx, "farmer_id = ? AND status = ?", farmerID, status)
}

func (r *LoanRepository) ListAll(ctx context.Context) ([]loanDomain.Loan, error) {
	return r.list(ctx, "")
}

func (r *LoanRepository) list(ctx context.Context, where string, args ...any) ([]loanDomain.Loan, error) {
	var out []loanDomain.Loan
	q := r.db.WithContext(ctx)
	if where != "" {
		q = q.Where(where, args...)
	}
	res := q.Order("applied_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}
