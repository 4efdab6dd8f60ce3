package loanmock

import (
	"context"
	"errors"

	domain "agricredit-backend/internal/domain/loan"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("loanmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
// Create and Save default to no-ops; readers default to errUnimplemented.
type Repo struct {
	CreateFn                func(ctx context.Context, l *domain.Loan) error
	SaveFn                  func(ctx context.Context, l *domain.Loan) error
	GetByIDFn               func(ctx context.Context, id uint64) (*domain.Loan, error)
	GetByIDForUpdateFn      func(ctx context.Context, id uint64) (*domain.Loan, error)
	ListByFarmerFn          func(ctx context.Context, farmerID uint64) ([]domain.Loan, error)
	ListByLenderFn          func(ctx context.Context, lenderID uint64) ([]domain.Loan, error)
	ListByStatusFn          func(ctx context.Context, status domain.Status) ([]domain.Loan, error)
	ListByFarmerAndStatusFn func(ctx context.Context, farmerID uint64, status domain.Status) ([]domain.Loan, error)
	ListAllFn               func(ctx context.Context) ([]domain.Loan, error)
}

func (m *Repo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Loan, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByFarmer(ctx context.Context, farmerID uint64) ([]domain.Loan, error) {
	if m.ListByFarmerFn != nil {
		return m.ListByFarmerFn(ctx, farmerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByLender(ctx context.Context, lenderID uint64) ([]domain.Loan, error) {
	if m.ListByLenderFn != nil {
		return m.ListByLenderFn(ctx, lenderID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Loan, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByFarmerAndStatus(ctx context.Context, farmerID uint64, status domain.Status) ([]domain.Loan, error) {
	if m.ListByFarmerAndStatusFn != nil {
		return m.ListByFarmerAndStatusFn(ctx, farmerID, status)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Loan, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, errUnimplemented
}
