package receiptmock

import (
	"context"
	"errors"

	domain "agricredit-backend/internal/domain/receipt"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("receiptmock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn                func(ctx context.Context, r *domain.Receipt) error
	SaveFn                  func(ctx context.Context, r *domain.Receipt) error
	GetByIDFn               func(ctx context.Context, id uint64) (*domain.Receipt, error)
	GetByIDForUpdateFn      func(ctx context.Context, id uint64) (*domain.Receipt, error)
	ListByFarmerFn          func(ctx context.Context, farmerID uint64) ([]domain.Receipt, error)
	ListByStatusFn          func(ctx context.Context, status domain.Status) ([]domain.Receipt, error)
	ListByFarmerAndStatusFn func(ctx context.Context, farmerID uint64, status domain.Status) ([]domain.Receipt, error)
	ListByLocationFn        func(ctx context.Context, location string) ([]domain.Receipt, error)
	ListAllFn               func(ctx context.Context) ([]domain.Receipt, error)
}

func (m *Repo) Create(ctx context.Context, r *domain.Receipt) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, r *domain.Receipt) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.Receipt, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDForUpdate(ctx context.Context, id uint64) (*domain.Receipt, error) {
	if m.GetByIDForUpdateFn != nil {
		return m.GetByIDForUpdateFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByFarmer(ctx context.Context, farmerID uint64) ([]domain.Receipt, error) {
	if m.ListByFarmerFn != nil {
		return m.ListByFarmerFn(ctx, farmerID)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.Receipt, error) {
	if m.ListByStatusFn != nil {
		return m.ListByStatusFn(ctx, status)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByFarmerAndStatus(ctx context.Context, farmerID uint64, status domain.Status) ([]domain.Receipt, error) {
	if m.ListByFarmerAndStatusFn != nil {
		return m.ListByFarmerAndStatusFn(ctx, farmerID, status)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListByLocation(ctx context.Context, location string) ([]domain.Receipt, error) {
	if m.ListByLocationFn != nil {
		return m.ListByLocationFn(ctx, location)
	}
	return nil, errUnimplemented
}

func (m *Repo) ListAll(ctx context.Context) ([]domain.Receipt, error) {
	if m.ListAllFn != nil {
		return m.ListAllFn(ctx)
	}
	return nil, errUnimplemented
}
