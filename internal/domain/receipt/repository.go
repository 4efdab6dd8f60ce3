package receipt

import "context"

type Repository interface {
	Create(ctx context.Context, r *Receipt) error
	Save(ctx context.Context, r *Receipt) error
	GetByID(ctx context.Context, id uint64) (*Receipt, error)
	GetByIDForUpdate(ctx context.Context, id uint64) (*Receipt, error)
	ListByFarmer(ctx context.Context, farmerID uint64) ([]Receipt, error)
	ListByStatus(ctx context.Context, status Status) ([]Receipt, error)
	ListByFarmerAndStatus(ctx context.Context, farmerID uint64, status Status) ([]Receipt, error)
	ListByLocation(ctx context.Context, location string) ([]Receipt, error)
	ListAll(ctx context.Context) ([]Receipt, error)
}
