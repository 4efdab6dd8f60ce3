package loan

import "context"

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	Save(ctx context.Context, l *Loan) error
	// GetByID returns ErrNotFound when no row matches.
	GetByID(ctx context.Context, id uint64) (*Loan, error)
	// GetByIDForUpdate locks the row for the rest of the surrounding tx.
	GetByIDForUpdate(ctx context.Context, id uint64) (*Loan, error)
	ListByFarmer(ctx context.Context, farmerID uint64) ([]Loan, error)
	ListByLender(ctx context.Context, lenderID uint64) ([]Loan, error)
	ListByStatus(ctx context.Context, status Status) ([]Loan, error)
	ListByFarmerAndStatus(ctx context.Context, farmerID uint64, status Status) ([]Loan, error)
	ListAll(ctx context.Context) ([]Loan, error)
}
