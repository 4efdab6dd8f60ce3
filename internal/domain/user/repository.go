package user

import "context"

type Repository interface {
	Create(ctx context.Context, u *User) error
	Save(ctx context.Context, u *User) error
	// GetByID returns ErrNotFound when no row matches.
	GetByID(ctx context.Context, id uint64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetByIDs is used for batched name resolution; missing ids are skipped.
	GetByIDs(ctx context.Context, ids []uint64) ([]User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}
