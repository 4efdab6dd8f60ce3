package usermock

import (
	"context"
	"errors"

	domain "agricredit-backend/internal/domain/user"
)

var _ domain.Repository = (*Repo)(nil)

var errUnimplemented = errors.New("usermock: method not implemented")

// Repo is a function-backed mock that satisfies domain.Repository.
type Repo struct {
	CreateFn           func(ctx context.Context, u *domain.User) error
	SaveFn             func(ctx context.Context, u *domain.User) error
	GetByIDFn          func(ctx context.Context, id uint64) (*domain.User, error)
	GetByUsernameFn    func(ctx context.Context, username string) (*domain.User, error)
	GetByIDsFn         func(ctx context.Context, ids []uint64) ([]domain.User, error)
	ExistsByUsernameFn func(ctx context.Context, username string) (bool, error)
	ExistsByEmailFn    func(ctx context.Context, email string) (bool, error)
}

// Users returns a Repo whose lookups are served from the given records.
func Users(us ...domain.User) *Repo {
	byID := make(map[uint64]domain.User, len(us))
	for _, u := range us {
		byID[u.ID] = u
	}
	return &Repo{
		GetByIDFn: func(_ context.Context, id uint64) (*domain.User, error) {
			u, ok := byID[id]
			if !ok {
				return nil, domain.ErrNotFound
			}
			return &u, nil
		},
		GetByIDsFn: func(_ context.Context, ids []uint64) ([]domain.User, error) {
			var out []domain.User
			for _, id := range ids {
				if u, ok := byID[id]; ok {
					out = append(out, u)
				}
			}
			return out, nil
		},
		GetByUsernameFn: func(_ context.Context, username string) (*domain.User, error) {
			for _, u := range byID {
				if u.Username == username {
					return &u, nil
				}
			}
			return nil, domain.ErrNotFound
		},
	}
}

func (m *Repo) Create(ctx context.Context, u *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, u)
	}
	return nil
}

func (m *Repo) Save(ctx context.Context, u *domain.User) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, u)
	}
	return nil
}

func (m *Repo) GetByID(ctx context.Context, id uint64) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	if m.GetByUsernameFn != nil {
		return m.GetByUsernameFn(ctx, username)
	}
	return nil, errUnimplemented
}

func (m *Repo) GetByIDs(ctx context.Context, ids []uint64) ([]domain.User, error) {
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ctx, ids)
	}
	return nil, errUnimplemented
}

func (m *Repo) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	if m.ExistsByUsernameFn != nil {
		return m.ExistsByUsernameFn(ctx, username)
	}
	return false, nil
}

func (m *Repo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFn != nil {
		return m.ExistsByEmailFn(ctx, email)
	}
	return false, nil
}
