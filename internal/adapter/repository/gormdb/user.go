package gormdb

import (
	"context"

	userDomain "agricredit-backend/internal/domain/user"

	"gorm.io/gorm"
)

type UserRepository struct{ db *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{db: db} }

func (r *UserRepository) Create(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *UserRepository) Save(ctx context.Context, u *userDomain.User) error {
	return r.db.WithContext(ctx).Save(u).Error
}

func (r *UserRepository) GetByID(ctx context.Context, id uint64) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*userDomain.User, error) {
	var out userDomain.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&out).Error; err != nil {
		return nil, notFound(err, userDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint64) ([]userDomain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []userDomain.User
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&out)
	return out, res.Error
}

func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username = ?", username)
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email = ?", email)
}

func (r *UserRepository) exists(ctx context.Context, where string, arg any) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&userDomain.User{}).Where(where, arg).Count(&n).Error
	return n > 0, err
}
