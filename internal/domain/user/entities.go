package user

import (
	"fmt"
	"strings"
	"time"

	"agricredit-backend/internal/domain/errs"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrNotFound          = fmt.Errorf("user %w", errs.ErrNotFound)
	ErrFarmerNotFound    = fmt.Errorf("farmer %w", errs.ErrNotFound)
	ErrLenderNotFound    = fmt.Errorf("lender %w", errs.ErrNotFound)
	ErrUsernameTaken     = fmt.Errorf("%w: username already exists", errs.ErrValidation)
	ErrEmailTaken        = fmt.Errorf("%w: email already exists", errs.ErrValidation)
	ErrInvalidRole       = fmt.Errorf("%w: unknown role", errs.ErrValidation)
	ErrInvalidCredential = fmt.Errorf("%w: invalid credentials", errs.ErrUnauthorized)
)

type Role string

const (
	RoleFarmer Role = "FARMER"
	RoleLender Role = "LENDER"
	RoleAdmin  Role = "ADMIN"
)

// ParseRole is case-insensitive.
func ParseRole(s string) (Role, error) {
	switch r := Role(strings.ToUpper(strings.TrimSpace(s))); r {
	case RoleFarmer, RoleLender, RoleAdmin:
		return r, nil
	}
	return "", ErrInvalidRole
}

type User struct {
	ID           uint64    `gorm:"primaryKey;column:id"`
	Username     string    `gorm:"size:50;not null;uniqueIndex:ux_users_username"`
	Email        string    `gorm:"size:255;not null;uniqueIndex:ux_users_email"`
	PasswordHash string    `gorm:"size:255;not null"`
	FullName     string    `gorm:"size:255"`
	Role         Role      `gorm:"size:16;not null"`
	Phone        string    `gorm:"size:32"`
	Address      string    `gorm:"type:text"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (User) TableName() string { return "users" }

func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}
