package gormdb

import (
	"agricredit-backend/internal/domain/loan"
	"agricredit-backend/internal/domain/receipt"
	"agricredit-backend/internal/domain/user"

	"gorm.io/gorm"
)

// AutoMigrate creates or updates the users, loans and warehouse_receipts tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&user.User{}, &loan.Loan{}, &receipt.Receipt{})
}
