package gormdb

import (
	"context"
	"testing"
	"time"

	"agricredit-backend/internal/domain/loan"
	"agricredit-backend/internal/domain/receipt"
	"agricredit-backend/internal/domain/user"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB creates an in-memory sqlite DB with the real schema.
// A single connection keeps every statement on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := AutoMigrate(db); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string, role user.Role) *user.User {
	t.Helper()
	u := &user.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
		FullName:     "Full " + username,
		Role:         role,
		IsActive:     true,
	}
	if err := NewUserRepository(db).Create(context.Background(), u); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func makeLoan(t *testing.T, farmerID uint64, applied time.Time) *loan.Loan {
	t.Helper()
	l, err := loan.New(loan.Application{
		FarmerID:         farmerID,
		Amount:           decimal.NewFromInt(1000),
		Purpose:          "seed",
		InterestRate:     0.1,
		DurationInMonths: 6,
	}, applied)
	if err != nil {
		t.Fatalf("loan.New: %v", err)
	}
	return l
}

func makeReceipt(t *testing.T, farmerID uint64, number, location string, stored time.Time) *receipt.Receipt {
	t.Helper()
	rc, err := receipt.New(receipt.Deposit{
		FarmerID:            farmerID,
		CommodityName:       "Wheat",
		Variety:             "Premium Wheat",
		Quantity:            decimal.NewFromInt(500),
		UnitOfMeasure:       "kg",
		WarehouseLocation:   location,
		WarehouseKeeperName: "Tom Wilson",
	}, number, stored)
	if err != nil {
		t.Fatalf("receipt.New: %v", err)
	}
	return rc
}
