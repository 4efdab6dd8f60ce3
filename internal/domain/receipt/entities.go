package receipt

import (
	"fmt"
	"strings"
	"time"

	"agricredit-backend/internal/domain/errs"

	"github.com/shopspring/decimal"
)

var (
	ErrNotFound      = fmt.Errorf("warehouse receipt %w", errs.ErrNotFound)
	ErrUnknownStatus = fmt.Errorf("%w: unknown receipt status", errs.ErrValidation)
)

type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusReleased  Status = "RELEASED"
	StatusExpired   Status = "EXPIRED"
	StatusCancelled Status = "CANCELLED"
)

func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToUpper(strings.TrimSpace(s))); st {
	case StatusActive, StatusReleased, StatusExpired, StatusCancelled:
		return st, nil
	}
	return "", ErrUnknownStatus
}

// closes reports whether entering s stamps the expiry date.
func (s Status) closes() bool {
	return s == StatusReleased || s == StatusCancelled
}

type Receipt struct {
	ID                  uint64          `gorm:"primaryKey;column:id" json:"id"`
	ReceiptNumber       string          `gorm:"size:40;not null;uniqueIndex:ux_receipts_number" json:"receipt_number"`
	FarmerID            uint64          `gorm:"not null;index:idx_receipts_farmer_status,priority:1" json:"farmer_id"`
	CommodityName       string          `gorm:"size:255;not null" json:"commodity_name"`
	Variety             string          `gorm:"size:255;not null" json:"variety"`
	Quantity            decimal.Decimal `gorm:"type:decimal(18,3);not null" json:"quantity"`
	UnitOfMeasure       string          `gorm:"size:32;not null" json:"unit_of_measure"`
	WarehouseLocation   string          `gorm:"size:255;not null;index:idx_receipts_location" json:"warehouse_location"`
	WarehouseKeeperName string          `gorm:"size:255;not null" json:"warehouse_keeper_name"`
	StoredDate          time.Time       `gorm:"not null" json:"stored_date"`
	ExpiryDate          *time.Time      `json:"expiry_date,omitempty"`
	QualityGrade        string          `gorm:"size:64" json:"quality_grade"`
	Condition           string          `gorm:"column:item_condition;size:255" json:"condition"`
	Remarks             string          `gorm:"size:1000" json:"remarks"`
	IntegrityHash       string          `gorm:"size:66" json:"integrity_hash"`
	Status              Status          `gorm:"size:16;not null;index:idx_receipts_farmer_status,priority:2;index:idx_receipts_status" json:"status"`
	CreatedAt           time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Receipt) TableName() string { return "warehouse_receipts" }
