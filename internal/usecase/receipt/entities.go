package receipt

import (
	"time"

	domain "agricredit-backend/internal/domain/receipt"

	"github.com/shopspring/decimal"
)

type CreateInput struct {
	FarmerID            uint64          `json:"farmer_id"`
	CommodityName       string          `json:"commodity_name"`
	Variety             string          `json:"variety"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitOfMeasure       string          `json:"unit_of_measure"`
	WarehouseLocation   string          `json:"warehouse_location"`
	WarehouseKeeperName string          `json:"warehouse_keeper_name"`
	QualityGrade        string          `json:"quality_grade"`
	Condition           string          `json:"condition"`
	Remarks             string          `json:"remarks"`
	ExpiryDate          *time.Time      `json:"expiry_date"`
}

type ReceiptDTO struct {
	ID                  uint64          `json:"id"`
	ReceiptNumber       string          `json:"receipt_number"`
	FarmerID            uint64          `json:"farmer_id"`
	FarmerName          string          `json:"farmer_name"`
	CommodityName       string          `json:"commodity_name"`
	Variety             string          `json:"variety"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitOfMeasure       string          `json:"unit_of_measure"`
	WarehouseLocation   string          `json:"warehouse_location"`
	WarehouseKeeperName string          `json:"warehouse_keeper_name"`
	StoredDate          time.Time       `json:"stored_date"`
	ExpiryDate          *time.Time      `json:"expiry_date,omitempty"`
	QualityGrade        string          `json:"quality_grade,omitempty"`
	Condition           string          `json:"condition,omitempty"`
	Remarks             string          `json:"remarks,omitempty"`
	IntegrityHash       string          `json:"integrity_hash"`
	Status              string          `json:"status"`
}

func toDTO(r *domain.Receipt, names map[uint64]string) *ReceiptDTO {
	return &ReceiptDTO{
		ID:                  r.ID,
		ReceiptNumber:       r.ReceiptNumber,
		FarmerID:            r.FarmerID,
		FarmerName:          names[r.FarmerID],
		CommodityName:       r.CommodityName,
		Variety:             r.Variety,
		Quantity:            r.Quantity,
		UnitOfMeasure:       r.UnitOfMeasure,
		WarehouseLocation:   r.WarehouseLocation,
		WarehouseKeeperName: r.WarehouseKeeperName,
		StoredDate:          r.StoredDate,
		ExpiryDate:          r.ExpiryDate,
		QualityGrade:        r.QualityGrade,
		Condition:           r.Condition,
		Remarks:             r.Remarks,
		IntegrityHash:       r.IntegrityHash,
		Status:              string(r.Status),
	}
}
