package gormdb

import (
	"context"

	receiptDomain "agricredit-backend/internal/domain/receipt"

	"gorm.io/gorm"
)

type ReceiptRepository struct{ db *gorm.DB }

func NewReceiptRepository(db *gorm.DB) *ReceiptRepository { return &ReceiptRepository{db: db} }

func (r *ReceiptRepository) Create(ctx context.Context, rc *receiptDomain.Receipt) error {
	return r.db.WithContext(ctx).Create(rc).Error
}

func (r *ReceiptRepository) Save(ctx context.Context, rc *receiptDomain.Receipt) error {
	return r.db.WithContext(ctx).Save(rc).Error
}

func (r *ReceiptRepository) GetByID(ctx context.Context, id uint64) (*receiptDomain.Receipt, error) {
	var out receiptDomain.Receipt
	if err := r.db.WithContext(ctx).First(&out, id).Error; err != nil {
		return nil, notFound(err, receiptDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ReceiptRepository) GetByIDForUpdate(ctx context.Context, id uint64) (*receiptDomain.Receipt, error) {
	var out receiptDomain.Receipt
	if err := r.db.WithContext(ctx).Clauses(forUpdate).First(&out, id).Error; err != nil {
		return nil, notFound(err, receiptDomain.ErrNotFound)
	}
	return &out, nil
}

func (r *ReceiptRepository) ListByFarmer(ctx context.Context, farmerID uint64) ([]receiptDomain.Receipt, error) {
	return r.list(ctx, "farmer_id = ?", farmerID)
}

func (r *ReceiptRepository) ListByStatus(ctx context.Context, status receiptDomain.Status) ([]receiptDomain.Receipt, error) {
	return r.list(ctx, "status = ?", status)
}

func (r *ReceiptRepository) ListByFarmerAndStatus(ctx context.Context, farmerID uint64, status receiptDomain.Status) ([]receiptDomain.Receipt, error) {
	return r.list(ctx, "farmer_id = ? AND status = ?", farmerID, status)
}

func (r *ReceiptRepository) ListByLocation(ctx context.Context, location string) ([]receiptDomain.Receipt, error) {
	return r.list(ctx, "warehouse_location = ?", location)
}

func (r *ReceiptRepository) ListAll(ctx context.Context) ([]receiptDomain.Receipt, error) {
	return r.list(ctx, "")
}

func (r *ReceiptRepository) list(ctx context.Context, where string, args ...any) ([]receiptDomain.Receipt, error) {
	var out []receiptDomain.Receipt
	q := r.db.WithContext(ctx)
	if where != "" {
		q = q.Where(where, args...)
	}
	res := q.Order("stored_date DESC, id DESC").
		Find(&out)
	return out, res.Error
}
