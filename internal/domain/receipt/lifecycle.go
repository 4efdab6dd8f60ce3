package receipt

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"agricredit-backend/internal/domain/errs"
	"agricredit-backend/pkg/clock"
	"agricredit-backend/pkg/id"

	"github.com/shopspring/decimal"
)

// QuantityPlaces matches the decimal(18,3) quantity column.
const QuantityPlaces = 3

// Deposit is the farmer-supplied part of a new receipt.
type Deposit struct {
	FarmerID            uint64
	CommodityName       string
	Variety             string
	Quantity            decimal.Decimal
	UnitOfMeasure       string
	WarehouseLocation   string
	WarehouseKeeperName string
	QualityGrade        string
	Condition           string
	Remarks             string
	ExpiryDate          *time.Time
}

func (d Deposit) Validate() error {
	var bad []string
	if d.FarmerID == 0 {
		bad = append(bad, "farmer_id is required")
	}
	if !d.Quantity.IsPositive() {
		bad = append(bad, "quantity must be positive")
	} else if !d.Quantity.Equal(d.Quantity.Truncate(QuantityPlaces)) {
		bad = append(bad, "quantity must have at most 3 decimal places")
	}
	for _, f := range []struct{ name, v string }{
		{"commodity_name", d.CommodityName},
		{"variety", d.Variety},
		{"unit_of_measure", d.UnitOfMeasure},
		{"warehouse_location", d.WarehouseLocation},
		{"warehouse_keeper_name", d.WarehouseKeeperName},
	} {
		if strings.TrimSpace(f.v) == "" {
			bad = append(bad, f.name+" is required")
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("%w: %s", errs.ErrValidation, strings.Join(bad, "; "))
	}
	return nil
}

// New builds an ACTIVE receipt stored at now, stamped at storage precision.
func New(d Deposit, number string, now time.Time) (*Receipt, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	now = clock.Stamp(now)
	expiry := d.ExpiryDate
	if expiry != nil {
		e := clock.Stamp(*expiry)
		expiry = &e
	}
	return &Receipt{
		ReceiptNumber:       number,
		FarmerID:            d.FarmerID,
		CommodityName:       strings.TrimSpace(d.CommodityName),
		Variety:             d.Variety,
		Quantity:            d.Quantity,
		UnitOfMeasure:       d.UnitOfMeasure,
		WarehouseLocation:   d.WarehouseLocation,
		WarehouseKeeperName: d.WarehouseKeeperName,
		StoredDate:          now,
		ExpiryDate:          expiry,
		QualityGrade:        d.QualityGrade,
		Condition:           d.Condition,
		Remarks:             d.Remarks,
		IntegrityHash:       IntegrityHash(d.FarmerID, strings.TrimSpace(d.CommodityName), now, d.Quantity),
		Status:              StatusActive,
	}, nil
}

// SetStatus sets any known status; there is no ordering between them.
// RELEASED and CANCELLED overwrite the expiry date with at.
func (r *Receipt) SetStatus(s Status, at time.Time) error {
	if _, err := ParseStatus(string(s)); err != nil {
		return err
	}
	r.Status = s
	if s.closes() {
		at = clock.Stamp(at)
		r.ExpiryDate = &at
	}
	return nil
}

func IntegrityHash(farmerID uint64, commodity string, stored time.Time, quantity decimal.Decimal) string {
	return id.Fingerprint(
		strconv.FormatUint(farmerID, 10),
		commodity,
		stored.UTC().Format(time.RFC3339Nano),
		quantity.String(),
	)
}
