package receipt

import (
	"context"
	"errors"

	domain "agricredit-backend/internal/domain/receipt"
	"agricredit-backend/internal/domain/uow"
	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/infrastructure/metrics"
	"agricredit-backend/internal/usecase/projection"
	"agricredit-backend/pkg/clock"

	"go.uber.org/zap"
)

// NumberSource hands out receipt numbers; *id.Generator satisfies it.
type NumberSource interface {
	ReceiptNumber() (string, error)
}

type Usecase struct {
	receipts domain.Repository
	users    user.Repository
	uow      uow.UnitOfWork
	numbers  NumberSource
	clock    clock.Clock
	log      *zap.Logger
	metrics  *metrics.Metrics
}

func NewUsecase(receipts domain.Repository, users user.Repository, tx uow.UnitOfWork, numbers NumberSource, clk clock.Clock, log *zap.Logger, m *metrics.Metrics) *Usecase {
	if clk == nil {
		clk = clock.System()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{receipts: receipts, users: users, uow: tx, numbers: numbers, clock: clk, log: log.Named("receipt"), metrics: m}
}

func (u *Usecase) Create(ctx context.Context, in CreateInput) (*ReceiptDTO, error) {
	dep := domain.Deposit{
		FarmerID:            in.FarmerID,
		CommodityName:       in.CommodityName,
		Variety:             in.Variety,
		Quantity:            in.Quantity,
		UnitOfMeasure:       in.UnitOfMeasure,
		WarehouseLocation:   in.WarehouseLocation,
		WarehouseKeeperName: in.WarehouseKeeperName,
		QualityGrade:        in.QualityGrade,
		Condition:           in.Condition,
		Remarks:             in.Remarks,
		ExpiryDate:          in.ExpiryDate,
	}
	if err := dep.Validate(); err != nil {
		return nil, err
	}

	farmer, err := u.users.GetByID(ctx, in.FarmerID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, user.ErrFarmerNotFound
	}
	if err != nil {
		return nil, err
	}

	number, err := u.numbers.ReceiptNumber()
	if err != nil {
		return nil, err
	}
	r, err := domain.New(dep, number, u.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := u.receipts.Create(ctx, r); err != nil {
		return nil, err
	}

	u.log.Info("warehouse receipt issued",
		zap.Uint64("receipt_id", r.ID),
		zap.String("receipt_number", r.ReceiptNumber),
		zap.Uint64("farmer_id", r.FarmerID),
	)
	u.metrics.ReceiptCreated()
	return toDTO(r, map[uint64]string{farmer.ID: farmer.FullName}), nil
}

// UpdateStatus sets any known status without ordering checks.
func (u *Usecase) UpdateStatus(ctx context.Context, receiptID uint64, status string) (*ReceiptDTO, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	var dto *ReceiptDTO
	err = u.uow.WithinReceiptTx(ctx, receiptID, func(r uow.Repos, rc *domain.Receipt) error {
		if err := rc.SetStatus(st, u.clock.Now()); err != nil {
			return err
		}
		if err := r.Receipts.Save(ctx, rc); err != nil {
			return err
		}
		names, err := projection.Names(ctx, r.Users, rc.FarmerID)
		if err != nil {
			return err
		}
		dto = toDTO(rc, names)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("warehouse receipt status changed", zap.Uint64("receipt_id", receiptID), zap.String("status", dto.Status))
	u.metrics.ReceiptStatusSet(dto.Status)
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, receiptID uint64) (*ReceiptDTO, error) {
	r, err := u.receipts.GetByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	names, err := projection.Names(ctx, u.users, r.FarmerID)
	if err != nil {
		return nil, err
	}
	return toDTO(r, names), nil
}

func (u *Usecase) ListByFarmer(ctx context.Context, farmerID uint64) ([]ReceiptDTO, error) {
	if _, err := u.users.GetByID(ctx, farmerID); err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return nil, user.ErrFarmerNotFound
		}
		return nil, err
	}
	return u.list(ctx, func() ([]domain.Receipt, error) { return u.receipts.ListByFarmer(ctx, farmerID) })
}

func (u *Usecase) ListActive(ctx context.Context) ([]ReceiptDTO, error) {
	return u.list(ctx, func() ([]domain.Receipt, error) { return u.receipts.ListByStatus(ctx, domain.StatusActive) })
}

func (u *Usecase) ListByStatus(ctx context.Context, status string) ([]ReceiptDTO, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	return u.list(ctx, func() ([]domain.Receipt, error) { return u.receipts.ListByStatus(ctx, st) })
}

func (u *Usecase) ListByLocation(ctx context.Context, location string) ([]ReceiptDTO, error) {
	return u.list(ctx, func() ([]domain.Receipt, error) { return u.receipts.ListByLocation(ctx, location) })
}

func (u *Usecase) ListAll(ctx context.Context) ([]ReceiptDTO, error) {
	return u.list(ctx, func() ([]domain.Receipt, error) { return u.receipts.ListAll(ctx) })
}

func (u *Usecase) list(ctx context.Context, load func() ([]domain.Receipt, error)) ([]ReceiptDTO, error) {
	rs, err := load()
	if err != nil {
		return nil, err
	}
	ids := make([]uint64, 0, len(rs))
	for _, r := range rs {
		ids = append(ids, r.FarmerID)
	}
	names, err := projection.Names(ctx, u.users, ids...)
	if err != nil {
		return nil, err
	}
	out := make([]ReceiptDTO, 0, len(rs))
	for i := range rs {
		out = append(out, *toDTO(&rs[i], names))
	}
	return out, nil
}
