package loan

import (
	"context"
	"errors"

	domain "agricredit-backend/internal/domain/loan"
	"agricredit-backend/internal/domain/uow"
	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/infrastructure/metrics"
	"agricredit-backend/internal/usecase/projection"
	"agricredit-backend/pkg/clock"

	"go.uber.org/zap"
)

type Usecase struct {
	loans   domain.Repository
	users   user.Repository
	uow     uow.UnitOfWork
	clock   clock.Clock
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewUsecase: transitions go through tx, reads through the plain repos.
// clk, log and m may be nil.
func NewUsecase(loans domain.Repository, users user.Repository, tx uow.UnitOfWork, clk clock.Clock, log *zap.Logger, m *metrics.Metrics) *Usecase {
	if clk == nil {
		clk = clock.System()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{loans: loans, users: users, uow: tx, clock: clk, log: log.Named("loan"), metrics: m}
}

// existing maps user.ErrNotFound to the role-specific error.
func existing(ctx context.Context, users user.Repository, id uint64, missing error) (*user.User, error) {
	u, err := users.GetByID(ctx, id)
	if errors.Is(err, user.ErrNotFound) {
		return nil, missing
	}
	return u, err
}

func (u *Usecase) Apply(ctx context.Context, in ApplyInput) (*LoanDTO, error) {
	app := domain.Application{
		FarmerID:         in.FarmerID,
		Amount:           in.Amount,
		Purpose:          in.Purpose,
		InterestRate:     in.InterestRate,
		DurationInMonths: in.DurationInMonths,
	}
	if err := app.Validate(); err != nil {
		return nil, err
	}

	farmer, err := existing(ctx, u.users, in.FarmerID, user.ErrFarmerNotFound)
	if err != nil {
		return nil, err
	}

	l, err := domain.New(app, u.clock.Now())
	if err != nil {
		return nil, err
	}
	if err := u.loans.Create(ctx, l); err != nil {
		return nil, err
	}

	u.log.Info("loan applied",
		zap.Uint64("loan_id", l.ID),
		zap.Uint64("farmer_id", l.FarmerID),
		zap.String("amount", l.Amount.String()),
	)
	u.metrics.LoanEntered(string(l.Status))
	return toDTO(l, map[uint64]string{farmer.ID: farmer.FullName}), nil
}

func (u *Usecase) Approve(ctx context.Context, loanID, lenderID uint64) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		// state first, then the lender
		if l.Status != domain.StatusPending {
			return domain.ErrNotPending
		}
		lender, err := existing(ctx, r.Users, lenderID, user.ErrLenderNotFound)
		if err != nil {
			return err
		}
		if err := l.Approve(lender.ID, u.clock.Now()); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}

		names, err := projection.Names(ctx, r.Users, l.FarmerID)
		if err != nil {
			return err
		}
		names[lender.ID] = lender.FullName
		dto = toDTO(l, names)
		return nil
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("loan approved", zap.Uint64("loan_id", loanID), zap.Uint64("lender_id", lenderID))
	u.metrics.LoanEntered(dto.Status)
	return dto, nil
}

func (u *Usecase) Reject(ctx context.Context, loanID uint64, remarks string) (*LoanDTO, error) {
	return u.transition(ctx, loanID, func(l *domain.Loan) error { return l.Reject(remarks) })
}

func (u *Usecase) Disburse(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	return u.transition(ctx, loanID, func(l *domain.Loan) error { return l.Disburse(u.clock.Now()) })
}

// transition locks the loan, applies step, persists and projects.
func (u *Usecase) transition(ctx context.Context, loanID uint64, step func(*domain.Loan) error) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *domain.Loan) error {
		if err := step(l); err != nil {
			return err
		}
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		var err error
		dto, err = u.project(ctx, r.Users, l)
		return err
	})
	if err != nil {
		return nil, err
	}

	u.log.Info("loan status changed", zap.Uint64("loan_id", loanID), zap.String("status", dto.Status))
	u.metrics.LoanEntered(dto.Status)
	return dto, nil
}

func (u *Usecase) Get(ctx context.Context, loanID uint64) (*LoanDTO, error) {
	l, err := u.loans.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}
	return u.project(ctx, u.users, l)
}

func (u *Usecase) ListByFarmer(ctx context.Context, farmerID uint64) ([]LoanDTO, error) {
	if _, err := existing(ctx, u.users, farmerID, user.ErrFarmerNotFound); err != nil {
		return nil, err
	}
	ls, err := u.loans.ListByFarmer(ctx, farmerID)
	if err != nil {
		return nil, err
	}
	return u.projectAll(ctx, ls)
}

func (u *Usecase) ListByLender(ctx context.Context, lenderID uint64) ([]LoanDTO, error) {
	if _, err := existing(ctx, u.users, lenderID, user.ErrLenderNotFound); err != nil {
		return nil, err
	}
	ls, err := u.loans.ListByLender(ctx, lenderID)
	if err != nil {
		return nil, err
	}
	return u.projectAll(ctx, ls)
}

// ListByStatus accepts the status name in any casing.
func (u *Usecase) ListByStatus(ctx context.Context, status string) ([]LoanDTO, error) {
	st, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	ls, err := u.loans.ListByStatus(ctx, st)
	if err != nil {
		return nil, err
	}
	return u.projectAll(ctx, ls)
}

func (u *Usecase) ListAll(ctx context.Context) ([]LoanDTO, error) {
	ls, err := u.loans.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return u.projectAll(ctx, ls)
}

func (u *Usecase) project(ctx context.Context, users user.Repository, l *domain.Loan) (*LoanDTO, error) {
	ids := []uint64{l.FarmerID}
	if l.LenderID != nil {
		ids = append(ids, *l.LenderID)
	}
	names, err := projection.Names(ctx, users, ids...)
	if err != nil {
		return nil, err
	}
	return toDTO(l, names), nil
}

func (u *Usecase) projectAll(ctx context.Context, ls []domain.Loan) ([]LoanDTO, error) {
	ids := make([]uint64, 0, 2*len(ls))
	for _, l := range ls {
		ids = append(ids, l.FarmerID)
		if l.LenderID != nil {
			ids = append(ids, *l.LenderID)
		}
	}
	names, err := projection.Names(ctx, u.users, ids...)
	if err != nil {
		return nil, err
	}
	out := make([]LoanDTO, 0, len(ls))
	for i := range ls {
		out = append(out, *toDTO(&ls[i], names))
	}
	return out, nil
}
