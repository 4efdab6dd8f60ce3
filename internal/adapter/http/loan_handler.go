package http

import (
	"net/http"

	"agricredit-backend/internal/adapter/middleware"
	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/usecase/loan"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type LoanHandler struct {
	uc  *loan.Usecase
	log *zap.Logger
}

func NewLoanHandler(uc *loan.Usecase, log *zap.Logger) *LoanHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoanHandler{uc: uc, log: log}
}

type applyLoanReq struct {
	FarmerID         uint64          `json:"farmer_id" validate:"required"`
	Amount           decimal.Decimal `json:"amount" validate:"required,gt=0,dec2"`
	Purpose          string          `json:"purpose" validate:"required,max=500"`
	InterestRate     float64         `json:"interest_rate" validate:"gte=0,lte=100"`
	DurationInMonths int             `json:"duration_in_months" validate:"required,gte=1,lte=600"`
}

// Apply: a farmer applying without farmer_id applies for themselves.
func (h *LoanHandler) Apply(c echo.Context) error {
	var req applyLoanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.FarmerID == 0 {
		if claims, ok := middleware.Claims(c); ok && claims.Role == string(user.RoleFarmer) {
			req.FarmerID = claims.UserID
		}
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.Apply(c.Request().Context(), loan.ApplyInput(req))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

// Approve takes lender_id from the query; a lender caller may omit it.
func (h *LoanHandler) Approve(c echo.Context) error {
	loanID, err := idParam(c, "loan_id")
	if err != nil {
		return respondError(c, h.log, err)
	}

	var lenderID uint64
	if raw := c.QueryParam("lender_id"); raw != "" {
		if lenderID, err = parseID("lender_id", raw); err != nil {
			return respondError(c, h.log, err)
		}
	} else if claims, ok := middleware.Claims(c); ok && claims.Role == string(user.RoleLender) {
		lenderID = claims.UserID
	} else {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error:   "validation failed",
			Details: []FieldError{{Field: "lender_id", Message: "is required"}},
		})
	}

	dto, err := h.uc.Approve(c.Request().Context(), loanID, lenderID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

type rejectReq struct {
	Remarks string `json:"remarks" validate:"required,max=1000"`
}

func (h *LoanHandler) Reject(c echo.Context) error {
	loanID, err := idParam(c, "loan_id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	req := rejectReq{Remarks: c.QueryParam("remarks")}
	if ok, err := validated(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Reject(c.Request().Context(), loanID, req.Remarks)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Disburse(c echo.Context) error {
	loanID, err := idParam(c, "loan_id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	dto, err := h.uc.Disburse(c.Request().Context(), loanID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) Get(c echo.Context) error {
	loanID, err := idParam(c, "loan_id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), loanID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *LoanHandler) ListByFarmer(c echo.Context) error {
	farmerID, err := idParam(c, "farmer_id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	return h.list(c, func() ([]loan.LoanDTO, error) {
		return h.uc.ListByFarmer(c.Request().Context(), farmerID)
	})
}

func (h *LoanHandler) ListByLender(c echo.Context) error {
	lenderID, err := idParam(c, "lender_id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	return h.list(c, func() ([]loan.LoanDTO, error) {
		return h.uc.ListByLender(c.Request().Context(), lenderID)
	})
}

type loanStatusReq struct {
	Status string `json:"status" validate:"loanstatus"`
}

func (h *LoanHandler) ListByStatus(c echo.Context) error {
	req := loanStatusReq{Status: c.Param("status")}
	if ok, err := validated(c, &req); !ok {
		return err
	}
	return h.list(c, func() ([]loan.LoanDTO, error) {
		return h.uc.ListByStatus(c.Request().Context(), req.Status)
	})
}

func (h *LoanHandler) ListAll(c echo.Context) error {
	return h.list(c, func() ([]loan.LoanDTO, error) {
		return h.uc.ListAll(c.Request().Context())
	})
}

func (h *LoanHandler) list(c echo.Context, load func() ([]loan.LoanDTO, error)) error {
	out, err := load()
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		out = []loan.LoanDTO{}
	}
	return c.JSON(http.StatusOK, out)
}
