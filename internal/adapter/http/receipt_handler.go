package http

import (
	"net/http"
	"time"

	"agricredit-backend/internal/adapter/middleware"
	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/usecase/receipt"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ReceiptHandler struct {
	uc  *receipt.Usecase
	log *zap.Logger
}

func NewReceiptHandler(uc *receipt.Usecase, log *zap.Logger) *ReceiptHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &ReceiptHandler{uc: uc, log: log}
}

type createReceiptReq struct {
	FarmerID            uint64          `json:"farmer_id" validate:"required"`
	CommodityName       string          `json:"commodity_name" validate:"required,max=100"`
	Variety             string          `json:"variety" validate:"required,max=100"`
	Quantity            decimal.Decimal `json:"quantity" validate:"required,gt=0,dec3"`
	UnitOfMeasure       string          `json:"unit_of_measure" validate:"required,max=20"`
	WarehouseLocation   string          `json:"warehouse_location" validate:"required,max=200"`
	WarehouseKeeperName string          `json:"warehouse_keeper_name" validate:"required,max=100"`
	QualityGrade        string          `json:"quality_grade" validate:"max=50"`
	Condition           string          `json:"condition" validate:"max=100"`
	Remarks             string          `json:"remarks" validate:"max=500"`
	ExpiryDate          *time.Time      `json:"expiry_date"`
}

func (h *ReceiptHandler) Create(c echo.Context) error {
	var req createReceiptReq
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

	dto, err := h.uc.Create(c.Request().Context(), receipt.CreateInput(req))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

type statusQuery struct {
	Status string `json:"status" validate:"required,receiptstatus"`
}

// UpdateStatus accepts any target status from any current status.
func (h *ReceiptHandler) UpdateStatus(c echo.Context) error {
	receiptID, err := idParam(c, "receipt_id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	q := statusQuery{Status: c.QueryParam("status")}
	if err := c.Validate(&q); err != nil {
		return c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "validation failed", Details: ToFieldErrors(err)})
	}

	dto, err := h.uc.UpdateStatus(c.Request().Context(), receiptID, q.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReceiptHandler) Get(c echo.Context) error {
	receiptID, err := idParam(c, "receipt_id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	dto, err := h.uc.Get(c.Request().Context(), receiptID)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *ReceiptHandler) ListByFarmer(c echo.Context) error {
	farmerID, err := idParam(c, "farmer_id")
	if err != nil {
		return respondError(c, h.log, err)
	}
	return h.list(c, func() ([]receipt.ReceiptDTO, error) {
		return h.uc.ListByFarmer(c.Request().Context(), farmerID)
	})
}

func (h *ReceiptHandler) ListActive(c echo.Context) error {
	return h.list(c, func() ([]receipt.ReceiptDTO, error) {
		return h.uc.ListActive(c.Request().Context())
	})
}

type receiptStatusReq struct {
	Status string `json:"status" validate:"receiptstatus"`
}

func (h *ReceiptHandler) ListByStatus(c echo.Context) error {
	req := receiptStatusReq{Status: c.Param("status")}
	if ok, err := validated(c, &req); !ok {
		return err
	}
	return h.list(c, func() ([]receipt.ReceiptDTO, error) {
		return h.uc.ListByStatus(c.Request().Context(), req.Status)
	})
}

func (h *ReceiptHandler) ListByLocation(c echo.Context) error {
	return h.list(c, func() ([]receipt.ReceiptDTO, error) {
		return h.uc.ListByLocation(c.Request().Context(), c.Param("location"))
	})
}

func (h *ReceiptHandler) ListAll(c echo.Context) error {
	return h.list(c, func() ([]receipt.ReceiptDTO, error) {
		return h.uc.ListAll(c.Request().Context())
	})
}

func (h *ReceiptHandler) list(c echo.Context, load func() ([]receipt.ReceiptDTO, error)) error {
	out, err := load()
	if err != nil {
		return respondError(c, h.log, err)
	}
	if out == nil {
		out = []receipt.ReceiptDTO{}
	}
	return c.JSON(http.StatusOK, out)
}
