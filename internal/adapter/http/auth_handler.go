package http

import (
	"net/http"

	"agricredit-backend/internal/usecase/auth"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type AuthHandler struct {
	uc  *auth.Usecase
	log *zap.Logger
}

func NewAuthHandler(uc *auth.Usecase, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{uc: uc, log: log}
}

type registerReq struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
	FullName string `json:"full_name" validate:"required,max=100"`
	Role     string `json:"role" validate:"required,role"`
	Phone    string `json:"phone" validate:"max=20"`
	Address  string `json:"address" validate:"max=255"`
}

type loginReq struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type verifyOTPReq struct {
	Username string `json:"username" validate:"required"`
	OTP      string `json:"otp" validate:"required,len=6,numeric"`
}

type refreshReq struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Register(c.Request().Context(), auth.RegisterInput(req))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusCreated, dto)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req verifyOTPReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.VerifyOTP(c.Request().Context(), req.Username, req.OTP)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}

func (h *AuthHandler) Refresh(c echo.Context) error {
	var req refreshReq
	if ok, err := bindAndValidate(c, &req); !ok {
		return err
	}
	dto, err := h.uc.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(http.StatusOK, dto)
}
