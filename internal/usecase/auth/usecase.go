package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"agricredit-backend/internal/domain/errs"
	"agricredit-backend/internal/domain/uow"
	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/infrastructure/cache"
	"agricredit-backend/internal/infrastructure/metrics"
	"agricredit-backend/internal/infrastructure/notify"
	"agricredit-backend/internal/infrastructure/token"
	"agricredit-backend/pkg/clock"

	"go.uber.org/zap"
)

var (
	ErrInvalidOTP   = fmt.Errorf("%w: invalid or expired otp", errs.ErrUnauthorized)
	ErrInvalidToken = fmt.Errorf("%w: invalid refresh token", errs.ErrUnauthorized)
	ErrAdminSignup  = fmt.Errorf("%w: admin accounts cannot self-register", errs.ErrValidation)
)

// maxOTPAttempts wrong guesses burn the pending code.
const maxOTPAttempts = 5

type OTPStore interface {
	Put(ctx context.Context, username, code string) error
	Get(ctx context.Context, username string) (string, error)
	Delete(ctx context.Context, username string) error
	// Fail records a wrong guess and returns the running count.
	Fail(ctx context.Context, username string) (int64, error)
}

// CodeSource produces one-time codes; *id.Generator satisfies it.
type CodeSource interface {
	OTP() (string, error)
}

type Usecase struct {
	users    user.Repository
	tx       uow.UnitOfWork
	otps     OTPStore
	otpTTL   time.Duration
	codes    CodeSource
	notifier notify.Notifier
	tokens   *token.Issuer
	clock    clock.Clock
	log      *zap.Logger
	metrics  *metrics.Metrics
}

type Deps struct {
	Users    user.Repository
	Tx       uow.UnitOfWork
	OTPs     OTPStore
	OTPTTL   time.Duration
	Codes    CodeSource
	Notifier notify.Notifier
	Tokens   *token.Issuer
	Clock    clock.Clock
	Log      *zap.Logger
	Metrics  *metrics.Metrics
}

func NewUsecase(d Deps) *Usecase {
	if d.Clock == nil {
		d.Clock = clock.System()
	}
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &Usecase{
		users:    d.Users,
		tx:       d.Tx,
		otps:     d.OTPs,
		otpTTL:   d.OTPTTL,
		codes:    d.Codes,
		notifier: d.Notifier,
		tokens:   d.Tokens,
		clock:    d.Clock,
		log:      d.Log.Named("auth"),
		metrics:  d.Metrics,
	}
}

func (u *Usecase) Register(ctx context.Context, in RegisterInput) (*UserDTO, error) {
	usr, err := newUser(in)
	if err != nil {
		return nil, err
	}
	if usr.Role == user.RoleAdmin {
		return nil, ErrAdminSignup
	}
	if err := u.create(ctx, usr); err != nil {
		return nil, err
	}

	u.log.Info("user registered", zap.Uint64("user_id", usr.ID), zap.String("role", string(usr.Role)))
	return &UserDTO{UserID: usr.ID, Username: usr.Username, Email: usr.Email, FullName: usr.FullName, Role: string(usr.Role)}, nil
}

// EnsureAdmin creates the bootstrap administrator unless the username is
// already registered. It reports whether a row was inserted.
func (u *Usecase) EnsureAdmin(ctx context.Context, in RegisterInput) (bool, error) {
	in.Role = string(user.RoleAdmin)
	usr, err := newUser(in)
	if err != nil {
		return false, err
	}
	err = u.create(ctx, usr)
	if errors.Is(err, user.ErrUsernameTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	u.log.Info("admin created", zap.Uint64("user_id", usr.ID), zap.String("username", usr.Username))
	return true, nil
}

func newUser(in RegisterInput) (*user.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || len(in.Password) < 6 {
		return nil, fmt.Errorf("%w: username and a password of at least 6 characters are required", errs.ErrValidation)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("%w: invalid email", errs.ErrValidation)
	}
	role, err := user.ParseRole(in.Role)
	if err != nil {
		return nil, err
	}
	usr := &user.User{
		Username: username,
		Email:    email,
		FullName: strings.TrimSpace(in.FullName),
		Role:     role,
		Phone:    in.Phone,
		Address:  in.Address,
		IsActive: true,
	}
	if err := usr.SetPassword(in.Password); err != nil {
		return nil, err
	}
	return usr, nil
}

// create checks uniqueness and inserts inside one transaction.
func (u *Usecase) create(ctx context.Context, usr *user.User) error {
	return u.tx.WithinTx(ctx, func(r uow.Repos) error {
		taken, err := r.Users.ExistsByUsername(ctx, usr.Username)
		if err != nil {
			return err
		}
		if taken {
			return user.ErrUsernameTaken
		}
		taken, err = r.Users.ExistsByEmail(ctx, usr.Email)
		if err != nil {
			return err
		}
		if taken {
			return user.ErrEmailTaken
		}
		return r.Users.Create(ctx, usr)
	})
}

// Login checks the password and sends a fresh one-time code. Every
// credential mismatch yields the same ErrInvalidCredential.
func (u *Usecase) Login(ctx context.Context, username, password string) (*LoginDTO, error) {
	usr, err := u.users.GetByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, user.ErrNotFound) {
		return nil, user.ErrInvalidCredential
	}
	if err != nil {
		return nil, err
	}
	if !usr.IsActive || usr.CheckPassword(password) != nil {
		return nil, user.ErrInvalidCredential
	}

	code, err := u.codes.OTP()
	if err != nil {
		return nil, err
	}
	if err := u.otps.Put(ctx, usr.Username, code); err != nil {
		return nil, err
	}
	msg := notify.OTPMessage{
		Username:  usr.Username,
		Email:     usr.Email,
		Phone:     usr.Phone,
		Code:      code,
		ExpiresAt: u.clock.Now().Add(u.otpTTL),
	}
	if err := u.notifier.SendOTP(ctx, msg); err != nil {
		u.log.Error("otp delivery failed", zap.String("username", usr.Username), zap.Error(err))
		_ = u.otps.Delete(ctx, usr.Username)
		return nil, err
	}
	u.metrics.OTPSent()

	return &LoginDTO{
		Message:          "OTP sent to user. Please verify.",
		UserID:           usr.ID,
		Username:         usr.Username,
		Role:             string(usr.Role),
		OTPExpiresInSecs: int64(u.otpTTL / time.Second),
	}, nil
}

// VerifyOTP consumes the pending code and issues an access/refresh pair.
func (u *Usecase) VerifyOTP(ctx context.Context, username, code string) (*AuthDTO, error) {
	username = strings.TrimSpace(username)
	want, err := u.otps.Get(ctx, username)
	if errors.Is(err, cache.ErrOTPNotFound) {
		return nil, ErrInvalidOTP
	}
	if err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(want), []byte(code)) != 1 {
		n, err := u.otps.Fail(ctx, username)
		if err != nil {
			return nil, err
		}
		if n >= maxOTPAttempts {
			u.log.Warn("otp attempts exhausted", zap.String("username", username), zap.Int64("attempts", n))
			if err := u.otps.Delete(ctx, username); err != nil {
				return nil, err
			}
		}
		return nil, ErrInvalidOTP
	}

	usr, err := u.users.GetByUsername(ctx, username)
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidOTP
	}
	if err != nil {
		return nil, err
	}
	if err := u.otps.Delete(ctx, username); err != nil {
		return nil, err
	}

	pair, err := u.tokens.IssuePair(usr.ID, usr.Username, string(usr.Role))
	if err != nil {
		return nil, err
	}
	u.log.Info("user logged in", zap.Uint64("user_id", usr.ID))
	return authDTO(pair, usr), nil
}

// Refresh trades a refresh token for a new access token. The refresh token
// itself is handed back unchanged.
func (u *Usecase) Refresh(ctx context.Context, refreshToken string) (*AuthDTO, error) {
	claims, err := u.tokens.Parse(refreshToken, token.Refresh)
	if err != nil {
		return nil, ErrInvalidToken
	}
	usr, err := u.users.GetByID(ctx, claims.UserID)
	if errors.Is(err, user.ErrNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if !usr.IsActive {
		return nil, ErrInvalidToken
	}

	access, err := u.tokens.IssueAccess(usr.ID, usr.Username, string(usr.Role))
	if err != nil {
		return nil, err
	}
	pair := token.Pair{AccessToken: access, RefreshToken: refreshToken, TokenType: "Bearer", ExpiresIn: u.tokens.AccessTTLSeconds()}
	return authDTO(pair, usr), nil
}

func authDTO(p token.Pair, usr *user.User) *AuthDTO {
	return &AuthDTO{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
		ExpiresIn:    p.ExpiresIn,
		UserID:       usr.ID,
		Username:     usr.Username,
		Role:         string(usr.Role),
	}
}
