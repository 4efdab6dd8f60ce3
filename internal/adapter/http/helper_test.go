package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	stdhttp "net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	loandomain "agricredit-backend/internal/domain/loan"
	receiptdomain "agricredit-backend/internal/domain/receipt"
	"agricredit-backend/internal/domain/uow"
	"agricredit-backend/internal/domain/user"
	"agricredit-backend/internal/infrastructure/cache"
	"agricredit-backend/internal/infrastructure/metrics"
	"agricredit-backend/internal/infrastructure/notify"
	"agricredit-backend/internal/infrastructure/token"
	"agricredit-backend/internal/testutil/loanmock"
	"agricredit-backend/internal/testutil/receiptmock"
	"agricredit-backend/internal/testutil/uowmock"
	"agricredit-backend/internal/testutil/usermock"
	"agricredit-backend/internal/usecase/auth"
	"agricredit-backend/internal/usecase/loan"
	"agricredit-backend/internal/usecase/receipt"
	"agricredit-backend/pkg/clock"
	"agricredit-backend/pkg/id"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// ---- helpers ----

func containsFieldMsg(list []FieldError, field, substr string) bool {
	for _, e := range list {
		if e.Field == field && strings.Contains(e.Message, substr) {
			return true
		}
	}
	return false
}

func mustJSON(v any) io.Reader {
	b, _ := json.Marshal(v)
	return bytes.NewReader(b)
}

const (
	farmerID uint64 = 1
	lenderID uint64 = 2
	adminID  uint64 = 3
	password        = "s3cret-pass"
)

// ---- in-memory stores behind the function mocks ----

type loanStore struct {
	rows    map[uint64]loandomain.Loan
	next    uint64
	creates int
	failAll error
}

func (s *loanStore) repo() *loanmock.Repo {
	get := func(_ context.Context, id uint64) (*loandomain.Loan, error) {
		l, ok := s.rows[id]
		if !ok {
			return nil, loandomain.ErrNotFound
		}
		return &l, nil
	}
	filter := func(keep func(loandomain.Loan) bool) ([]loandomain.Loan, error) {
		if s.failAll != nil {
			return nil, s.failAll
		}
		var out []loandomain.Loan
		for _, l := range s.rows {
			if keep(l) {
				out = append(out, l)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return out, nil
	}
	return &loanmock.Repo{
		CreateFn: func(_ context.Context, l *loandomain.Loan) error {
			s.next++
			s.creates++
			l.ID = s.next
			s.rows[l.ID] = *l
			return nil
		},
		SaveFn: func(_ context.Context, l *loandomain.Loan) error {
			s.rows[l.ID] = *l
			return nil
		},
		GetByIDFn:          get,
		GetByIDForUpdateFn: get,
		ListByFarmerFn: func(_ context.Context, id uint64) ([]loandomain.Loan, error) {
			return filter(func(l loandomain.Loan) bool { return l.FarmerID == id })
		},
		ListByLenderFn: func(_ context.Context, id uint64) ([]loandomain.Loan, error) {
			return filter(func(l loandomain.Loan) bool { return l.LenderID != nil && *l.LenderID == id })
		},
		ListByStatusFn: func(_ context.Context, st loandomain.Status) ([]loandomain.Loan, error) {
			return filter(func(l loandomain.Loan) bool { return l.Status == st })
		},
		ListAllFn: func(context.Context) ([]loandomain.Loan, error) {
			return filter(func(loandomain.Loan) bool { return true })
		},
	}
}

type receiptStore struct {
	rows map[uint64]receiptdomain.Receipt
	next uint64
}

func (s *receiptStore) repo() *receiptmock.Repo {
	get := func(_ context.Context, id uint64) (*receiptdomain.Receipt, error) {
		r, ok := s.rows[id]
		if !ok {
			return nil, receiptdomain.ErrNotFound
		}
		return &r, nil
	}
	filter := func(keep func(receiptdomain.Receipt) bool) ([]receiptdomain.Receipt, error) {
		var out []receiptdomain.Receipt
		for _, r := range s.rows {
			if keep(r) {
				out = append(out, r)
			}
		}
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
		return out, nil
	}
	return &receiptmock.Repo{
		CreateFn: func(_ context.Context, r *receiptdomain.Receipt) error {
			s.next++
			r.ID = s.next
			s.rows[r.ID] = *r
			return nil
		},
		SaveFn: func(_ context.Context, r *receiptdomain.Receipt) error {
			s.rows[r.ID] = *r
			return nil
		},
		GetByIDFn:          get,
		GetByIDForUpdateFn: get,
		ListByFarmerFn: func(_ context.Context, id uint64) ([]receiptdomain.Receipt, error) {
			return filter(func(r receiptdomain.Receipt) bool { return r.FarmerID == id })
		},
		ListByStatusFn: func(_ context.Context, st receiptdomain.Status) ([]receiptdomain.Receipt, error) {
			return filter(func(r receiptdomain.Receipt) bool { return r.Status == st })
		},
		ListByLocationFn: func(_ context.Context, loc string) ([]receiptdomain.Receipt, error) {
			return filter(func(r receiptdomain.Receipt) bool { return r.WarehouseLocation == loc })
		},
		ListAllFn: func(context.Context) ([]receiptdomain.Receipt, error) {
			return filter(func(receiptdomain.Receipt) bool { return true })
		},
	}
}

type userStore struct {
	rows map[uint64]user.User
	next uint64
}

func (s *userStore) find(match func(user.User) bool) *user.User {
	for _, u := range s.rows {
		if match(u) {
			cp := u
			return &cp
		}
	}
	return nil
}

func (s *userStore) repo() *usermock.Repo {
	return &usermock.Repo{
		CreateFn: func(_ context.Context, u *user.User) error {
			s.next++
			u.ID = s.next
			s.rows[u.ID] = *u
			return nil
		},
		GetByIDFn: func(_ context.Context, id uint64) (*user.User, error) {
			if u := s.find(func(u user.User) bool { return u.ID == id }); u != nil {
				return u, nil
			}
			return nil, user.ErrNotFound
		},
		GetByIDsFn: func(_ context.Context, ids []uint64) ([]user.User, error) {
			var out []user.User
			for _, id := range ids {
				if u, ok := s.rows[id]; ok {
					out = append(out, u)
				}
			}
			return out, nil
		},
		GetByUsernameFn: func(_ context.Context, name string) (*user.User, error) {
			if u := s.find(func(u user.User) bool { return u.Username == name }); u != nil {
				return u, nil
			}
			return nil, user.ErrNotFound
		},
		ExistsByUsernameFn: func(_ context.Context, name string) (bool, error) {
			return s.find(func(u user.User) bool { return u.Username == name }) != nil, nil
		},
		ExistsByEmailFn: func(_ context.Context, email string) (bool, error) {
			return s.find(func(u user.User) bool { return u.Email == email }) != nil, nil
		},
	}
}

// ---- application fixture ----

type app struct {
	e        *echo.Echo
	loans    *loanStore
	receipts *receiptStore
	users    *userStore
	redis    *miniredis.Miniredis
	issuer   *token.Issuer

	loanH    *LoanHandler
	receiptH *ReceiptHandler
	authH    *AuthHandler
}

var t0 = time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)

func newApp(t *testing.T) *app {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	a := &app{
		loans:    &loanStore{rows: map[uint64]loandomain.Loan{}},
		receipts: &receiptStore{rows: map[uint64]receiptdomain.Receipt{}},
		users:    &userStore{rows: map[uint64]user.User{}},
		redis:    mr,
		issuer:   token.NewIssuer("http-test-secret-0123456789", time.Hour, 24*time.Hour, nil),
	}
	for _, u := range []user.User{
		{ID: farmerID, Username: "siti", Email: "siti@example.com", FullName: "Siti Aminah", Role: user.RoleFarmer, IsActive: true},
		{ID: lenderID, Username: "bank", Email: "bank@example.com", FullName: "Bank Tani", Role: user.RoleLender, IsActive: true},
		{ID: adminID, Username: "root", Email: "root@example.com", FullName: "Admin", Role: user.RoleAdmin, IsActive: true},
	} {
		if err := u.SetPassword(password); err != nil {
			t.Fatalf("hash: %v", err)
		}
		a.users.rows[u.ID] = u
	}
	a.users.next = adminID

	users := a.users.repo()
	loanRepo := a.loans.repo()
	receiptRepo := a.receipts.repo()
	tx := uowmock.Passthrough(uow.Repos{Loans: loanRepo, Receipts: receiptRepo, Users: users})
	clk := clock.Fixed(t0)
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)

	a.loanH = NewLoanHandler(loan.NewUsecase(loanRepo, users, tx, clk, nil, m), nil)
	a.receiptH = NewReceiptHandler(receipt.NewUsecase(receiptRepo, users, tx, id.NewGenerator(clk, nil), clk, nil, m), nil)
	a.authH = NewAuthHandler(auth.NewUsecase(auth.Deps{
		Users:    users,
		Tx:       tx,
		OTPs:     cache.NewOTPStore(rdb, 5*time.Minute),
		OTPTTL:   5 * time.Minute,
		Codes:    id.NewGenerator(clk, nil),
		Notifier: notify.NewLog(zap.NewNop()),
		Tokens:   a.issuer,
		Clock:    clk,
		Metrics:  m,
	}), nil)

	a.e = echo.New()
	a.e.Validator = NewValidator()
	Routes{
		Health:   NewHandler(clk),
		Loans:    a.loanH,
		Receipts: a.receiptH,
		Auth:     a.authH,
		Issuer:   a.issuer,
		Redis:    rdb,
		IdempTTL: time.Minute,
		Metrics:  promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	}.Register(a.e)
	return a
}

func (a *app) token(t *testing.T, u uint64) string {
	t.Helper()
	usr := a.users.rows[u]
	tok, err := a.issuer.IssueAccess(usr.ID, usr.Username, string(usr.Role))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return tok
}

// do sends a request through the full router. Mutating calls get a fresh
// request id unless one is set in hdr.
func (a *app) do(t *testing.T, method, path string, body any, as uint64, hdr map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		r = mustJSON(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if as != 0 {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+a.token(t, as))
	}
	if method != stdhttp.MethodGet {
		req.Header.Set("X-Request-Id", uuid.NewString())
		req.Header.Set("X-Request-At", strconv.FormatInt(time.Now().Unix(), 10))
	}
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	a.e.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("bad json: %v; raw=%s", err, rec.Body.String())
	}
	return v
}
