package http

import (
	"errors"
	stdhttp "net/http"
	"strings"
	"testing"

	loandomain "agricredit-backend/internal/domain/loan"
	uc "agricredit-backend/internal/usecase/loan"

	"github.com/shopspring/decimal"
)

func applyBody() map[string]any {
	return map[string]any{
		"amount":             "5000000.50",
		"purpose":            "rice seedlings",
		"interest_rate":      1.5,
		"duration_in_months": 1,
	}
}

func TestApply_FarmerDefaultsToSelf(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, stdhttp.MethodPost, "/api/loans/apply", applyBody(), farmerID, nil)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
	got := decode[uc.LoanDTO](t, rec)
	if got.FarmerID != farmerID || got.FarmerName != "Siti Aminah" {
		t.Fatalf("unexpected owner: %+v", got)
	}
	if got.Status != string(loandomain.StatusPending) {
		t.Fatalf("status = %s, want PENDING", got.Status)
	}
	if !got.Amount.Equal(decimal.RequireFromString("5000000.50")) {
		t.Fatalf("amount = %s", got.Amount)
	}
	// Jan 31 + 1 month clamps to Feb 28
	if got.DueDate.Format("2006-01-02") != "2025-02-28" {
		t.Fatalf("due date = %s", got.DueDate)
	}
}

func TestApply_AdminMustNameFarmer(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, stdhttp.MethodPost, "/api/loans/apply", applyBody(), adminID, nil)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	resp := decode[ErrorResponse](t, rec)
	if !containsFieldMsg(resp.Details, "farmer_id", "is required") {
		t.Fatalf("details = %+v", resp.Details)
	}

	body := applyBody()
	body["farmer_id"] = farmerID
	rec = a.do(t, stdhttp.MethodPost, "/api/loans/apply", body, adminID, nil)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("status = %d, want 201; body=%s", rec.Code, rec.Body.String())
	}
}

func TestApply_ValidationErrors(t *testing.T) {
	a := newApp(t)

	body := map[string]any{
		"amount":             "12.345",
		"purpose":            "",
		"interest_rate":      -1,
		"duration_in_months": 0,
	}
	rec := a.do(t, stdhttp.MethodPost, "/api/loans/apply", body, farmerID, nil)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	resp := decode[ErrorResponse](t, rec)
	for field, msg := range map[string]string{
		"amount":             "2 decimal places",
		"purpose":            "is required",
		"interest_rate":      "greater than or equal to 0",
		"duration_in_months": "is required",
	} {
		if !containsFieldMsg(resp.Details, field, msg) {
			t.Errorf("missing %s %q in %+v", field, msg, resp.Details)
		}
	}
	if a.loans.creates != 0 {
		t.Fatalf("nothing should be stored, got %d creates", a.loans.creates)
	}
}

func TestApply_BadBody(t *testing.T) {
	a := newApp(t)
	rec := a.do(t, stdhttp.MethodPost, "/api/loans/apply", "not an object", farmerID, nil)
	if rec.Code != stdhttp.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestApply_UnknownFarmer(t *testing.T) {
	a := newApp(t)
	body := applyBody()
	body["farmer_id"] = 99
	rec := a.do(t, stdhttp.MethodPost, "/api/loans/apply", body, adminID, nil)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestLoanLifecycleOverHTTP(t *testing.T) {
	a := newApp(t)

	rec := a.do(t, stdhttp.MethodPost, "/api/loans/apply", applyBody(), farmerID, nil)
	if rec.Code != stdhttp.StatusCreated {
		t.Fatalf("apply = %d", rec.Code)
	}
	l := decode[uc.LoanDTO](t, rec)

	// disburse before approval
	rec = a.do(t, stdhttp.MethodPut, "/api/loans/1/disburse", nil, lenderID, nil)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("early disburse = %d, want 409", rec.Code)
	}

	// lender approves without naming itself
	rec = a.do(t, stdhttp.MethodPut, "/api/loans/1/approve", nil, lenderID, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("approve = %d; body=%s", rec.Code, rec.Body.String())
	}
	l = decode[uc.LoanDTO](t, rec)
	if l.Status != "APPROVED" || l.LenderID == nil || *l.LenderID != lenderID || l.LenderName != "Bank Tani" {
		t.Fatalf("unexpected approved loan: %+v", l)
	}
	if l.ApprovedDate == nil || !l.ApprovedDate.Equal(t0) {
		t.Fatalf("approved date = %v", l.ApprovedDate)
	}

	// second approval is a state conflict
	rec = a.do(t, stdhttp.MethodPut, "/api/loans/1/approve?lender_id=2", nil, adminID, nil)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("re-approve = %d, want 409", rec.Code)
	}

	rec = a.do(t, stdhttp.MethodPut, "/api/loans/1/disburse", nil, lenderID, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("disburse = %d", rec.Code)
	}
	l = decode[uc.LoanDTO](t, rec)
	if l.Status != "DISBURSED" || l.DisbursementDate == nil {
		t.Fatalf("unexpected disbursed loan: %+v", l)
	}

	rec = a.do(t, stdhttp.MethodGet, "/api/loans/1", nil, farmerID, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("get = %d", rec.Code)
	}
	if got := decode[uc.LoanDTO](t, rec); got.Status != "DISBURSED" || got.IntegrityHash == "" {
		t.Fatalf("unexpected loan: %+v", got)
	}
}

func TestReject_RecordsRemarks(t *testing.T) {
	a := newApp(t)
	a.do(t, stdhttp.MethodPost, "/api/loans/apply", applyBody(), farmerID, nil)

	rec := a.do(t, stdhttp.MethodPut, "/api/loans/1/reject?remarks=insufficient+collateral", nil, lenderID, nil)
	if rec.Code != stdhttp.StatusOK {
		t.Fatalf("reject = %d", rec.Code)
	}
	got := decode[uc.LoanDTO](t, rec)
	if got.Status != "REJECTED" || got.Remarks != "insufficient collateral" {
		t.Fatalf("unexpected loan: %+v", got)
	}

	rec = a.do(t, stdhttp.MethodPut, "/api/loans/1/reject?remarks=again", nil, lenderID, nil)
	if rec.Code != stdhttp.StatusConflict {
		t.Fatalf("second reject = %d, want 409", rec.Code)
	}
}

func TestReject_RemarksValidation(t *testing.T) {
	a := newApp(t)
	a.do(t, stdhttp.MethodPost, "/api/loans/apply", applyBody(), farmerID, nil)

	tests := []struct {
		name  string
		query string
		msg   string
	}{
		{"missing", "", "is required"},
		{"blank", "?remarks=", "is required"},
		{"too long", "?remarks=" + strings.Repeat("x", 1001), "at most 1000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(t, stdhttp.MethodPut, "/api/loans/1/reject"+tt.query, nil, lenderID, nil)
			if rec.Code != stdhttp.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want 422", rec.Code)
			}
			if resp := decode[ErrorResponse](t, rec); !containsFieldMsg(resp.Details, "remarks", tt.msg) {
				t.Fatalf("details = %+v", resp.Details)
			}
		})
	}
	if got := a.loans.rows[1].Status; got != loandomain.StatusPending {
		t.Fatalf("loan status = %s after refused rejects", got)
	}
}

func TestListByStatus_Details(t *testing.T) {
	a := newApp(t)
	rec := a.do(t, stdhttp.MethodGet, "/api/loans/status/paid", nil, farmerID, nil)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if resp := decode[ErrorResponse](t, rec); !containsFieldMsg(resp.Details, "status", "PENDING") {
		t.Fatalf("details = %+v", resp.Details)
	}

	rec = a.do(t, stdhttp.MethodGet, "/api/warehouse/receipts/status/gone", nil, lenderID, nil)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if resp := decode[ErrorResponse](t, rec); !containsFieldMsg(resp.Details, "status", "ACTIVE") {
		t.Fatalf("details = %+v", resp.Details)
	}
}

func TestApprove_AdminNeedsLenderID(t *testing.T) {
	a := newApp(t)
	a.do(t, stdhttp.MethodPost, "/api/loans/apply", applyBody(), farmerID, nil)

	rec := a.do(t, stdhttp.MethodPut, "/api/loans/1/approve", nil, adminID, nil)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	rec = a.do(t, stdhttp.MethodPut, "/api/loans/1/approve?lender_id=abc", nil, adminID, nil)
	if rec.Code != stdhttp.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	rec = a.do(t, stdhttp.MethodPut, "/api/loans/1/approve?lender_id=42", nil, adminID, nil)
	if rec.Code != stdhttp.StatusNotFound {
		t.Fatalf("unknown lender = %d, want 404", rec.Code)
	}
	if a.loans.rows[1].Status != loandomain.StatusPending {
		t.Fatalf("loan must stay pending, got %s", a.loans.rows[1].Status)
	}
}

func TestLoanReads(t *testing.T) {
	a := newApp(t)
	a.do(t, stdhttp.MethodPost, "/api/loans/apply", applyBody(), farmerID, nil)
	a.do(t, stdhttp.MethodPost, "/api/loans/apply", applyBody(), farmerID, nil)
	a.do(t, stdhttp.MethodPut, "/api/loans/2/approve", nil, lenderID, nil)

	tests := []struct {
		name    string
		path    string
		code    int
		wantIDs []uint64
	}{
		{"all", "/api/loans", 200, []uint64{1, 2}},
		{"by farmer", "/api/loans/farmer/1", 200, []uint64{1, 2}},
		{"by lender", "/api/loans/lender/2", 200, []uint64{2}},
		{"by status any case", "/api/loans/status/pending", 200, []uint64{1}},
		{"empty status", "/api/loans/status/CLOSED", 200, []uint64{}},
		{"unknown status", "/api/loans/status/paid", 422, nil},
		{"bad id", "/api/loans/zero", 422, nil},
		{"missing", "/api/loans/77", 404, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := a.do(t, stdhttp.MethodGet, tt.path, nil, farmerID, nil)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d; body=%s", rec.Code, tt.code, rec.Body.String())
			}
			if tt.wantIDs == nil {
				return
			}
			got := decode[[]uc.LoanDTO](t, rec)
			if len(got) != len(tt.wantIDs) {
				t.Fatalf("got %d loans, want %d", len(got), len(tt.wantIDs))
			}
			for i, id := range tt.wantIDs {
				if got[i].ID != id || got[i].FarmerName != "Siti Aminah" {
					t.Fatalf("loan %d = %+v", i, got[i])
				}
			}
		})
	}
}

func TestLoanList_StoreFailureIsHidden(t *testing.T) {
	a := newApp(t)
	a.loans.failAll = errors.New("connection reset by peer")

	rec := a.do(t, stdhttp.MethodGet, "/api/loans", nil, farmerID, nil)
	if rec.Code != stdhttp.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if got := decode[ErrorResponse](t, rec); got.Error != "internal server error" {
		t.Fatalf("error leaked: %+v", got)
	}
}
