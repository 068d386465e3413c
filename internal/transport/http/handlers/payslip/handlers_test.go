package paysliphandler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"payslip/internal/domain/payroll"
	"payslip/internal/domain/payslip"
	"payslip/internal/layout"
	"payslip/internal/platform/logging"
	"payslip/internal/platform/render"
	"payslip/internal/requestctx"
	"payslip/internal/transport/http/middleware"
)

const sampleBody = `{
  "employee": {"code": "EMP-0042", "name": "Jane Doe", "department": "Sales"},
  "company": {"name": "Acme Traders Pvt Ltd", "address": "12 Marine Drive, Mumbai"},
  "period": {"label": "May 2021", "workingDays": "31", "payableDays": "31", "lopDays": "0", "paymentMode": "Bank Transfer"},
  "earnings": {
    "standard": {"components": {"basic": "50000", "hra": "25000", "special": "25000"}, "total": "100000"},
    "actual": {"components": {"basic": "50000", "hra": "25000", "special": "25000"}, "total": "100000.00"}
  },
  "deductions": {"components": {"pf": "6000", "incomeTax": "34000"}, "total": "40000.00"},
  "netPay": {"currency": "INR", "amount": "60000.00", "amountInWords": "Sixty Thousand Only"}
}`

type failingRenderer struct{}

func (failingRenderer) Measurer() layout.Measurer { return render.NewPDF().Measurer() }
func (failingRenderer) Extension() string         { return "pdf" }
func (failingRenderer) Render(layout.Document) ([]byte, error) {
	return nil, errors.New("backend unavailable")
}

type fakeStore struct {
	configs map[string]payroll.Config
	sales   map[string][]payroll.SalesRecord
	reports [][]payroll.SalesRecord
	window  payroll.SalesWindow
}

func (f *fakeStore) Config(_ context.Context, name string) (payroll.Config, error) {
	cfg, ok := f.configs[name]
	if !ok {
		return payroll.Config{}, payroll.ErrConfigNotFound
	}
	return cfg, nil
}

func (f *fakeStore) SalesRecords(_ context.Context, window payroll.SalesWindow) ([]payroll.SalesRecord, error) {
	f.window = window
	return f.sales[window.EmployeeCode], nil
}

func (f *fakeStore) SubordinateSales(context.Context, payroll.SalesWindow) ([][]payroll.SalesRecord, error) {
	return f.reports, nil
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func slabConfig() payroll.Config {
	return payroll.Config{
		GSTRatePercent: d("18"),
		Slabs: []payroll.IncentiveSlab{
			{MinThreshold: d("0"), MaxThreshold: d("100000"), RatePercent: d("5")},
			{MinThreshold: d("100000"), MaxThreshold: d("200000"), RatePercent: d("7")},
		},
	}
}

func newRouter(h *Handler) http.Handler {
	if h.Log == nil {
		h.Log = logging.Discard()
	}
	if h.Service == nil {
		h.Service = payslip.NewService(render.NewPDF(), h.Log, nil)
	}
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Route("/api/v1", h.RegisterRoutes)
	return r
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	RequestID string `json:"requestId"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (%s)", err, rec.Body.String())
	}
	return env
}

type memoryArchive struct {
	names []string
}

func (m *memoryArchive) Save(_ context.Context, name string, _ []byte) error {
	m.names = append(m.names, name)
	return nil
}

func TestGeneratePayslipReturnsAttachment(t *testing.T) {
	archive := &memoryArchive{}
	router := newRouter(&Handler{Archive: archive})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payslips", strings.NewReader(sampleBody))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="salary-slip-Jane Doe-May 2021.pdf"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Header().Get("Content-Type") != "application/pdf" {
		t.Fatalf("unexpected content type %q", rec.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatalf("expected pdf body")
	}
	if rec.Header().Get("X-Net-Pay-Reconciled") != "true" {
		t.Fatalf("expected sample to reconcile")
	}
	if len(archive.names) != 1 || archive.names[0] != "salary-slip-Jane Doe-May 2021.pdf" {
		t.Fatalf("expected archived copy, got %v", archive.names)
	}
}

func TestGeneratePayslipBackendFailure(t *testing.T) {
	log := logging.Discard()
	archive := &memoryArchive{}
	router := newRouter(&Handler{Service: payslip.NewService(failingRenderer{}, log, nil), Archive: archive, Log: log})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/payslips", strings.NewReader(sampleBody)))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if rec.Header().Get("Content-Disposition") != "" {
		t.Fatalf("no attachment may be sent on failure")
	}
	env := decodeEnvelope(t, rec)
	if env.Success || env.Error.Code != "generation_failed" || !strings.Contains(env.Error.Message, "backend unavailable") {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if env.RequestID == "" {
		t.Fatalf("expected request id in envelope")
	}
	if len(archive.names) != 0 {
		t.Fatalf("nothing may be archived on failure")
	}
}

func TestGeneratePayslipRejectsBadInput(t *testing.T) {
	router := newRouter(&Handler{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/payslips", strings.NewReader("{")))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	body := `{"employee":{"name":"Jane Doe"},"config":{"basePay":"1000","formulas":{"hra":"x * ("}}}`
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/payslips", strings.NewReader(body)))
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 for a bad formula, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error.Code != "invalid_formula" {
		t.Fatalf("unexpected envelope %+v", env)
	}

	rec = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payslips?mailTo=jane@acme.example", strings.NewReader(sampleBody))
	req = req.WithContext(requestctx.WithSubject(req.Context(), "payroll-bot"))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without a mailer, got %d", rec.Code)
	}
}

func TestGeneratePayslipMailNeedsAuthenticatedCaller(t *testing.T) {
	archive := &memoryArchive{}
	router := newRouter(&Handler{Archive: archive})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/payslips?mailTo=someone@elsewhere.example", strings.NewReader(sampleBody)))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for anonymous mail delivery, got %d", rec.Code)
	}
	if env := decodeEnvelope(t, rec); env.Error.Code != "unauthorized" {
		t.Fatalf("unexpected envelope %+v", env)
	}
	if len(archive.names) != 0 {
		t.Fatalf("nothing may be generated for a rejected request, got %v", archive.names)
	}
}

func TestGeneratePayslipAcceptsYAML(t *testing.T) {
	router := newRouter(&Handler{})
	body := "employee:\n  name: Jane Doe\nperiod:\n  label: May 2021\nnetPay:\n  amount: 60000.00\n"

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/payslips", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/yaml")
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("X-Net-Pay-Reconciled") != "false" {
		t.Fatalf("expected mismatch reported for unbalanced request")
	}
}

func TestIncentiveEndpoint(t *testing.T) {
	router := newRouter(&Handler{Defaults: Defaults{Payroll: slabConfig()}})
	body := `{"records":[{"amount":"100000"}],"subordinates":[[{"amount":"50000"}]]}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/incentive", strings.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var data incentiveResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !data.Incentive.Equal(d("5000")) || data.Records != 2 || !data.NetSales.Equal(d("127118.64")) {
		t.Fatalf("unexpected response %+v", data)
	}
}

func TestEmployeeIncentiveEndpoint(t *testing.T) {
	store := &fakeStore{
		configs: map[string]payroll.Config{"sales-2021": slabConfig()},
		sales:   map[string][]payroll.SalesRecord{"EMP-0042": {{Amount: d("100000")}}},
		reports: [][]payroll.SalesRecord{{{Amount: d("50000")}}},
	}
	router := newRouter(&Handler{Store: store})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/employees/EMP-0042/incentive?from=2021-05-01&to=2021-05-31&config=sales-2021", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var data incentiveResponse
	if err := json.Unmarshal(decodeEnvelope(t, rec).Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if !data.Incentive.Equal(d("5000")) || data.EmployeeCode != "EMP-0042" || data.From != "2021-05-01" {
		t.Fatalf("unexpected response %+v", data)
	}
	if store.window.To.Day() != 31 {
		t.Fatalf("expected window passed to store, got %+v", store.window)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/employees/EMP-0042/incentive?from=2021-05-01&to=2021-05-31&config=missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/employees/EMP-0042/incentive?from=2021-05-31&to=2021-05-01", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for inverted window, got %d", rec.Code)
	}
}

func TestEmployeeIncentiveWithoutStore(t *testing.T) {
	router := newRouter(&Handler{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/employees/EMP-0042/incentive?from=2021-05-01&to=2021-05-31", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
