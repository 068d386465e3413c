package paysliphandler

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"payslip/internal/domain/payroll"
	"payslip/internal/domain/payslip"
	"payslip/internal/platform/email"
	"payslip/internal/platform/storage"
	"payslip/internal/transport/http/api"
	"payslip/internal/transport/http/middleware"
	"payslip/internal/transport/http/shared"
)

// Defaults are applied to requests that leave out the company or the
// payroll config.
type Defaults struct {
	Company payslip.Company
	Payroll payroll.Config
}

type Handler struct {
	Service   *payslip.Service
	Store     payroll.StoreAPI
	Archive   payslip.Saver
	Mailer    *email.Sender
	Indicator payslip.Indicator
	Defaults  Defaults
	Log       logrus.FieldLogger
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/payslips", h.handleGenerate)
	r.Post("/incentive", h.handleIncentive)
	r.Get("/employees/{code}/incentive", h.handleEmployeeIncentive)
}

// attachment keeps the rendered document so it can be written back as the
// response body.
type attachment struct {
	filename string
	data     []byte
}

func (a *attachment) Save(_ context.Context, filename string, data []byte) error {
	a.filename = filename
	a.data = data
	return nil
}

func (h *Handler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	req, err := payslip.DecodeRequest(r.Body, formatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		failDecode(w, err, reqID)
		return
	}
	req = req.WithDefaults(h.Defaults.Company, h.Defaults.Payroll)

	out := &attachment{}
	savers := storage.Multi{out}
	if h.Archive != nil {
		savers = append(savers, h.Archive)
	}
	if to := strings.TrimSpace(r.URL.Query().Get("mailTo")); to != "" {
		// Mail leaves the service, so only a verified caller may pick the
		// recipient even when the API itself runs without tokens.
		if subject, _ := middleware.GetSubject(r.Context()); subject == "" {
			api.Fail(w, http.StatusUnauthorized, "unauthorized", "mail delivery requires a bearer token", reqID)
			return
		}
		if h.Mailer == nil || !h.Mailer.Enabled() {
			api.Fail(w, http.StatusBadRequest, "email_disabled", "email delivery is not configured", reqID)
			return
		}
		savers = append(savers, email.Saver{Sender: h.Mailer, To: to})
	}

	res, err := h.Service.Generate(r.Context(), req, savers, h.Indicator)
	if err != nil {
		status, code := http.StatusInternalServerError, "generation_failed"
		if errors.Is(err, payslip.ErrFormula) {
			status, code = http.StatusUnprocessableEntity, "invalid_formula"
		}
		api.Fail(w, status, code, err.Error(), reqID)
		return
	}

	w.Header().Set("X-Incentive", res.Incentive.String())
	w.Header().Set("X-Net-Pay-Reconciled", boolHeader(res.Reconciliation.Matches))
	api.Attachment(w, contentTypeFor(out.filename), out.filename, out.data)
}

type incentiveResponse struct {
	EmployeeCode string `json:"employeeCode,omitempty"`
	From         string `json:"from,omitempty"`
	To           string `json:"to,omitempty"`
	payroll.IncentiveSummary
}

func (h *Handler) handleIncentive(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())

	var payload payroll.IncentiveInput
	if err := decodeJSON(r, &payload); err != nil {
		failDecode(w, err, reqID)
		return
	}
	cfg := payload.Config
	if cfg.Empty() {
		cfg = h.Defaults.Payroll
	}
	records := payroll.TeamSales(payload.Records, payload.Subordinates...)
	api.Success(w, summarize(records, cfg), reqID)
}

func (h *Handler) handleEmployeeIncentive(w http.ResponseWriter, r *http.Request) {
	reqID := middleware.GetRequestID(r.Context())
	if h.Store == nil {
		api.Fail(w, http.StatusServiceUnavailable, "store_unavailable", "no database configured", reqID)
		return
	}

	code := chi.URLParam(r, "code")
	query := r.URL.Query()
	span, issues := shared.ParseWindow(query)
	if issues.Reject(w, reqID) {
		return
	}

	cfg := h.Defaults.Payroll
	if name := query.Get("config"); name != "" {
		stored, err := h.Store.Config(r.Context(), name)
		if errors.Is(err, payroll.ErrConfigNotFound) {
			api.Fail(w, http.StatusNotFound, "not_found", "payroll config not found", reqID)
			return
		}
		if err != nil {
			h.fail(w, err, "load payroll config", reqID)
			return
		}
		cfg = stored
	}

	window := payroll.SalesWindow{EmployeeCode: code, From: span.From, To: span.To}
	own, err := h.Store.SalesRecords(r.Context(), window)
	if err != nil {
		h.fail(w, err, "load sales", reqID)
		return
	}
	subordinates, err := h.Store.SubordinateSales(r.Context(), window)
	if err != nil {
		h.fail(w, err, "load subordinate sales", reqID)
		return
	}

	resp := summarize(payroll.TeamSales(own, subordinates...), cfg)
	resp.EmployeeCode = code
	resp.From = span.From.Format(time.DateOnly)
	resp.To = span.To.Format(time.DateOnly)
	api.Success(w, resp, reqID)
}

func (h *Handler) fail(w http.ResponseWriter, err error, action, reqID string) {
	h.Log.WithError(err).WithField("requestId", reqID).Error(action + " failed")
	api.Fail(w, http.StatusInternalServerError, "internal_error", "failed to "+action, reqID)
}

func summarize(records []payroll.SalesRecord, cfg payroll.Config) incentiveResponse {
	return incentiveResponse{IncentiveSummary: payroll.Summarize(records, cfg)}
}

func formatFromContentType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return payslip.FormatJSON
	}
	switch mediaType {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return payslip.FormatYAML
	case "application/toml":
		return payslip.FormatTOML
	default:
		return payslip.FormatJSON
	}
}

func contentTypeFor(filename string) string {
	if i := strings.LastIndex(filename, "."); i >= 0 {
		if ct := mime.TypeByExtension(filename[i:]); ct != "" {
			return ct
		}
	}
	return "application/octet-stream"
}

func boolHeader(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
