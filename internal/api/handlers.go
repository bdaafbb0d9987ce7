/*
handlers.go - HTTP API handlers for payroll

ENDPOINTS:
  GET    /api/employees                   List employees
  POST   /api/employees                   Register employee
  GET    /api/employees/{id}              Employee details
  POST   /api/employees/{id}/payroll      Settle a pay period and store YTD
  GET    /api/employees/{id}/ytd/{year}   Year-to-date snapshot
  POST   /api/employees/{id}/projection   Rest-of-year projection, nothing stored
  POST   /api/employees/{id}/compare      Policy comparison, nothing stored
  POST   /api/calculate                   Settle without storing anything
  GET    /api/rules/{year}                Rules used for a year

PAY STUB FORMATS:
  Payroll and calculate responses are JSON by default. ?format=pdf (or csv,
  html, console) returns the rendered pay stub instead. Comparisons accept
  ?format=table, csv or json.

ERROR HANDLING:
  - 400: invalid input or rules
  - 404: unknown employee or year
  - 500: store failures
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rgehrsitz/paygo/internal/compare"
	"github.com/rgehrsitz/paygo/internal/domain"
	"github.com/rgehrsitz/paygo/internal/output"
	"github.com/rgehrsitz/paygo/internal/payroll"
)

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Payroll *payroll.Service
}

// NewHandler creates a new handler over the payroll service.
func NewHandler(svc *payroll.Service) *Handler {
	return &Handler{Payroll: svc}
}

// ListEmployees returns all employees.
// GET /api/employees
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	emps, err := h.Payroll.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	dtos := make([]EmployeeDTO, 0, len(emps))
	for _, e := range emps {
		dtos = append(dtos, toEmployeeDTO(e))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee registers an employee.
// POST /api/employees
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	emp, err := h.Payroll.AddEmployee(r.Context(), req.Name, req.HourlyWage)
	if err != nil {
		writeDomainError(w, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// GetEmployee returns one employee.
// GET /api/employees/{id}
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, err := h.Payroll.GetEmployee(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, "Failed to get employee", err)
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(emp))
}

// RunPayroll settles a period for the employee and stores the new YTD.
// POST /api/employees/{id}/payroll
func (h *Handler) RunPayroll(w http.ResponseWriter, r *http.Request) {
	var req PayPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pay_date format (use YYYY-MM-DD)", err)
		return
	}
	stub, err := h.Payroll.RunPayroll(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeDomainError(w, "Failed to run payroll", err)
		return
	}
	writeStub(w, r, http.StatusCreated, stub)
}

// Calculate settles a period against the snapshot in the request.
// POST /api/calculate
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	in, err := req.Period.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pay_date format (use YYYY-MM-DD)", err)
		return
	}
	ytd := domain.NewEmployeeYtd("", in.PayDate.Year())
	if req.Ytd != nil {
		ytd = *req.Ytd
	}
	stub, err := h.Payroll.Calculate(req.EmployeeName, in, ytd)
	if err != nil {
		writeDomainError(w, "Failed to calculate", err)
		return
	}
	writeStub(w, r, http.StatusOK, stub)
}

// GetYtd returns an employee's snapshot for one year.
// GET /api/employees/{id}/ytd/{year}
func (h *Handler) GetYtd(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	ytd, err := h.Payroll.Ytd(r.Context(), chi.URLParam(r, "id"), year)
	if err != nil {
		writeDomainError(w, "Failed to get year-to-date", err)
		return
	}
	writeJSON(w, http.StatusOK, toYtdDTO(ytd))
}

// ProjectYear settles the rest of the year from the employee's snapshot.
// POST /api/employees/{id}/projection
func (h *Handler) ProjectYear(w http.ResponseWriter, r *http.Request) {
	var req PayPeriodRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	in, err := req.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pay_date format (use YYYY-MM-DD)", err)
		return
	}
	projection, err := h.Payroll.ProjectYear(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeDomainError(w, "Failed to project year", err)
		return
	}
	writeJSON(w, http.StatusOK, projection)
}

// ComparePolicies projects the rest of the year under several policies.
// POST /api/employees/{id}/compare
func (h *Handler) ComparePolicies(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	in, err := req.Period.toInput()
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pay_date format (use YYYY-MM-DD)", err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if _, err := compare.Render(&compare.ComparisonSet{}, format); err != nil {
		writeError(w, http.StatusBadRequest, "Unsupported format", err)
		return
	}
	set, err := h.Payroll.ComparePolicies(r.Context(), chi.URLParam(r, "id"), in, compare.CompareOptions{
		BaseVariant: req.Base,
		Variants:    req.Variants,
	})
	if err != nil {
		writeDomainError(w, "Failed to compare policies", err)
		return
	}
	if format == "json" {
		writeJSON(w, http.StatusOK, set)
		return
	}
	out, err := compare.Render(set, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render comparison", err)
		return
	}
	ct := "text/plain; charset=utf-8"
	if format == "csv" {
		ct = "text/csv"
	}
	w.Header().Set("Content-Type", ct)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(out))
}

// GetRules returns the rules applied to pay dates in a year.
// GET /api/rules/{year}
func (h *Handler) GetRules(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid year", err)
		return
	}
	rules, err := h.Payroll.Rules(year)
	if err != nil {
		writeDomainError(w, "Failed to get rules", err)
		return
	}
	writeJSON(w, http.StatusOK, rules)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeStub(w http.ResponseWriter, r *http.Request, status int, stub *output.PayStub) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	f := output.GetFormatterByName(format)
	if f == nil {
		_, err := output.Render(stub, format)
		writeError(w, http.StatusBadRequest, "Unsupported format", err)
		return
	}
	data, err := f.Format(stub)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render pay stub", err)
		return
	}
	w.Header().Set("Content-Type", contentTypes[f.Name()])
	w.WriteHeader(status)
	w.Write(data)
}

var contentTypes = map[string]string{
	"json":    "application/json",
	"csv":     "text/csv",
	"html":    "text/html; charset=utf-8",
	"pdf":     "application/pdf",
	"console": "text/plain; charset=utf-8",
}

func writeDomainError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, message, err)
	case errors.Is(err, domain.ErrEmployeeNotFound), errors.Is(err, domain.ErrUnknownYear):
		writeError(w, http.StatusNotFound, message, err)
	default:
		writeError(w, http.StatusInternalServerError, message, err)
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
