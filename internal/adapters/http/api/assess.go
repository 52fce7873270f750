// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"unicode"

	"github.com/halcyonfi/verdict/internal/domain/model"
)

// ssnDigits is the number of digits expected in an SSN-like identity.
const ssnDigits = 9

// AssessHandler handles single borrower assessment requests.
type AssessHandler struct {
	deps Dependencies
}

// NewAssessHandler creates a new assessment handler.
func NewAssessHandler(deps Dependencies) *AssessHandler {
	return &AssessHandler{deps: deps}
}

// assessRequest mirrors the borrower record supplied by callers.
type assessRequest struct {
	FullName       string   `json:"full_name"`
	SSN            string   `json:"ssn"`
	AnnualIncome   float64  `json:"annual_income"`
	TotalAssets    float64  `json:"total_assets"`
	EstimatedDebt  *float64 `json:"estimated_debt,omitempty"`
	CompanyName    string   `json:"company_name"`
	IndustrySector string   `json:"industry_sector"`
}

func (r assessRequest) validate() error {
	switch {
	case strings.TrimSpace(r.FullName) == "":
		return errors.New("missing full_name")
	case !validSSN(r.SSN):
		return errors.New("invalid ssn; must contain 9 digits")
	case r.AnnualIncome < 0:
		return errors.New("annual_income must not be negative")
	case r.TotalAssets < 0:
		return errors.New("total_assets must not be negative")
	case r.EstimatedDebt != nil && *r.EstimatedDebt < 0:
		return errors.New("estimated_debt must not be negative")
	}
	return nil
}

// validSSN accepts nine digits with optional dashes, e.g. 123-45-6789.
func validSSN(s string) bool {
	digits := 0
	for _, r := range s {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '-':
		default:
			return false
		}
	}
	return digits == ssnDigits
}

// HandlePostAssess handles POST /assess requests.
func (h *AssessHandler) HandlePostAssess(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_assess"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	assessment, err := h.deps.Assess(r.Context(), model.Borrower{
		FullName:       req.FullName,
		SSN:            req.SSN,
		AnnualIncome:   req.AnnualIncome,
		TotalAssets:    req.TotalAssets,
		EstimatedDebt:  req.EstimatedDebt,
		CompanyName:    req.CompanyName,
		IndustrySector: req.IndustrySector,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "assessment_failed", err)
		return
	}

	writeJSON(w, http.StatusOK, assessment)
}
