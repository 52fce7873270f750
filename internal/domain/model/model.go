// Package model contains domain models passed between layers.
package model

import (
	"time"

	"github.com/halcyonfi/verdict/internal/domain/decision"
)

// Borrower is a validated single-assessment input. Field validation
// (SSN digit count, non-negative amounts) is the caller's responsibility.
type Borrower struct {
	FullName       string   `json:"full_name"`
	SSN            string   `json:"ssn"`
	AnnualIncome   float64  `json:"annual_income"`
	TotalAssets    float64  `json:"total_assets"`
	EstimatedDebt  *float64 `json:"estimated_debt,omitempty"`
	CompanyName    string   `json:"company_name"`
	IndustrySector string   `json:"industry_sector"`
}

// BatchRow is one raw row of a borrower dataset. All fields arrive as
// strings; numeric parsing failures default to zero instead of failing
// the row.
type BatchRow struct {
	Name         string `json:"name"`
	SSN          string `json:"ssn"`
	AnnualIncome string `json:"annual_income"`
	TotalAssets  string `json:"total_assets"`
	Company      string `json:"company"`
	Industry     string `json:"industry"`
}

// CreditScore is a bureau-style credit rating in [300,850]. The sub-factor
// bands are display-only and never feed the composite score.
type CreditScore struct {
	Score          int       `json:"score"`
	PaymentHistory int       `json:"payment_history"`
	Utilization    int       `json:"utilization"`
	CreditAgeYears int       `json:"credit_age_years"`
	OpenAccounts   int       `json:"open_accounts"`
	Source         string    `json:"source"`
	FetchedAt      time.Time `json:"fetched_at"`
}

// ESGScore is an environmental/social/governance rating. Each pillar and
// the overall value lie in [0,100] after industry modifiers are applied.
type ESGScore struct {
	Environmental int       `json:"environmental"`
	Social        int       `json:"social"`
	Governance    int       `json:"governance"`
	Overall       int       `json:"overall"`
	Industry      string    `json:"industry"`
	Source        string    `json:"source"`
	FetchedAt     time.Time `json:"fetched_at"`
}

// IncomeAssetsScore is the 0-100 sub-score derived from debt-to-income and
// asset-coverage band lookups. It is a step function, not a smooth gradient.
type IncomeAssetsScore struct {
	DebtToIncomeRatio  float64 `json:"debt_to_income_ratio"`
	AssetCoverageRatio float64 `json:"asset_coverage_ratio"`
	Score              int     `json:"score"`
}

// CompositeScore is the 0-1000 weighted total driving the lending decision.
// Total always equals the exact sum of the three components, and Decision
// is always decision.FromTotal(Total).
type CompositeScore struct {
	Total            int               `json:"total"`
	CreditComponent  int               `json:"credit_component"`
	IncomeComponent  int               `json:"income_component"`
	ESGComponent     int               `json:"esg_component"`
	Decision         decision.Decision `json:"decision"`
	ProcessingTimeMs int64             `json:"processing_time_ms"`
}

// LoanTerms exists only for APPROVED decisions. MonthlyPayment is always
// the amortization formula output for (PrincipalAmount, InterestRate,
// TermMonths), and TotalInterest = MonthlyPayment*TermMonths - Principal.
type LoanTerms struct {
	PrincipalAmount float64   `json:"principal_amount"`
	InterestRate    float64   `json:"interest_rate"`
	TermMonths      int       `json:"term_months"`
	MonthlyPayment  float64   `json:"monthly_payment"`
	TotalInterest   float64   `json:"total_interest"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Assessment bundles everything computed for a single borrower.
// Terms is nil unless the decision is APPROVED.
type Assessment struct {
	Credit       CreditScore       `json:"credit"`
	ESG          ESGScore          `json:"esg"`
	IncomeAssets IncomeAssetsScore `json:"income_assets"`
	Composite    CompositeScore    `json:"composite"`
	Terms        *LoanTerms        `json:"terms,omitempty"`
}

// BatchResult is the per-row outcome of a batch run. Rows that fail carry
// an Error message, a zero score and a REJECTED decision.
type BatchResult struct {
	RowIndex         int               `json:"row_index"`
	BorrowerName     string            `json:"borrower_name"`
	CompositeScore   int               `json:"composite_score"`
	Decision         decision.Decision `json:"decision"`
	ProcessingTimeMs int64             `json:"processing_time_ms"`
	Error            string            `json:"error,omitempty"`
}

// BatchSummary aggregates a batch run. TotalProcessed is computed as the
// sum of the four buckets, never taken from the input row count.
type BatchSummary struct {
	TotalProcessed int     `json:"total_processed"`
	ApprovedCount  int     `json:"approved_count"`
	ReviewCount    int     `json:"review_count"`
	RejectedCount  int     `json:"rejected_count"`
	ErrorCount     int     `json:"error_count"`
	TotalTimeMs    int64   `json:"total_time_ms"`
	AverageTimeMs  float64 `json:"average_time_ms"`
}
