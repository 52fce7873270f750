// Package loan implements the loan terms engine: principal sizing, rate
// pricing and amortized payment math for approved applications.
package loan

import (
	"math"
	"time"

	"github.com/halcyonfi/verdict/internal/domain/decision"
	"github.com/halcyonfi/verdict/internal/domain/model"
)

// Pricing constants.
const (
	// TermMonths is the fixed amortization term.
	TermMonths = 360

	// BaseRatePercent is the floor annual interest rate.
	BaseRatePercent = 5.0

	// rateScoreCeiling caps the composite total for premium purposes;
	// scores at or above it price at the base rate.
	rateScoreCeiling = 850

	// Income multiplier tiers keyed by composite total.
	tierTopAbove = 800
	tierMidAbove = 700

	multiplierTop = 3.0
	multiplierMid = 2.5
	multiplierLow = 2.0

	monthsPerYear = 12
)

// Calculate produces loan terms for an approved application. It returns nil
// for any decision other than APPROVED; partial or degenerate terms are
// never produced. Inputs are assumed validated and non-negative.
func Calculate(compositeTotal int, annualIncome float64, d decision.Decision) *model.LoanTerms {
	if d != decision.Approved {
		return nil
	}

	principal := math.Round(annualIncome * incomeMultiplier(compositeTotal))
	rate := round2(BaseRatePercent + riskPremium(compositeTotal))
	monthly := MonthlyPayment(principal, rate, TermMonths)

	return &model.LoanTerms{
		PrincipalAmount: principal,
		InterestRate:    rate,
		TermMonths:      TermMonths,
		MonthlyPayment:  monthly,
		TotalInterest:   round2(monthly*TermMonths - principal),
		GeneratedAt:     time.Now().UTC(),
	}
}

// MonthlyPayment applies the standard amortization formula
// M = P * r(1+r)^n / ((1+r)^n - 1) with a monthly rate derived from the
// annual percentage rate. A zero rate degenerates to straight-line P/n.
// The result is rounded to 2 decimals.
func MonthlyPayment(principal, annualRatePercent float64, termMonths int) float64 {
	n := float64(termMonths)
	r := annualRatePercent / 100 / monthsPerYear
	if r == 0 {
		return round2(principal / n)
	}
	growth := math.Pow(1+r, n)
	return round2(principal * r * growth / (growth - 1))
}

// incomeMultiplier tiers the principal by composite total: >800 gets 3.0x
// annual income, >700 gets 2.5x, everything else 2.0x.
func incomeMultiplier(total int) float64 {
	switch {
	case total > tierTopAbove:
		return multiplierTop
	case total > tierMidAbove:
		return multiplierMid
	default:
		return multiplierLow
	}
}

// riskPremium prices the spread above the base rate: one basis point per
// composite point below the 850 ceiling, expressed in percent.
func riskPremium(total int) float64 {
	if total > rateScoreCeiling {
		total = rateScoreCeiling
	}
	return float64(rateScoreCeiling-total) / 100
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
