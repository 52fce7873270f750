// Package scoring implements the normalization formulas, the income/assets
// band scorer and the composite scoring engine.
package scoring

import "math"

// Raw score domains and normalized component ranges.
const (
	creditMin = 300
	creditMax = 850

	creditWeight       = 400
	incomeAssetsWeight = 300
	esgWeight          = 300

	percentMax = 100
)

// NormalizeCredit maps a raw bureau score in [300,850] onto the 0-400
// credit component. Out-of-domain inputs are clamped first, so the
// boundary outputs are exact: 300 -> 0, 850 -> 400.
func NormalizeCredit(score int) int {
	c := clampInt(score, creditMin, creditMax)
	return int(math.Round(float64(c-creditMin) / float64(creditMax-creditMin) * creditWeight))
}

// NormalizeIncomeAssets maps a 0-100 income/assets sub-score onto the
// 0-300 income component.
func NormalizeIncomeAssets(score int) int {
	c := clampInt(score, 0, percentMax)
	return int(math.Round(float64(c) / percentMax * incomeAssetsWeight))
}

// NormalizeESG maps a 0-100 ESG overall score onto the 0-300 ESG component.
func NormalizeESG(score int) int {
	c := clampInt(score, 0, percentMax)
	return int(math.Round(float64(c) / percentMax * esgWeight))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
