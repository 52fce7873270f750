package scoring

import "github.com/halcyonfi/verdict/internal/domain/model"

// Income/assets band scoring constants.
const (
	// assumedDTIPercent is applied when no debt estimate is supplied and
	// the borrower reports income.
	assumedDTIPercent = 25.0

	// zeroIncomeDTIPercent pins DTI to 100% whenever income is zero,
	// regardless of the reported debt.
	zeroIncomeDTIPercent = 100.0
)

// dtiBandScore maps a debt-to-income percentage onto its band score.
func dtiBandScore(dti float64) int {
	switch {
	case dti <= 20:
		return 50
	case dti <= 35:
		return 35
	case dti <= 50:
		return 20
	default:
		return 10
	}
}

// acrBandScore maps an asset-coverage ratio onto its band score.
func acrBandScore(acr float64) int {
	switch {
	case acr > 5:
		return 50
	case acr > 3:
		return 40
	case acr > 1:
		return 25
	default:
		return 10
	}
}

// ScoreIncomeAssets derives the 0-100 income/assets sub-score from annual
// income, total assets and an optional debt estimate. The output is a
// monotone step function; callers must not assume smooth gradients.
func ScoreIncomeAssets(annualIncome, totalAssets float64, estimatedDebt *float64) model.IncomeAssetsScore {
	var dti float64
	switch {
	case annualIncome <= 0:
		dti = zeroIncomeDTIPercent
	case estimatedDebt == nil:
		dti = assumedDTIPercent
	default:
		dti = *estimatedDebt / annualIncome * 100
	}

	var acr float64
	if annualIncome > 0 {
		acr = totalAssets / annualIncome
	}

	return model.IncomeAssetsScore{
		DebtToIncomeRatio:  dti,
		AssetCoverageRatio: acr,
		Score:              dtiBandScore(dti) + acrBandScore(acr),
	}
}
