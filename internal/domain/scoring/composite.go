package scoring

import (
	"time"

	"github.com/halcyonfi/verdict/internal/domain/decision"
	"github.com/halcyonfi/verdict/internal/domain/model"
)

// Calculate normalizes the three raw inputs, sums them into the 0-1000
// composite total and classifies the lending decision. The total is always
// the exact integer sum of the three components, and the decision is always
// a pure function of the total.
func Calculate(creditRaw, incomeAssetsRaw, esgRaw int, elapsed time.Duration) model.CompositeScore {
	credit := NormalizeCredit(creditRaw)
	income := NormalizeIncomeAssets(incomeAssetsRaw)
	esg := NormalizeESG(esgRaw)

	total := credit + income + esg

	return model.CompositeScore{
		Total:            total,
		CreditComponent:  credit,
		IncomeComponent:  income,
		ESGComponent:     esg,
		Decision:         decision.FromTotal(total),
		ProcessingTimeMs: elapsed.Milliseconds(),
	}
}
