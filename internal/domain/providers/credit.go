package providers

import (
	"context"
	"time"
)

// Credit score generation constants.
const (
	creditScoreMin = 300
	creditScoreMax = 850

	creditSourceName = "mock-credit-bureau"
)

// MockCreditBureau implements CreditProvider with hash-derived ratings.
// It is a pure function of the SSN: no internal randomness, no state.
type MockCreditBureau struct{}

// NewMockCreditBureau creates a deterministic mock credit bureau.
func NewMockCreditBureau() *MockCreditBureau {
	return &MockCreditBureau{}
}

// CreditScore derives a rating in [300,850] from the SSN. The sub-factor
// bands are salted with distinct suffixes so they vary independently of the
// headline score; they are display-only and never feed the composite.
func (b *MockCreditBureau) CreditScore(_ context.Context, ssn string) (CreditScore, error) {
	return CreditScore{
		Score:          hashBand(ssn, creditScoreMin, creditScoreMax),
		PaymentHistory: hashBand(ssn+":payment_history", 70, 100),
		Utilization:    hashBand(ssn+":utilization", 5, 90),
		CreditAgeYears: hashBand(ssn+":credit_age", 1, 30),
		OpenAccounts:   hashBand(ssn+":open_accounts", 1, 15),
		Source:         creditSourceName,
		FetchedAt:      time.Now().UTC(),
	}, nil
}
