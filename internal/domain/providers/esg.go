package providers

import (
	"context"
	"math"
	"strings"
	"time"
)

// ESG score generation constants.
const (
	esgBaseMin = 40
	esgBaseMax = 80

	esgScoreMin = 0
	esgScoreMax = 100

	esgSourceName = "mock-esg-provider"
)

// industryModifier holds the additive adjustments applied to the hash-derived
// base pillars before clamping.
type industryModifier struct {
	env, soc, gov int
}

// industryModifiers is the per-sector adjustment table. Unknown industries
// get a zero modifier, i.e. the hash-only baseline.
var industryModifiers = map[string]industryModifier{
	"technology":    {env: 10, soc: 5, gov: 15},
	"energy":        {env: -20, soc: 0, gov: 10},
	"finance":       {env: 5, soc: 10, gov: 20},
	"healthcare":    {env: 0, soc: 15, gov: 5},
	"manufacturing": {env: -10, soc: -5, gov: 0},
	"retail":        {env: 0, soc: 5, gov: 0},
	"agriculture":   {env: -5, soc: 5, gov: 0},
}

// MockESGProvider implements ESGProvider with hash-derived pillar scores and
// an industry-specific modifier table.
type MockESGProvider struct{}

// NewMockESGProvider creates a deterministic mock ESG provider.
func NewMockESGProvider() *MockESGProvider {
	return &MockESGProvider{}
}

// ESGScore derives each pillar from the company name in [40,80], applies the
// industry modifier, clamps to [0,100] and averages the three pillars into
// the overall value.
func (p *MockESGProvider) ESGScore(_ context.Context, company, industry string) (ESGScore, error) {
	mod := industryModifiers[strings.ToLower(strings.TrimSpace(industry))]

	env := clampScore(hashBand(company+":environmental", esgBaseMin, esgBaseMax) + mod.env)
	soc := clampScore(hashBand(company+":social", esgBaseMin, esgBaseMax) + mod.soc)
	gov := clampScore(hashBand(company+":governance", esgBaseMin, esgBaseMax) + mod.gov)

	return ESGScore{
		Environmental: env,
		Social:        soc,
		Governance:    gov,
		Overall:       int(math.Round(float64(env+soc+gov) / 3)),
		Industry:      industry,
		Source:        esgSourceName,
		FetchedAt:     time.Now().UTC(),
	}, nil
}

func clampScore(v int) int {
	if v < esgScoreMin {
		return esgScoreMin
	}
	if v > esgScoreMax {
		return esgScoreMax
	}
	return v
}
