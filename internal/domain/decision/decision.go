// Package decision defines the closed set of lending decisions and the
// threshold classifier that maps a composite total onto one of them.
package decision

// Decision is a lending decision. It is a closed enum; handlers must never
// construct values outside the three constants below.
type Decision string

// Lending decision constants.
const (
	Approved Decision = "APPROVED"
	Review   Decision = "REVIEW"
	Rejected Decision = "REJECTED"
)

// Composite score thresholds. Totals above approveAbove are approved,
// totals below reviewFloor are rejected, everything in between is reviewed.
const (
	approveAbove = 750
	reviewFloor  = 600
)

// FromTotal classifies a composite total into a Decision.
// The boundaries are inclusive on the REVIEW side: 600 and 750 both map to
// REVIEW, 751 is the first APPROVED value and 599 the last REJECTED one.
func FromTotal(total int) Decision {
	switch {
	case total > approveAbove:
		return Approved
	case total >= reviewFloor:
		return Review
	default:
		return Rejected
	}
}

// Valid reports whether d is one of the three known decisions.
func (d Decision) Valid() bool {
	switch d {
	case Approved, Review, Rejected:
		return true
	default:
		return false
	}
}

// String returns the wire representation of the decision.
func (d Decision) String() string {
	return string(d)
}
