// internal/models/quote.go
package models

// Breakdown lists every modifier that went into a quote, for display and
// auditability. Percentages are fractions of base (0.10 = 10%); HealthFee
// is a flat amount in currency units.
type Breakdown struct {
	AssetPct       float64 `json:"assetPct"`
	GencodePct     float64 `json:"gencodePct"`
	ExclusivityPct float64 `json:"exclPct"`
	RushPct        float64 `json:"rushPct"`
	HealthFee      int     `json:"healthFee"`
}

// Quote is the result of pricing a SlotSet. Either Exact is set (Ranged
// false) or Min/Max are set (Ranged true). All amounts are already rounded
// to the nearest thousand currency units. Immutable once computed.
type Quote struct {
	Exact  int  `json:"exact,omitempty"`
	Min    int  `json:"min,omitempty"`
	Max    int  `json:"max,omitempty"`
	Ranged bool `json:"ranged"`

	Base      int       `json:"base"`
	Breakdown Breakdown `json:"breakdown"`
}

// Number returns the headline figure: the exact amount, or the low end of
// a ranged quote.
func (q Quote) Number() int {
	if q.Ranged {
		return q.Min
	}
	return q.Exact
}
