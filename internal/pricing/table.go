// internal/pricing/table.go
package pricing

import (
	"math"

	"quotebot/internal/models"
)

// Table is the process-wide pricing configuration. It is loaded and
// validated once at startup and read-only afterwards; every lookup helper
// below falls back to zero for an absent key instead of erroring.
type Table struct {
	// Base price indexed by bundle -> format -> platform. The full
	// cross-product of valid enum values must exist; Load refuses a
	// document with holes.
	Base map[string]map[string]map[string]float64 `json:"base"`

	AssetPct   map[string]float64 `json:"asset_pct"`
	GencodePct map[string]float64 `json:"gencode_pct"`

	ExclusivityPctPerMonth float64 `json:"exclusivity_pct_per_month"`
	ExclusivityMaxMonths   int     `json:"exclusivity_max_months"`
	RushPct                float64 `json:"rush_pct"`

	Fees     Fees     `json:"fees"`
	RangePad RangePad `json:"range_pad"`
}

type Fees struct {
	HealthPremiumFlat int `json:"health_premium_flat"`
}

// RangePad holds the low/high multipliers applied to a coarse quote.
type RangePad struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

// Valid enum domains, shared by the quote engine defaults and the
// startup cross-product check.
var (
	Bundles   = []models.Bundle{models.BundleSingle, models.BundleOf3}
	Formats   = []models.Format{models.FormatA, models.FormatB}
	Platforms = []models.Platform{models.PlatformIG, models.PlatformTT, models.PlatformDual}
)

// BasePrice returns the base price for a validated combination. Callers
// pass already-defaulted enum values; Load guarantees the lookup exists.
func (t *Table) BasePrice(b models.Bundle, f models.Format, p models.Platform) float64 {
	return t.Base[string(b)][string(f)][string(p)]
}

// AssetPctFor returns the usage-window percentage, 0 when unset or unknown.
func (t *Table) AssetPctFor(a models.AssetWindow) float64 {
	if a == "" {
		return 0
	}
	return t.AssetPct[string(a)]
}

// GencodePctFor returns the ad-authorization percentage. The display value
// 37d prices as 30d, which the table keeps at zero: the 37-day window is free.
func (t *Table) GencodePctFor(g models.GencodeWindow) float64 {
	if g == "" {
		return 0
	}
	if g == models.Gencode37D {
		g = models.Gencode30D
	}
	return t.GencodePct[string(g)]
}

// ClampExclusivity clamps raw extracted months into [0, max].
func (t *Table) ClampExclusivity(months int) int {
	if months < 0 {
		return 0
	}
	if months > t.ExclusivityMaxMonths {
		return t.ExclusivityMaxMonths
	}
	return months
}

// RoundK rounds half away from zero to the nearest 1,000 currency units.
// Displayed totals depend on this exact behavior.
func RoundK(n float64) int {
	return int(math.Round(n/1000.0)) * 1000
}
