// internal/quote/engine.go
package quote

import (
	"quotebot/internal/models"
	"quotebot/internal/pricing"
)

// Engine prices a SlotSet against an immutable pricing table. It is pure
// and deterministic: the same SlotSet always yields the same Quote.
type Engine struct {
	table *pricing.Table
}

func NewEngine(table *pricing.Table) *Engine {
	return &Engine{table: table}
}

// resolveFormat defaults anything but an explicit B to A.
func resolveFormat(f models.Format) models.Format {
	if f == models.FormatB {
		return models.FormatB
	}
	return models.FormatA
}

// resolvePlatform defaults unset or out-of-domain values to tt.
func resolvePlatform(p models.Platform) models.Platform {
	switch p {
	case models.PlatformIG, models.PlatformTT, models.PlatformDual:
		return p
	}
	return models.PlatformTT
}

func resolveBundle(b models.Bundle) models.Bundle {
	if b == models.BundleOf3 {
		return models.BundleOf3
	}
	return models.BundleSingle
}

// QuoteFor computes an exact quote, or a padded low/high range when
// slots.Coarse is set. Unrecognized slot values fall back to defaults and
// absent percentage keys resolve to zero; this function never fails.
func (e *Engine) QuoteFor(s models.SlotSet) models.Quote {
	t := e.table

	format := resolveFormat(s.Format)
	platform := resolvePlatform(s.Platform)
	bundle := resolveBundle(s.Bundle)

	base := t.BasePrice(bundle, format, platform)

	assetPct := t.AssetPctFor(s.Asset)
	gencodePct := t.GencodePctFor(s.Gencode)
	exclPct := float64(t.ClampExclusivity(s.ExclusivityOrZero())) * t.ExclusivityPctPerMonth

	rushPct := 0.0
	if s.Rush {
		rushPct = t.RushPct
	}
	healthFee := 0
	if s.Health {
		healthFee = t.Fees.HealthPremiumFlat
	}

	addonsPct := assetPct + gencodePct + exclPct + rushPct
	total := pricing.RoundK(base + float64(healthFee) + base*addonsPct)

	breakdown := models.Breakdown{
		AssetPct:       assetPct,
		GencodePct:     gencodePct,
		ExclusivityPct: exclPct,
		RushPct:        rushPct,
		HealthFee:      healthFee,
	}

	if s.Coarse {
		return models.Quote{
			Min:       pricing.RoundK(float64(total) * t.RangePad.Low),
			Max:       pricing.RoundK(float64(total) * t.RangePad.High),
			Ranged:    true,
			Base:      int(base),
			Breakdown: breakdown,
		}
	}

	return models.Quote{
		Exact:     total,
		Base:      int(base),
		Breakdown: breakdown,
	}
}
