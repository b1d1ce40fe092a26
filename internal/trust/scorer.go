// internal/trust/scorer.go
package trust

import (
	"regexp"

	"quotebot/internal/models"
)

// Signal weights. The score is purely additive and clamped once at the
// end, not per step.
const (
	pointsURL           = 15
	pointsPlatform      = 10
	pointsFormatBundle  = 10
	pointsLicensing     = 10
	pointsDelivery      = 10
	pointsTransactional = 10
	penaltyShortlink    = 20
	penaltyUrgency      = 20
)

var (
	reURL           = regexp.MustCompile(`(?i)https?://[^\s]+`)
	reDelivery      = regexp.MustCompile(`(?i)timeline|post date|โพส|ส่งงาน|script|draft`)
	reTransactional = regexp.MustCompile(`(?i)ติดตะกร้า|ซื้อคลิป|ดัดแปลง|before\s*&\s*after|barter|boost`)
	reShortlink     = regexp.MustCompile(`(?i)(bit\.ly|tinyurl|cutt\.ly|goo\.gl)`)
	reUrgency       = regexp.MustCompile(`(?i)โอนก่อน|คริปโต|crypto|วันนี้เลย|ภายใน\s*(?:วันนี้|พรุ่งนี้)`)
)

// Score combines extracted slots and raw-text signals into a confidence
// score in [0,100]. sourceRef is reserved for sender reputation and is not
// consulted by the current rule set.
func Score(sourceRef string, text string, s models.SlotSet) int {
	_ = sourceRef

	score := 0
	if reURL.MatchString(text) {
		score += pointsURL
	}
	if s.Platform != "" {
		score += pointsPlatform
	}
	if s.Format != "" || s.Bundle != "" {
		score += pointsFormatBundle
	}
	if s.Asset != "" || s.Gencode != "" {
		score += pointsLicensing
	}
	if reDelivery.MatchString(text) {
		score += pointsDelivery
	}
	if reTransactional.MatchString(text) {
		score += pointsTransactional
	}
	if reShortlink.MatchString(text) {
		score -= penaltyShortlink
	}
	if reUrgency.MatchString(text) {
		score -= penaltyUrgency
	}

	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
