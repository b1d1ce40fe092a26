// internal/slots/extractor.go
package slots

import (
	"regexp"
	"strconv"
	"strings"

	"quotebot/internal/models"
)

// Trigger patterns, one or more per slot. Some run against a lower-cased
// copy of the text and some case-insensitively against the original; the
// split mirrors the production vocabulary, where a few triggers are
// contextual words that users type in mixed case.
//
// The assignments in Extract run in a fixed order and the last matching
// assignment for a slot wins. That order is part of the contract: the
// tie-break on adversarial input ("format A format B") depends on it.
var (
	reContact = regexp.MustCompile(`ติดต่อคุณณณ`)
	reNotify  = regexp.MustCompile(`แจ้งทีมงาน|รอการตอบกลับข้อความ`)

	reFormatA = regexp.MustCompile(`\bformat\s*a\b|ฟอร์แมต\s*a|ฟอร์แมตa|แบบ a\b`)
	reFormatB = regexp.MustCompile(`\bformat\s*b\b|ฟอร์แมต\s*b|ฟอร์แมตb|แบบ b\b`)

	rePlatformIG   = regexp.MustCompile(`ig|instagram`)
	rePlatformTT   = regexp.MustCompile(`tiktok|tt\b`)
	rePlatformDual = regexp.MustCompile(`dual|ig\+tt|ig\+tiktok|ทั้ง\s*ig\s*และ\s*tiktok`)

	reBundle3 = regexp.MustCompile(`bundle|3\s*video|3\s*คลิป|แพ็กเกจ\s*3`)

	reHealth = regexp.MustCompile(`(?i)สุขภาพ|health(?:\s*product)?|medical|ยาดม|วิตามิน|supplement|อาหารเสริม`)

	reAsset1M   = regexp.MustCompile(`(?i)(asset|usage).*(1\s*เดือน|1m)`)
	reAsset3M   = regexp.MustCompile(`(?i)(asset|usage).*(3\s*เดือน|3m)`)
	reAsset6M   = regexp.MustCompile(`(?i)(asset|usage).*(6\s*เดือน|6m)`)
	reAssetPerm = regexp.MustCompile(`(?i)(asset|usage).*(ตลอดไป|permanent|ไม่จำกัด|ถาวร)`)

	reGencode30  = regexp.MustCompile(`(?i)gencode.*30|ad.?auth.*30|whitelist.*30`)
	reGencode90  = regexp.MustCompile(`(?i)gencode.*90|ad.?auth.*90|whitelist.*90`)
	reGencode180 = regexp.MustCompile(`(?i)gencode.*180|ad.?auth.*180|whitelist.*180`)
	reGencode37  = regexp.MustCompile(`(?i)gencode.*37|37\s*วัน`)

	// The number is only captured when it trails the exclusivity keyword
	// within the same pattern; a bare "exclusive" sets nothing.
	reExclusivity = regexp.MustCompile(`(?i)exclusive|เอ็กซ์คลู|เอกสิทธิ์|exclusivity.*?(\d+)`)

	reRush    = regexp.MustCompile(`(?i)ด่วน|rush|<\s*7\s*วัน|ภายใน\s*[0-6]\s*วัน|7d`)
	rePerLine = regexp.MustCompile(`(?m)=.*$`)

	reBrand  = regexp.MustCompile(`(?i)brand[:：]\s*([^\n]+)`)
	reBudget = regexp.MustCompile(`(?i)(งบ|budget)\s*[:：]?\s*([<~]?\s*[\d,\.]+k?)`)
)

// Extract scans text for every recognized slot. It is pure and total:
// absent matches leave a slot at its zero value, and no input errors.
func Extract(text string) models.SlotSet {
	var s models.SlotSet
	lower := strings.ToLower(text)

	if reContact.MatchString(lower) {
		s.Contact = true
	}
	if reNotify.MatchString(lower) {
		s.Notify = true
	}

	if reFormatA.MatchString(lower) {
		s.Format = models.FormatA
	}
	if reFormatB.MatchString(lower) {
		s.Format = models.FormatB
	}

	if rePlatformIG.MatchString(lower) {
		s.Platform = models.PlatformIG
	}
	if rePlatformTT.MatchString(lower) {
		s.Platform = models.PlatformTT
	}
	if rePlatformDual.MatchString(lower) {
		s.Platform = models.PlatformDual
	}

	// The one slot with an explicit default.
	if reBundle3.MatchString(lower) {
		s.Bundle = models.BundleOf3
	} else {
		s.Bundle = models.BundleSingle
	}

	if reHealth.MatchString(text) {
		s.Health = true
	}

	if reAsset1M.MatchString(text) {
		s.Asset = models.Asset1M
	}
	if reAsset3M.MatchString(text) {
		s.Asset = models.Asset3M
	}
	if reAsset6M.MatchString(text) {
		s.Asset = models.Asset6M
	}
	if reAssetPerm.MatchString(text) {
		s.Asset = models.AssetPermanent
	}

	if reGencode30.MatchString(text) {
		s.Gencode = models.Gencode30D
	}
	if reGencode90.MatchString(text) {
		s.Gencode = models.Gencode90D
	}
	if reGencode180.MatchString(text) {
		s.Gencode = models.Gencode180D
	}
	if reGencode37.MatchString(text) {
		s.Gencode = models.Gencode37D
	}

	if m := reExclusivity.FindStringSubmatch(text); m != nil && m[1] != "" {
		if months, err := strconv.Atoi(m[1]); err == nil {
			s.ExclusivityMonths = &months
		}
	}

	if reRush.MatchString(text) {
		s.Rush = true
	}
	if rePerLine.MatchString(text) {
		s.PerLine = true
	}

	if m := reBrand.FindStringSubmatch(text); m != nil {
		s.Brand = strings.TrimSpace(m[1])
	}
	if m := reBudget.FindStringSubmatch(text); m != nil {
		s.Budget = m[2]
	}

	return s
}
