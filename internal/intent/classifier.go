// internal/intent/classifier.go
package intent

import (
	"regexp"
	"strings"
)

// Intent is the coarse category of what a message is asking for.
type Intent string

const (
	RateShop Intent = "rate_shop"
	Ops      Intent = "ops"
	Scam     Intent = "scam"
	Brief    Intent = "brief"
	Unknown  Intent = "unknown"
)

// Classification rules are evaluated top to bottom against a lower-cased
// copy of the text; the first match wins. The order is part of the
// contract: a message matching both the rate-card and procurement
// vocabularies classifies as rate_shop.
var (
	reRateShop = regexp.MustCompile(`(ขอเรท|เรทการ์ด|media ?kit|rate card|ราคา(?:เท่าไร)?)`)
	reOps      = regexp.MustCompile(`(ใบเสนอราคา|po|contract|สัญญา|ออกบิล|invoice)`)
	reLink     = regexp.MustCompile(`(http|bit\.ly|tinyurl)`)
	// Known brand / partner vocabulary. A bare link without any of these
	// classifies as scam; this heuristic will false-positive on unlisted
	// partner domains and is deliberately conservative.
	reBrandTerm = regexp.MustCompile(`(brand|co|company|official|loreal|cerave|peppermint|solve|paris|th)`)
	reBrief     = regexp.MustCompile(`(tiktok|ig|instagram|dual|reel|story|youtube|brief|บรีฟ|ใช้งาน|usage|asset|gencode|whitelist|timeline|งบ|ฟอร์แมต|format|bundle|ซื้อคลิป|ติดตะกร้า|ติดต่อคุณณณ|แจ้งทีมงาน|รอการตอบกลับข้อความ)`)
)

type rule struct {
	intent  Intent
	matches func(lower string) bool
}

var rules = []rule{
	{RateShop, reRateShop.MatchString},
	{Ops, reOps.MatchString},
	{Scam, func(lower string) bool {
		return reLink.MatchString(lower) && !reBrandTerm.MatchString(lower)
	}},
	{Brief, reBrief.MatchString},
}

// Classify maps raw message text to exactly one intent. Empty text falls
// through every rule to Unknown.
func Classify(text string) Intent {
	lower := strings.ToLower(text)
	for _, r := range rules {
		if r.matches(lower) {
			return r.intent
		}
	}
	return Unknown
}
