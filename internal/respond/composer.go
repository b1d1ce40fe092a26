// internal/respond/composer.go
package respond

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"quotebot/internal/models"
	"quotebot/internal/pricing"
)

// Composer renders the three response shapes the engine can send back:
// the guided quick-reply menu, the need-more-detail message with a coarse
// range, and the final quote message. All methods are pure functions of
// their inputs.
type Composer struct {
	table   *pricing.Table
	printer *message.Printer
}

func NewComposer(table *pricing.Table) *Composer {
	return &Composer{
		table:   table,
		printer: message.NewPrinter(language.Thai),
	}
}

// baht formats an amount with digit grouping, e.g. ฿45,000.
func (c *Composer) baht(n int) string {
	return c.printer.Sprintf("฿%d", n)
}

// GuidedMenu builds the quick-reply menu covering each slot dimension.
// Shown when trust is low or the message is a bare price inquiry.
func (c *Composer) GuidedMenu() models.Reply {
	items := []models.QuickReplyItem{
		{Label: "ติดต่อคุณณณ", Text: "ติดต่อคุณณณ"},
		{Label: "Format A", Text: "Format: A"},
		{Label: "Format B", Text: "Format: B"},
		{Label: "IG", Text: "Platform: IG"},
		{Label: "TikTok", Text: "Platform: TikTok"},
		{Label: "Dual IG+TikTok", Text: "Platform: Dual IG+TikTok"},
		{Label: "Bundle 3 videos", Text: "Bundle: 3 videos"},
		{Label: "Usage Asset 1 เดือน", Text: "Usage (Asset): 1m"},
		{Label: "Usage Asset 3 เดือน", Text: "Usage (Asset): 3m"},
		{Label: "Usage Asset 6 เดือน", Text: "Usage (Asset): 6m"},
		{Label: "Gencode 30 วัน", Text: "Gencode: 30d"},
		{Label: "Gencode 90 วัน", Text: "Gencode: 90d"},
		{Label: "Gencode 180 วัน", Text: "Gencode: 180d"},
		{Label: "คุยกับทีมงาน", Text: "คุยกับทีมงาน"},
	}
	return models.Reply{
		Type:       models.ReplyText,
		Text:       "เพื่อให้ราคาแม่นยำ เลือกข้อมูลสั้น ๆ ด้านล่าง แล้วทีมจะสรุปเลขประมาณให้ทันทีค่ะ",
		QuickReply: &models.QuickReply{Items: items},
	}
}

// AskForMissing embeds a coarse range and lists the dimensions still
// needed, with a note when the detected gencode is the free 37-day case.
func (c *Composer) AskForMissing(q models.Quote, s models.SlotSet) models.Reply {
	gencodeNote := ""
	if s.Gencode == models.Gencode37D {
		gencodeNote = " • 37 วัน: ฟรี"
	}
	text := fmt.Sprintf(
		"จากข้อมูลเบื้องต้น เบสงานอยู่ที่ ~%s–%s (ex-VAT)\nโปรดระบุเพิ่ม: Format (A/B), Platform (IG/TT/Dual), Asset (1/3/6m/ถาวร), Gencode (30/90/180 วัน%s), Exclusivity (0–%d เดือน)",
		c.baht(q.Min), c.baht(q.Max), gencodeNote, c.table.ExclusivityMaxMonths,
	)
	return models.Reply{Type: models.ReplyText, Text: text}
}

// QuoteMessage renders the final quote: resolved scope, headline number
// and a human-readable restatement of the pricing formula.
func (c *Composer) QuoteMessage(q models.Quote, s models.SlotSet) models.Reply {
	asset := "Asset 1m (ถ้ายืนยัน)"
	if s.Asset != "" {
		asset = fmt.Sprintf("Asset %s", s.Asset)
	}

	gencode := "Gencode 30d (ฟรี)"
	if s.Gencode != "" {
		gencode = fmt.Sprintf("Gencode %s", s.Gencode)
	}
	if s.Gencode == models.Gencode37D {
		gencode = "Gencode 37d (ฟรี)"
	}

	excl := "No exclusivity"
	if s.ExclusivityOrZero() > 0 {
		excl = fmt.Sprintf("Exclusivity %dm", s.ExclusivityOrZero())
	}

	rush := "No rush"
	if s.Rush {
		rush = fmt.Sprintf("Rush +%d%%", int(c.table.RushPct*100))
	}

	health := ""
	if s.Health {
		health = fmt.Sprintf(" + Health premium %s", c.baht(c.table.Fees.HealthPremiumFlat))
	}

	var scope strings.Builder
	if s.Bundle == models.BundleOf3 {
		scope.WriteString("Bundle 3 ")
	}
	format := s.Format
	if format == "" {
		format = models.FormatA
	}
	fmt.Fprintf(&scope, "Format %s • %s • %s • %s • %s • %s%s",
		format, platformName(s.Platform), asset, gencode, excl, rush, health)

	text := fmt.Sprintf(
		"Scope: %s\nค่าบริการโดยประมาณ: %s (ยังไม่รวมภาษี)\nสูตร: Base + [Health flat + Asset%%×Base + Gencode%%×Base + %.2f×Base×Exclusivity + Rush%%×Base]\nต้องการใบเสนอราคาไหมคะ?",
		scope.String(), c.baht(q.Number()), c.table.ExclusivityPctPerMonth,
	)
	return models.Reply{Type: models.ReplyText, Text: text}
}

// Acknowledgment confirms a follow-up request was recorded.
func (c *Composer) Acknowledgment() models.Reply {
	return models.Reply{
		Type: models.ReplyText,
		Text: "รับเรื่องเรียบร้อยค่ะ ทีมงานจะติดต่อกลับโดยเร็วที่สุด ✅",
	}
}

// ContactCard signals the rendering adapter to show the contact document.
func (c *Composer) ContactCard() models.Reply {
	return models.Reply{Type: models.ReplyContactCard}
}

func platformName(p models.Platform) string {
	switch p {
	case models.PlatformDual:
		return "Dual (IG+TikTok)"
	case models.PlatformIG:
		return "IG Reels"
	}
	return "TikTok"
}
