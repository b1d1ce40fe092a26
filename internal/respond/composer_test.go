// internal/respond/composer_test.go
package respond

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotebot/internal/models"
	"quotebot/internal/pricing"
)

func testComposer(t *testing.T) *Composer {
	t.Helper()
	table, err := pricing.Parse([]byte(`{
		"base": {
			"single": {
				"A": {"ig": 25000, "tt": 30000, "dual": 45000},
				"B": {"ig": 35000, "tt": 40000, "dual": 60000}
			},
			"bundle3": {
				"A": {"ig": 68000, "tt": 81000, "dual": 122000},
				"B": {"ig": 95000, "tt": 108000, "dual": 162000}
			}
		},
		"asset_pct": {"1m": 0.0, "3m": 0.10, "6m": 0.20, "permanent": 0.35},
		"gencode_pct": {"30d": 0.0, "90d": 0.10, "180d": 0.20},
		"exclusivity_pct_per_month": 0.15,
		"exclusivity_max_months": 2,
		"rush_pct": 0.10,
		"fees": {"health_premium_flat": 20000},
		"range_pad": {"low": 0.9, "high": 1.2}
	}`))
	require.NoError(t, err)
	return NewComposer(table)
}

func TestGuidedMenu_CoversEverySlotDimension(t *testing.T) {
	menu := testComposer(t).GuidedMenu()

	assert.Equal(t, models.ReplyText, menu.Type)
	assert.NotEmpty(t, menu.Text)
	require.NotNil(t, menu.QuickReply)

	labels := make([]string, 0, len(menu.QuickReply.Items))
	for _, item := range menu.QuickReply.Items {
		assert.NotEmpty(t, item.Label)
		assert.NotEmpty(t, item.Text, "label %q must echo text when tapped", item.Label)
		labels = append(labels, item.Label)
	}

	joined := ""
	for _, l := range labels {
		joined += l + "|"
	}
	assert.Contains(t, joined, "Format A")
	assert.Contains(t, joined, "Format B")
	assert.Contains(t, joined, "TikTok")
	assert.Contains(t, joined, "Bundle 3")
	assert.Contains(t, joined, "Usage Asset")
	assert.Contains(t, joined, "Gencode 30")
}

func TestAskForMissing_EmbedsRange(t *testing.T) {
	c := testComposer(t)
	q := models.Quote{Min: 27000, Max: 36000, Ranged: true, Base: 30000}

	reply := c.AskForMissing(q, models.SlotSet{})
	assert.Equal(t, models.ReplyText, reply.Type)
	assert.Contains(t, reply.Text, "27,000")
	assert.Contains(t, reply.Text, "36,000")
	assert.Contains(t, reply.Text, "0–2 เดือน")
	assert.NotContains(t, reply.Text, "37 วัน: ฟรี")
}

func TestAskForMissing_Gencode37Note(t *testing.T) {
	c := testComposer(t)
	q := models.Quote{Min: 27000, Max: 36000, Ranged: true}

	reply := c.AskForMissing(q, models.SlotSet{Gencode: models.Gencode37D})
	assert.Contains(t, reply.Text, "37 วัน: ฟรี")
}

func TestQuoteMessage_ScopeAndNumber(t *testing.T) {
	c := testComposer(t)
	q := models.Quote{Exact: 93000, Base: 60000}
	months := 1
	s := models.SlotSet{
		Format:            models.FormatB,
		Platform:          models.PlatformDual,
		Bundle:            models.BundleSingle,
		Asset:             models.Asset6M,
		Gencode:           models.Gencode90D,
		ExclusivityMonths: &months,
		Rush:              true,
	}

	reply := c.QuoteMessage(q, s)
	assert.Contains(t, reply.Text, "Format B")
	assert.Contains(t, reply.Text, "Dual (IG+TikTok)")
	assert.Contains(t, reply.Text, "Asset 6m")
	assert.Contains(t, reply.Text, "Gencode 90d")
	assert.Contains(t, reply.Text, "Exclusivity 1m")
	assert.Contains(t, reply.Text, "Rush +10%")
	assert.Contains(t, reply.Text, "93,000")
	assert.Contains(t, reply.Text, "สูตร")
}

func TestQuoteMessage_DefaultsInScope(t *testing.T) {
	c := testComposer(t)
	q := models.Quote{Exact: 30000, Base: 30000}

	reply := c.QuoteMessage(q, models.SlotSet{})
	assert.Contains(t, reply.Text, "Format A")
	assert.Contains(t, reply.Text, "TikTok")
	assert.Contains(t, reply.Text, "Asset 1m (ถ้ายืนยัน)")
	assert.Contains(t, reply.Text, "Gencode 30d (ฟรี)")
	assert.Contains(t, reply.Text, "No exclusivity")
	assert.Contains(t, reply.Text, "No rush")
	assert.NotContains(t, reply.Text, "Health premium")
}

// The 37d display window prices as 30d but must render differently.
func TestQuoteMessage_Gencode37RendersDistinctly(t *testing.T) {
	c := testComposer(t)
	q := models.Quote{Exact: 30000, Base: 30000}

	with37 := c.QuoteMessage(q, models.SlotSet{Gencode: models.Gencode37D})
	with30 := c.QuoteMessage(q, models.SlotSet{Gencode: models.Gencode30D})
	assert.Contains(t, with37.Text, "Gencode 37d (ฟรี)")
	assert.Contains(t, with30.Text, "Gencode 30d")
	assert.NotEqual(t, with37.Text, with30.Text)
}

func TestQuoteMessage_BundleAndHealth(t *testing.T) {
	c := testComposer(t)
	q := models.Quote{Exact: 101000, Base: 81000, Breakdown: models.Breakdown{HealthFee: 20000}}

	reply := c.QuoteMessage(q, models.SlotSet{Bundle: models.BundleOf3, Health: true})
	assert.Contains(t, reply.Text, "Bundle 3 ")
	assert.Contains(t, reply.Text, "Health premium ฿20,000")
}

func TestQuoteMessage_RangedQuoteUsesLowEnd(t *testing.T) {
	c := testComposer(t)
	q := models.Quote{Min: 27000, Max: 36000, Ranged: true, Base: 30000}

	reply := c.QuoteMessage(q, models.SlotSet{})
	assert.Contains(t, reply.Text, "27,000")
}

func TestContactCardAndAcknowledgment(t *testing.T) {
	c := testComposer(t)

	assert.Equal(t, models.ReplyContactCard, c.ContactCard().Type)

	ack := c.Acknowledgment()
	assert.Equal(t, models.ReplyText, ack.Type)
	assert.NotEmpty(t, ack.Text)
}
