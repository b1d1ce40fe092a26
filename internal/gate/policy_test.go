// internal/gate/policy_test.go
package gate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotebot/internal/intent"
	"quotebot/internal/models"
	"quotebot/internal/pricing"
)

func testTable(t *testing.T) *pricing.Table {
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
	return table
}

func testPolicy(t *testing.T) *Policy {
	return NewPolicy(testTable(t), 40, 70)
}

func TestDecide_ContactTriggerShortCircuits(t *testing.T) {
	p := testPolicy(t)

	// Other slots present in the same text must not matter.
	d := p.Decide("user-1", "ติดต่อคุณณณ format a tiktok usage 1m")
	assert.Equal(t, ActionContactCard, d.Action)
	assert.Equal(t, models.ReplyContactCard, d.Reply.Type)
	assert.Nil(t, d.Quote)
	require.NotNil(t, d.Notification)
	assert.Equal(t, models.NotifyContactRequest, d.Notification.Kind)
	assert.Equal(t, "user-1", d.Notification.SourceRef)
}

func TestDecide_NotifyTrigger(t *testing.T) {
	p := testPolicy(t)

	d := p.Decide("user-2", "แจ้งทีมงานให้ติดต่อกลับด้วยค่ะ")
	assert.Equal(t, ActionAcknowledge, d.Action)
	assert.Equal(t, models.ReplyText, d.Reply.Type)
	assert.Nil(t, d.Quote)
	require.NotNil(t, d.Notification)
	assert.Equal(t, models.NotifyFollowUp, d.Notification.Kind)
}

func TestDecide_ContactBeatsNotify(t *testing.T) {
	p := testPolicy(t)

	d := p.Decide("user-3", "ติดต่อคุณณณ แจ้งทีมงาน")
	assert.Equal(t, ActionContactCard, d.Action)
}

func TestDecide_RateShopAlwaysGetsMenu(t *testing.T) {
	p := testPolicy(t)

	// Push the trust score as high as the rule set allows; rate_shop
	// still routes to the menu.
	text := "rate card ครับ https://th.example tiktok format a usage 6m timeline พร้อม ซื้อคลิป"
	d := p.Decide("user-4", text)
	assert.Equal(t, intent.RateShop, d.Intent)
	assert.Equal(t, ActionGuidedMenu, d.Action)
	require.NotNil(t, d.Reply.QuickReply)
}

func TestDecide_LowTrustGetsMenu(t *testing.T) {
	p := testPolicy(t)

	d := p.Decide("user-5", "สวัสดีค่ะ")
	assert.Equal(t, ActionGuidedMenu, d.Action)
	assert.Less(t, d.TrustScore, 40)
}

// The positive rule set tops out at 65 points, so the exact branch only
// fires in deployments that tune trust.high below that; the default 70
// keeps it effectively off.
func TestDecide_ExactQuoteBranch(t *testing.T) {
	p := NewPolicy(testTable(t), 40, 60)

	text := "brief: format a tiktok usage 1m https://th.example/brief timeline post date script ติดตะกร้า"
	d := p.Decide("user-6", text)
	assert.Equal(t, 65, d.TrustScore)
	assert.Equal(t, ActionExactQuote, d.Action)
	require.NotNil(t, d.Quote)
	assert.False(t, d.Quote.Ranged)
	// base[single][A][tt] with asset 1m at 0%: 30000
	assert.Equal(t, 30000, d.Quote.Exact)
	assert.Nil(t, d.Notification)
}

func TestDecide_DefaultHighThresholdKeepsExactBranchClosed(t *testing.T) {
	p := testPolicy(t)

	text := "brief: format a tiktok usage 1m https://th.example/brief timeline post date script ติดตะกร้า"
	d := p.Decide("user-6", text)
	assert.Equal(t, 65, d.TrustScore)
	assert.Equal(t, ActionCoarseQuote, d.Action)
}

func TestDecide_MissingFormatFallsToCoarse(t *testing.T) {
	p := NewPolicy(testTable(t), 40, 60)

	// Trust clears the high threshold but no format slot was extracted:
	// the exact branch requires format+platform+(asset or gencode).
	text := "tiktok usage 1m https://th.example timeline script ติดตะกร้า"
	d := p.Decide("user-7", text)
	assert.GreaterOrEqual(t, d.TrustScore, 60)
	assert.Equal(t, ActionCoarseQuote, d.Action)
	require.NotNil(t, d.Quote)
	assert.True(t, d.Quote.Ranged)
	assert.Contains(t, d.Reply.Text, "โปรดระบุเพิ่ม")
}

func TestDecide_MidTrustGetsCoarseQuote(t *testing.T) {
	p := testPolicy(t)

	// url 15 + platform 10 + bundle default 10 + delivery 10 = 45.
	d := p.Decide("user-8", "format a tiktok timeline https://th.example")
	assert.GreaterOrEqual(t, d.TrustScore, 40)
	assert.Less(t, d.TrustScore, 70)
	assert.Equal(t, ActionCoarseQuote, d.Action)
	require.NotNil(t, d.Quote)
	assert.True(t, d.Quote.Ranged)
	// Range is padded around base[single][A][tt] = 30000.
	assert.Equal(t, 27000, d.Quote.Min)
	assert.Equal(t, 36000, d.Quote.Max)
}

// Decide prices a copy with Coarse set rather than mutating the extracted
// SlotSet carried on the Decision.
func TestDecide_CoarseFlagNotLeaked(t *testing.T) {
	p := testPolicy(t)

	d := p.Decide("user-9", "format a tiktok timeline https://th.example")
	assert.Equal(t, ActionCoarseQuote, d.Action)
	assert.False(t, d.Slots.Coarse)
}

func TestDecide_EmptyText(t *testing.T) {
	p := testPolicy(t)

	d := p.Decide("user-10", "")
	assert.Equal(t, intent.Unknown, d.Intent)
	assert.Equal(t, ActionGuidedMenu, d.Action)
}
