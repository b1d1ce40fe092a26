// internal/gate/policy.go
package gate

import (
	"quotebot/internal/intent"
	"quotebot/internal/models"
	"quotebot/internal/pricing"
	"quotebot/internal/quote"
	"quotebot/internal/respond"
	"quotebot/internal/slots"
	"quotebot/internal/trust"
)

// Action is what the policy decided to do with a message.
type Action string

const (
	ActionContactCard Action = "contact_card"
	ActionAcknowledge Action = "acknowledge"
	ActionGuidedMenu  Action = "guided_menu"
	ActionExactQuote  Action = "exact_quote"
	ActionCoarseQuote Action = "coarse_quote"
)

// Decision is everything the orchestrator needs to act on one message:
// the chosen action, the composed reply, and an optional admin
// notification. It also carries the intermediate classification results
// for logging and auditing.
type Decision struct {
	Action     Action
	Intent     intent.Intent
	Slots      models.SlotSet
	TrustScore int
	Quote      *models.Quote
	Reply      models.Reply

	Notification *models.AdminNotification
}

// Policy composes the classifier, extractor, scorer, engine and composer
// into the gating decision. It is pure: no I/O, no shared mutable state,
// safe for concurrent use.
type Policy struct {
	engine   *quote.Engine
	composer *respond.Composer

	lowThreshold  int
	highThreshold int
}

func NewPolicy(table *pricing.Table, lowThreshold, highThreshold int) *Policy {
	return &Policy{
		engine:        quote.NewEngine(table),
		composer:      respond.NewComposer(table),
		lowThreshold:  lowThreshold,
		highThreshold: highThreshold,
	}
}

// Decide runs the full pipeline over one message. Slot extraction and
// intent classification run independently over the same text; the
// contact/notify triggers take precedence over intent; then trust gates
// between the guided menu, a coarse range, and an exact quote.
func (p *Policy) Decide(sourceRef, text string) Decision {
	s := slots.Extract(text)
	in := intent.Classify(text)

	d := Decision{Intent: in, Slots: s}

	if s.Contact {
		d.Action = ActionContactCard
		d.Reply = p.composer.ContactCard()
		d.Notification = &models.AdminNotification{
			Kind:      models.NotifyContactRequest,
			Title:     "🔔 ผู้ติดต่อกด 'ติดต่อคุณณณ'",
			Context:   text,
			SourceRef: sourceRef,
		}
		return d
	}

	if s.Notify {
		d.Action = ActionAcknowledge
		d.Reply = p.composer.Acknowledgment()
		d.Notification = &models.AdminNotification{
			Kind:      models.NotifyFollowUp,
			Title:     "🔔 ผู้ติดต่อขอให้ทีมงานติดต่อกลับ",
			Context:   text,
			SourceRef: sourceRef,
		}
		return d
	}

	score := trust.Score(sourceRef, text, s)
	d.TrustScore = score

	if in == intent.RateShop || score < p.lowThreshold {
		d.Action = ActionGuidedMenu
		d.Reply = p.composer.GuidedMenu()
		return d
	}

	// The exact branch alone requires format + platform + a licensing
	// window; the menu and coarse branches impose no such requirement.
	if score >= p.highThreshold && s.Format != "" && s.Platform != "" && (s.Asset != "" || s.Gencode != "") {
		q := p.engine.QuoteFor(s)
		d.Action = ActionExactQuote
		d.Quote = &q
		d.Reply = p.composer.QuoteMessage(q, s)
		return d
	}

	coarse := s
	coarse.Coarse = true
	q := p.engine.QuoteFor(coarse)
	d.Action = ActionCoarseQuote
	d.Quote = &q
	d.Reply = p.composer.AskForMissing(q, s)
	return d
}
