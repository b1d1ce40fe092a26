// internal/bot/handler.go
package bot

import (
	"context"
	"time"

	"quotebot/internal/audit"
	"quotebot/internal/common/logger"
	"quotebot/internal/common/metrics"
	"quotebot/internal/common/observability"
	"quotebot/internal/gate"
	"quotebot/internal/models"
	"quotebot/internal/transport/line"

	"go.opentelemetry.io/otel/attribute"
)

// Replier sends reply messages back through the chat channel.
type Replier interface {
	Reply(ctx context.Context, replyToken string, messages []line.Message) error
}

// AdminNotifier forwards admin notifications; it never returns an error.
type AdminNotifier interface {
	Notify(ctx context.Context, n models.AdminNotification)
}

// AuditStore persists one record per gating decision.
type AuditStore interface {
	Insert(ctx context.Context, rec *audit.Record) error
}

// ContactCard bundles the flex template with the contact details
// substituted into it.
type ContactCard struct {
	Template *line.ContactTemplate
	Phone    string
	Email    string
}

// Handler glues the pure decision pipeline to the channel transport,
// audit store and admin notifier. Reply, audit and notification failures
// are logged but never abort handling: the decision stands even when a
// side effect fails.
type Handler struct {
	policy   *gate.Policy
	replier  Replier
	contact  ContactCard
	notifier AdminNotifier
	auditor  AuditStore
	obs      *observability.Observability
	tracing  *observability.Tracing
	logger   logger.Logger
}

func NewHandler(policy *gate.Policy, replier Replier, contact ContactCard, notifier AdminNotifier, auditor AuditStore, obs *observability.Observability, tracing *observability.Tracing, log logger.Logger) *Handler {
	return &Handler{
		policy:   policy,
		replier:  replier,
		contact:  contact,
		notifier: notifier,
		auditor:  auditor,
		obs:      obs,
		tracing:  tracing,
		logger:   log.WithFields(map[string]interface{}{"component": "bot"}),
	}
}

// HandleMessage runs the decision pipeline over one inbound message and
// performs its side effects.
func (h *Handler) HandleMessage(ctx context.Context, msg models.Message, replyToken string) {
	start := time.Now()

	if h.tracing != nil {
		tctx, span := h.tracing.StartSpan(ctx, "handle-message",
			attribute.String("event.id", msg.EventID),
		)
		ctx = tctx
		defer span.End()
	}

	decision := h.policy.Decide(msg.SourceRef, msg.Text)

	metrics.Decisions.WithLabelValues(string(decision.Action), string(decision.Intent)).Inc()
	metrics.TrustScores.Observe(float64(decision.TrustScore))

	h.logger.Info("decision", map[string]interface{}{
		"eventId":    msg.EventID,
		"action":     decision.Action,
		"intent":     decision.Intent,
		"trustScore": decision.TrustScore,
	})

	if replyToken != "" {
		messages, err := h.renderReply(decision.Reply)
		if err != nil {
			h.logger.Error("reply rendering failed", map[string]interface{}{
				"eventId": msg.EventID,
				"error":   err,
			})
		} else if err := h.replier.Reply(ctx, replyToken, messages); err != nil {
			h.logger.Error("reply send failed", map[string]interface{}{
				"eventId": msg.EventID,
				"error":   err,
			})
		}
	}

	if h.notifier != nil && decision.Notification != nil {
		h.notifier.Notify(ctx, *decision.Notification)
	}

	if h.auditor != nil {
		rec, err := audit.RecordFromDecision(msg, string(decision.Intent), decision.TrustScore, string(decision.Action), decision.Slots, decision.Quote)
		if err == nil {
			err = h.auditor.Insert(ctx, rec)
		}
		if err != nil {
			h.logger.Error("audit insert failed", map[string]interface{}{
				"eventId": msg.EventID,
				"error":   err,
			})
		}
	}

	if h.obs != nil {
		h.obs.RecordMessageProcessed(ctx, string(decision.Action))
		h.obs.RecordHandleDuration(ctx, time.Since(start), string(decision.Action))
	}
}

func (h *Handler) renderReply(reply models.Reply) ([]line.Message, error) {
	if reply.Type == models.ReplyContactCard {
		card, err := h.contact.Template.Render(h.contact.Phone, h.contact.Email)
		if err != nil {
			return nil, err
		}
		return []line.Message{card}, nil
	}

	msg := line.NewTextMessage(reply.Text)
	if reply.QuickReply != nil {
		items := make([]line.QuickReplyItem, 0, len(reply.QuickReply.Items))
		for _, item := range reply.QuickReply.Items {
			items = append(items, line.NewQuickReplyItem(item.Label, item.Text))
		}
		msg.QuickReply = &line.QuickReply{Items: items}
	}

	return []line.Message{msg}, nil
}
