// internal/transport/line/server.go
package line

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	commonerrors "quotebot/internal/common/errors"
	"quotebot/internal/common/logger"
	"quotebot/internal/common/metrics"
	"quotebot/internal/models"
)

const maxWebhookBodyBytes = 1 << 20

// EventHandler consumes one verified inbound text message.
type EventHandler interface {
	HandleMessage(ctx context.Context, msg models.Message, replyToken string)
}

// Deduper reports whether a webhook event ID is seen for the first time.
type Deduper interface {
	FirstDelivery(ctx context.Context, eventID string) bool
}

// Server terminates the LINE webhook: signature check, envelope parsing
// and redelivery suppression, then hands each text message to the
// event handler.
type Server struct {
	channelSecret string
	handler       EventHandler
	dedup         Deduper
	logger        logger.Logger
}

func NewServer(channelSecret string, handler EventHandler, dedup Deduper, log logger.Logger) *Server {
	return &Server{
		channelSecret: channelSecret,
		handler:       handler,
		dedup:         dedup,
		logger:        log.WithFields(map[string]interface{}{"component": "webhook"}),
	}
}

// Register attaches the webhook and health endpoints to mux.
func (s *Server) Register(mux *http.ServeMux) {
	mux.HandleFunc("/webhook", s.handleWebhook)
	mux.HandleFunc("/healthz", s.handleHealth)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		metrics.WebhookRejected.WithLabelValues("body_read").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	signature := r.Header.Get("X-Line-Signature")
	if !ValidateSignature(s.channelSecret, signature, body) {
		sigErr := commonerrors.NewSignatureError("X-Line-Signature mismatch")
		s.logger.Warn("webhook rejected", map[string]interface{}{
			"error":  sigErr,
			"remote": r.RemoteAddr,
		})
		metrics.WebhookRejected.WithLabelValues("signature").Inc()
		w.WriteHeader(http.StatusForbidden)
		return
	}

	var req WebhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.logger.Warn("webhook body malformed", map[string]interface{}{"error": err})
		metrics.WebhookRejected.WithLabelValues("malformed").Inc()
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	for _, event := range req.Events {
		s.processEvent(r.Context(), event)
	}

	w.WriteHeader(http.StatusOK)
}

func (s *Server) processEvent(ctx context.Context, event Event) {
	if event.Type != "message" || event.Message == nil || event.Message.Type != "text" {
		return
	}

	if event.DeliveryContext.IsRedelivery {
		metrics.EventsDeduplicated.Inc()
		return
	}
	if s.dedup != nil && event.WebhookEventID != "" && !s.dedup.FirstDelivery(ctx, event.WebhookEventID) {
		metrics.EventsDeduplicated.Inc()
		s.logger.Debug("duplicate event skipped", map[string]interface{}{
			"eventId": event.WebhookEventID,
		})
		return
	}

	metrics.MessagesReceived.WithLabelValues("line").Inc()

	msg := models.Message{
		Text:       strings.TrimSpace(event.Message.Text),
		SourceRef:  event.Source.Ref(),
		EventID:    event.WebhookEventID,
		ReceivedAt: time.Now().UTC(),
	}

	s.handler.HandleMessage(ctx, msg, event.ReplyToken)
}
