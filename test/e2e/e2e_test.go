// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"quotebot/internal/audit"
	"quotebot/internal/bot"
	"quotebot/internal/common/logger"
	"quotebot/internal/dedup"
	"quotebot/internal/gate"
	"quotebot/internal/models"
	"quotebot/internal/pricing"
	"quotebot/internal/transport/line"
)

const channelSecret = "e2e-channel-secret"

// ==========================
// Test doubles
// ==========================

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func (tl *testLogger) WithError(err error) logger.Logger {
	return tl
}

type capturedReply struct {
	token    string
	messages []line.Message
}

type replyRecorder struct {
	replies []capturedReply
}

func (r *replyRecorder) Reply(_ context.Context, replyToken string, messages []line.Message) error {
	r.replies = append(r.replies, capturedReply{token: replyToken, messages: messages})
	return nil
}

type notificationRecorder struct {
	notifications []models.AdminNotification
}

func (n *notificationRecorder) Notify(_ context.Context, notification models.AdminNotification) {
	n.notifications = append(n.notifications, notification)
}

type auditRecorder struct {
	records []*audit.Record
}

func (a *auditRecorder) Insert(_ context.Context, rec *audit.Record) error {
	a.records = append(a.records, rec)
	return nil
}

// ==========================
// Stack assembly
// ==========================

type stack struct {
	mux      *http.ServeMux
	replies  *replyRecorder
	notices  *notificationRecorder
	auditLog *auditRecorder
}

const contactFlexTemplate = `{
  "type": "flex",
  "altText": "contact",
  "contents": {"type": "bubble", "body": {"type": "box", "layout": "vertical", "contents": [
    {"type": "text", "text": "{{CONTACT_PHONE}}"},
    {"type": "text", "text": "{{CONTACT_EMAIL}}"}
  ]}}
}`

// newStack wires the real pipeline end to end: webhook server, dedup
// backed by miniredis, gating policy over the shipped pricing document,
// with only the outward channels recorded instead of sent.
func newStack(t *testing.T, lowThreshold, highThreshold int) *stack {
	t.Helper()

	table, err := pricing.Load("../../configs/pricing.json")
	require.NoError(t, err)

	tmpl, err := line.ParseContactTemplate([]byte(contactFlexTemplate))
	require.NoError(t, err)

	log := &testLogger{t: t}

	mr := miniredis.RunT(t)
	redisClient := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	replies := &replyRecorder{}
	notices := &notificationRecorder{}
	auditLog := &auditRecorder{}

	handler := bot.NewHandler(
		gate.NewPolicy(table, lowThreshold, highThreshold),
		replies,
		bot.ContactCard{Template: tmpl, Phone: "+66812345678", Email: "team@example.com"},
		notices,
		auditLog,
		nil,
		nil,
		log,
	)

	server := line.NewServer(channelSecret, handler, dedup.NewChecker(redisClient, 10*time.Minute, log), log)

	mux := http.NewServeMux()
	server.Register(mux)

	return &stack{mux: mux, replies: replies, notices: notices, auditLog: auditLog}
}

func (s *stack) deliver(t *testing.T, eventID, text string) int {
	t.Helper()

	body, err := json.Marshal(line.WebhookRequest{
		Destination: "Ubot",
		Events: []line.Event{{
			Type:           "message",
			WebhookEventID: eventID,
			ReplyToken:     "rt-" + eventID,
			Source:         line.EventSource{Type: "user", UserID: "U-e2e"},
			Message:        &line.EventMessage{ID: "m-" + eventID, Type: "text", Text: text},
		}},
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("X-Line-Signature", line.SignBody(channelSecret, body))
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)
	return rec.Code
}

func lastTextMessage(t *testing.T, s *stack) line.TextMessage {
	t.Helper()
	require.NotEmpty(t, s.replies.replies)
	last := s.replies.replies[len(s.replies.replies)-1]
	require.NotEmpty(t, last.messages)
	msg, ok := last.messages[0].(line.TextMessage)
	require.True(t, ok, "expected a text message, got %T", last.messages[0])
	return msg
}

// ==========================
// Scenarios
// ==========================

func TestRateCardRequestGetsGuidedMenu(t *testing.T) {
	s := newStack(t, 40, 70)

	code := s.deliver(t, "ev-a", "ขอเรทการ์ดหน่อยค่ะ")
	require.Equal(t, http.StatusOK, code)

	msg := lastTextMessage(t, s)
	require.NotNil(t, msg.QuickReply)
	assert.NotEmpty(t, msg.QuickReply.Items)

	require.Len(t, s.auditLog.records, 1)
	assert.Equal(t, "rate_shop", s.auditLog.records[0].Intent)
	assert.Equal(t, "guided_menu", s.auditLog.records[0].Action)
	assert.Empty(t, s.notices.notifications)
}

func TestFullySpecifiedTrustedBriefGetsExactQuote(t *testing.T) {
	// The additive rule set tops out at 65 points, so the exact branch
	// is exercised with the disclosure threshold at 60.
	s := newStack(t, 40, 60)

	text := "brief: format a tiktok ref https://th.example usage 1m timeline ซื้อคลิป"
	code := s.deliver(t, "ev-b", text)
	require.Equal(t, http.StatusOK, code)

	require.Len(t, s.auditLog.records, 1)
	rec := s.auditLog.records[0]
	assert.Equal(t, "exact_quote", rec.Action)
	assert.GreaterOrEqual(t, rec.TrustScore, 60)

	var quote models.Quote
	require.NoError(t, json.Unmarshal(rec.Quote, &quote))
	assert.False(t, quote.Ranged)
	// single/A/tt base with a free 1-month usage window.
	assert.Equal(t, 30000, quote.Exact)

	msg := lastTextMessage(t, s)
	assert.Contains(t, msg.Text, "30,000")
}

func TestExactBranchStaysClosedAtDefaultThresholds(t *testing.T) {
	s := newStack(t, 40, 70)

	text := "brief: format a tiktok ref https://th.example usage 1m timeline ซื้อคลิป"
	require.Equal(t, http.StatusOK, s.deliver(t, "ev-b2", text))

	require.Len(t, s.auditLog.records, 1)
	assert.Equal(t, "coarse_quote", s.auditLog.records[0].Action)
}

func TestBareShortlinkClassifiedAsScam(t *testing.T) {
	s := newStack(t, 40, 70)

	code := s.deliver(t, "ev-c", "ดูดีลนี้ด่วน bit.ly/xyz123 โอนก่อนวันนี้เลย")
	require.Equal(t, http.StatusOK, code)

	require.Len(t, s.auditLog.records, 1)
	rec := s.auditLog.records[0]
	assert.Equal(t, "scam", rec.Intent)
	assert.Equal(t, "guided_menu", rec.Action)
	assert.Equal(t, 0, rec.TrustScore)
}

func TestContactTriggerSendsCardAndOneNotification(t *testing.T) {
	s := newStack(t, 40, 70)

	// Other slots in the same text must not produce a quote.
	code := s.deliver(t, "ev-d", "ติดต่อคุณณณ format a tiktok usage 3m")
	require.Equal(t, http.StatusOK, code)

	require.Len(t, s.replies.replies, 1)
	card, ok := s.replies.replies[0].messages[0].(json.RawMessage)
	require.True(t, ok)
	assert.Contains(t, string(card), "+66812345678")

	require.Len(t, s.notices.notifications, 1)
	assert.Equal(t, models.NotifyContactRequest, s.notices.notifications[0].Kind)

	require.Len(t, s.auditLog.records, 1)
	assert.Equal(t, "contact_card", s.auditLog.records[0].Action)
	assert.Nil(t, s.auditLog.records[0].Quote)
}

func TestRedeliveredEventProcessedOnce(t *testing.T) {
	s := newStack(t, 40, 70)

	require.Equal(t, http.StatusOK, s.deliver(t, "ev-dup", "ขอเรทการ์ด"))
	require.Equal(t, http.StatusOK, s.deliver(t, "ev-dup", "ขอเรทการ์ด"))

	assert.Len(t, s.replies.replies, 1)
	assert.Len(t, s.auditLog.records, 1)
}

func TestTamperedWebhookRejected(t *testing.T) {
	s := newStack(t, 40, 70)

	body := []byte(`{"events":[]}`)
	req := httptest.NewRequest(http.MethodPost, "/webhook", bytes.NewReader(body))
	req.Header.Set("X-Line-Signature", line.SignBody("wrong-secret", body))
	rec := httptest.NewRecorder()
	s.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
