// internal/transport/line/types.go
package line

import "encoding/json"

// Webhook envelope as delivered by the LINE platform.
type WebhookRequest struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

type Event struct {
	Type            string          `json:"type"`
	WebhookEventID  string          `json:"webhookEventId"`
	Timestamp       int64           `json:"timestamp"`
	ReplyToken      string          `json:"replyToken"`
	Source          EventSource     `json:"source"`
	Message         *EventMessage   `json:"message,omitempty"`
	DeliveryContext DeliveryContext `json:"deliveryContext"`
}

type EventSource struct {
	Type    string `json:"type"`
	UserID  string `json:"userId,omitempty"`
	GroupID string `json:"groupId,omitempty"`
	RoomID  string `json:"roomId,omitempty"`
}

// Ref returns the first non-empty sender reference.
func (s EventSource) Ref() string {
	if s.UserID != "" {
		return s.UserID
	}
	if s.GroupID != "" {
		return s.GroupID
	}
	return s.RoomID
}

type EventMessage struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Text string `json:"text"`
}

type DeliveryContext struct {
	IsRedelivery bool `json:"isRedelivery"`
}

// --- Outgoing message payloads ---

// Message is any JSON-marshalable LINE message object.
type Message interface{}

type TextMessage struct {
	Type       string      `json:"type"`
	Text       string      `json:"text"`
	QuickReply *QuickReply `json:"quickReply,omitempty"`
}

type QuickReply struct {
	Items []QuickReplyItem `json:"items"`
}

type QuickReplyItem struct {
	Type   string           `json:"type"`
	Action QuickReplyAction `json:"action"`
}

type QuickReplyAction struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Text  string `json:"text"`
}

type FlexMessage struct {
	Type     string          `json:"type"`
	AltText  string          `json:"altText"`
	Contents json.RawMessage `json:"contents"`
}

func NewTextMessage(text string) TextMessage {
	return TextMessage{Type: "text", Text: text}
}

func NewQuickReplyItem(label, text string) QuickReplyItem {
	return QuickReplyItem{
		Type: "action",
		Action: QuickReplyAction{
			Type:  "message",
			Label: label,
			Text:  text,
		},
	}
}

func NewFlexMessage(altText string, contents json.RawMessage) FlexMessage {
	return FlexMessage{Type: "flex", AltText: altText, Contents: contents}
}
