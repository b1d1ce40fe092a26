// internal/models/response.go
package models

// ReplyType distinguishes the response shapes the engine can produce.
type ReplyType string

const (
	ReplyText        ReplyType = "text"
	ReplyContactCard ReplyType = "contact_card"
)

// QuickReplyItem is one tappable option. Label is what the user sees; Text
// is echoed back verbatim as a new message when selected.
type QuickReplyItem struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type QuickReply struct {
	Items []QuickReplyItem `json:"items"`
}

// Reply is the transport-agnostic response payload. The messaging adapter
// turns it into whatever the platform wants (text message, quick-reply
// menu, flex contact card).
type Reply struct {
	Type       ReplyType   `json:"type"`
	Text       string      `json:"text,omitempty"`
	QuickReply *QuickReply `json:"quickReply,omitempty"`
}
