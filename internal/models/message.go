// internal/models/message.go
package models

import "time"

// Message is a single inbound chat message. The struct is built once per
// webhook event and never mutated afterwards.
type Message struct {
	// Text is the raw message body. May be empty; every downstream
	// component treats empty text as matching nothing.
	Text string `json:"text"`

	// SourceRef is an opaque sender reference (userId or groupId). It is
	// only used for logging and admin notifications, never parsed.
	SourceRef string `json:"sourceRef"`

	// EventID is the platform-assigned webhook event ID, used for
	// redelivery deduplication.
	EventID string `json:"eventId"`

	ReceivedAt time.Time `json:"receivedAt"`
}
