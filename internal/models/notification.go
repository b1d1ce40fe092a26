// internal/models/notification.go
package models

// NotificationKind says why the admin team is being pinged.
type NotificationKind string

const (
	NotifyContactRequest NotificationKind = "contact_request"
	NotifyFollowUp       NotificationKind = "follow_up"
)

// AdminNotification is an event forwarded to the notification channels
// (email, SMS, chat push, CRM). Context carries the sender reference and
// the original message text as plain text; no further format is imposed.
type AdminNotification struct {
	Kind      NotificationKind `json:"kind"`
	Title     string           `json:"title"`
	Context   string           `json:"context"`
	SourceRef string           `json:"sourceRef"`
}
