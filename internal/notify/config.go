// internal/notify/config.go
package notify

import (
	"time"

	"quotebot/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	FromEmail    string
	AdminEmail   string
	SMSEnabled   bool
	AdminPhone   string
	SMSSenderID  string
	PushEnabled  bool
	AdminUserIDs []string
	CRMEnabled   bool
	AWSRegion    string
	Timeout      time.Duration
}

// LoadConfig projects the relevant global settings into the notifier's
// own config.
func LoadConfig(cfg *config.Config) *Config {
	return &Config{
		EmailEnabled: cfg.Notifications.Email.Enabled && cfg.Integrations.AWS.SES.Enabled,
		FromEmail:    cfg.Integrations.AWS.SES.FromEmail,
		AdminEmail:   cfg.Notifications.Email.AdminEmail,
		SMSEnabled:   cfg.Notifications.SMS.Enabled && cfg.Integrations.AWS.SNS.Enabled,
		AdminPhone:   cfg.Notifications.SMS.AdminPhone,
		SMSSenderID:  cfg.Integrations.AWS.SNS.DefaultSMSSenderID,
		PushEnabled:  cfg.Notifications.LinePush.Enabled,
		AdminUserIDs: cfg.Line.AdminUserIDs,
		CRMEnabled:   cfg.Integrations.Zoho.Enabled,
		AWSRegion:    cfg.Integrations.AWS.Region,
		Timeout:      30 * time.Second,
	}
}
