// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig          `mapstructure:"app"`
	Server        ServerConfig       `mapstructure:"server"`
	Line          LineConfig         `mapstructure:"line"`
	Trust         TrustConfig        `mapstructure:"trust"`
	Pricing       PricingConfig      `mapstructure:"pricing"`
	Dedup         DedupConfig        `mapstructure:"dedup"`
	Database      DatabaseConfig     `mapstructure:"database"`
	Integrations  IntegrationConfig  `mapstructure:"integrations"`
	Notifications NotificationConfig `mapstructure:"notifications"`
	Logging       LoggingConfig      `mapstructure:"logging"`
	Tracing       TracingConfig      `mapstructure:"tracing"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port         int `mapstructure:"port"`
	ReadTimeout  int `mapstructure:"read_timeout"`  // milliseconds
	WriteTimeout int `mapstructure:"write_timeout"` // milliseconds
}

// LineConfig holds LINE Messaging API settings.
type LineConfig struct {
	ChannelSecret      string   `mapstructure:"channel_secret"`
	ChannelAccessToken string   `mapstructure:"channel_access_token"`
	APIEndpoint        string   `mapstructure:"api_endpoint"`
	AdminUserIDs       []string `mapstructure:"admin_user_ids"`
	ContactPhone       string   `mapstructure:"contact_phone"`
	ContactEmail       string   `mapstructure:"contact_email"`
	FlexTemplatePath   string   `mapstructure:"flex_template_path"`
}

// TrustConfig holds the gating thresholds for quote disclosure.
type TrustConfig struct {
	LowThreshold  int `mapstructure:"low_threshold"`
	HighThreshold int `mapstructure:"high_threshold"`
}

type PricingConfig struct {
	DocumentPath string `mapstructure:"document_path"`
}

// DedupConfig controls webhook redelivery suppression.
type DedupConfig struct {
	TTL int `mapstructure:"ttl"` // milliseconds
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// IntegrationConfig holds settings for CRM and cloud messaging services.
type IntegrationConfig struct {
	Zoho struct {
		Enabled   bool   `mapstructure:"enabled"`
		APIKey    string `mapstructure:"api_key"`
		AuthToken string `mapstructure:"oauth_token"`
	} `mapstructure:"zoho"`

	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled            bool   `mapstructure:"enabled"`
			DefaultSMSSenderID string `mapstructure:"default_sms_sender_id"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// NotificationConfig holds settings for admin alerting channels.
type NotificationConfig struct {
	Email struct {
		Enabled    bool   `mapstructure:"enabled"`
		AdminEmail string `mapstructure:"admin_email"`
	} `mapstructure:"email"`
	SMS struct {
		Enabled    bool   `mapstructure:"enabled"`
		AdminPhone string `mapstructure:"admin_phone"`
	} `mapstructure:"sms"`
	LinePush struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"line_push"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

type TracingConfig struct {
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}
