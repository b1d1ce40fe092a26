// internal/notify/notifier.go
package notify

import (
	"context"
	"fmt"

	commonerrors "quotebot/internal/common/errors"
	"quotebot/internal/common/logger"
	"quotebot/internal/common/metrics"
	"quotebot/internal/crm"
	"quotebot/internal/models"
	"quotebot/internal/transport/line"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

type LinePusher interface {
	Push(ctx context.Context, to string, messages []line.Message) error
}

type LeadCreator interface {
	CreateLead(ctx context.Context, lead *crm.Lead) (string, error)
}

// Notifier fans an admin notification out to every enabled channel.
// Channel failures are logged and counted but never propagated; alerting
// must not break the chat flow.
type Notifier struct {
	config    *Config
	logger    logger.Logger
	sesClient SESService
	snsClient SNSService
	pusher    LinePusher
	leads     LeadCreator
}

func NewNotifier(cfg *Config, log logger.Logger, sesClient SESService, snsClient SNSService, pusher LinePusher, leads LeadCreator) *Notifier {
	return &Notifier{
		config:    cfg,
		logger:    log.WithFields(map[string]interface{}{"component": "notifier"}),
		sesClient: sesClient,
		snsClient: snsClient,
		pusher:    pusher,
		leads:     leads,
	}
}

// NewWithAWS builds a notifier with real SES and SNS clients.
func NewWithAWS(ctx context.Context, cfg *Config, log logger.Logger, pusher LinePusher, leads LeadCreator) (*Notifier, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	return NewNotifier(cfg, log, ses.NewFromConfig(awsCfg), sns.NewFromConfig(awsCfg), pusher, leads), nil
}

// Notify delivers n on every enabled channel. It always returns; the
// caller never needs to handle channel errors.
func (n *Notifier) Notify(ctx context.Context, notification models.AdminNotification) {
	ctx, cancel := context.WithTimeout(ctx, n.config.Timeout)
	defer cancel()

	subject := notification.Title
	textBody := fmt.Sprintf("%s\nFrom %s\n---\n%s", notification.Title, notification.SourceRef, notification.Context)
	htmlBody := fmt.Sprintf("<h3>%s</h3><p><b>From:</b> %s</p><pre>%s</pre>",
		notification.Title, notification.SourceRef, notification.Context)

	if n.config.EmailEnabled && n.sesClient != nil && n.config.AdminEmail != "" {
		n.deliver(ctx, "email", func(ctx context.Context) error {
			return n.sendEmail(ctx, subject, textBody, htmlBody)
		})
	}

	if n.config.SMSEnabled && n.snsClient != nil && n.config.AdminPhone != "" {
		n.deliver(ctx, "sms", func(ctx context.Context) error {
			return n.sendSMS(ctx, textBody)
		})
	}

	if n.config.PushEnabled && n.pusher != nil {
		for _, adminID := range n.config.AdminUserIDs {
			n.deliver(ctx, "push", func(ctx context.Context) error {
				return n.pusher.Push(ctx, adminID, []line.Message{line.NewTextMessage(textBody)})
			})
		}
	}

	if n.config.CRMEnabled && n.leads != nil && notification.Kind == models.NotifyContactRequest {
		lead := &crm.Lead{
			LastName:    notification.SourceRef,
			Company:     "LINE",
			Description: notification.Context,
			Source:      "LINE Bot",
		}
		n.deliver(ctx, "crm", func(ctx context.Context) error {
			_, err := n.leads.CreateLead(ctx, lead)
			return err
		})
	}
}

// deliver runs one channel send, re-attempting per the retry budget of the
// channel's error code. The attempt count includes the first try, so a
// budget of 1 means no retry.
func (n *Notifier) deliver(ctx context.Context, channel string, send func(context.Context) error) {
	err := send(ctx)
	if err == nil {
		return
	}

	chErr := commonerrors.NewNotificationError(channel, err)
	for attempt := 2; attempt <= commonerrors.GetRetryCount(chErr.Code); attempt++ {
		if ctx.Err() != nil {
			break
		}
		if err = send(ctx); err == nil {
			return
		}
		chErr = commonerrors.NewNotificationError(channel, err)
	}

	n.channelFailed(channel, chErr)
}

func (n *Notifier) channelFailed(channel string, chErr *commonerrors.StandardError) {
	metrics.NotificationFailures.WithLabelValues(channel).Inc()
	n.logger.Error("notification channel failed", map[string]interface{}{
		"channel":   channel,
		"category":  commonerrors.GetErrorCategory(chErr.Code),
		"retryable": commonerrors.IsRetryableErrorCode(chErr.Code),
		"error":     chErr,
	})
}

func (n *Notifier) sendEmail(ctx context.Context, subject, textBody, htmlBody string) error {
	_, err := n.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{n.config.AdminEmail},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(textBody)},
				Html: &types.Content{Data: aws.String(htmlBody)},
			},
		},
		Source: aws.String(n.config.FromEmail),
	})
	return err
}

func (n *Notifier) sendSMS(ctx context.Context, message string) error {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(n.config.AdminPhone),
		Message:     aws.String(message),
	}
	if n.config.SMSSenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(n.config.SMSSenderID),
			},
		}
	}
	_, err := n.snsClient.Publish(ctx, input)
	return err
}
