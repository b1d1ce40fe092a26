// internal/dedup/dedup.go
package dedup

import (
	"context"
	"time"

	commonerrors "quotebot/internal/common/errors"
	"quotebot/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "quotebot:event:"

// Checker suppresses webhook redeliveries by claiming each event ID in
// Redis with SETNX. When Redis is unavailable the checker fails open:
// answering twice is better than dropping a customer message.
type Checker struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewChecker(client *redis.Client, ttl time.Duration, log logger.Logger) *Checker {
	return &Checker{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "dedup"}),
	}
}

// FirstDelivery reports whether eventID has not been seen within the TTL
// window. The first caller claims the ID; later callers get false.
func (c *Checker) FirstDelivery(ctx context.Context, eventID string) bool {
	if eventID == "" {
		return true
	}

	claimed, err := c.client.SetNX(ctx, keyPrefix+eventID, 1, c.ttl).Result()
	if err != nil {
		checkErr := &commonerrors.StandardError{
			Code:      commonerrors.ErrCodeDedupCheckFailed,
			Message:   "Dedup check failed, processing event anyway",
			Details:   err.Error(),
			Retryable: true,
			Timestamp: time.Now().UTC(),
		}
		c.logger.Warn("dedup check failed", map[string]interface{}{
			"error":   checkErr,
			"eventId": eventID,
		})
		return true
	}

	return claimed
}
