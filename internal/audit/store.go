// internal/audit/store.go
package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	commonerrors "quotebot/internal/common/errors"
	"quotebot/internal/common/logger"
	"quotebot/internal/models"

	"github.com/google/uuid"
)

// Record is one gating decision as persisted for later review. The
// message text is stored verbatim so suspicious conversations can be
// audited.
type Record struct {
	ID         string
	EventID    string
	SourceRef  string
	Text       string
	Intent     string
	TrustScore int
	Action     string
	Slots      json.RawMessage
	Quote      json.RawMessage
	CreatedAt  time.Time
}

// Store writes decision records to PostgreSQL.
type Store struct {
	db     *sql.DB
	logger logger.Logger
}

func NewStore(db *sql.DB, log logger.Logger) *Store {
	return &Store{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "audit"}),
	}
}

// Insert persists one decision. A nil quote is stored as SQL NULL.
func (s *Store) Insert(ctx context.Context, rec *Record) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	var quote interface{}
	if rec.Quote != nil {
		quote = []byte(rec.Quote)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO decision_log (
			id, event_id, source_ref, message_text, intent,
			trust_score, action, slots, quote, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		rec.ID,
		rec.EventID,
		rec.SourceRef,
		rec.Text,
		rec.Intent,
		rec.TrustScore,
		rec.Action,
		[]byte(rec.Slots),
		quote,
		rec.CreatedAt,
	)
	if err != nil {
		return commonerrors.NewAuditWriteError(err)
	}

	return nil
}

// RecordFromDecision flattens a message and its decision into a Record.
func RecordFromDecision(msg models.Message, intent string, trustScore int, action string, slots interface{}, quote *models.Quote) (*Record, error) {
	slotsJSON, err := json.Marshal(slots)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		ID:         uuid.New().String(),
		EventID:    msg.EventID,
		SourceRef:  msg.SourceRef,
		Text:       msg.Text,
		Intent:     intent,
		TrustScore: trustScore,
		Action:     action,
		Slots:      slotsJSON,
		CreatedAt:  time.Now().UTC(),
	}

	if quote != nil {
		quoteJSON, err := json.Marshal(quote)
		if err != nil {
			return nil, err
		}
		rec.Quote = quoteJSON
	}

	return rec, nil
}
