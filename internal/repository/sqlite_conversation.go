package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/ideacrafter/ideacrafter/internal/domain"
	"github.com/ideacrafter/ideacrafter/internal/logger"
)

// SQLiteConversationRepo implements ConversationRepo on a SQLite database.
//
// Deployed schemas name the conversation key either "conversation_id" or,
// on legacy tables, "id". The column is resolved once here at construction
// and every query uses the resolved name; callers never see the ambiguity.
type SQLiteConversationRepo struct {
	db       *sql.DB
	idColumn string
}

// NewSQLiteConversationRepo creates a conversation repo, resolving the id
// column of the chats table.
func NewSQLiteConversationRepo(db *sql.DB) (*SQLiteConversationRepo, error) {
	col, err := resolveIDColumn(db)
	if err != nil {
		return nil, err
	}
	return &SQLiteConversationRepo{db: db, idColumn: col}, nil
}

// resolveIDColumn inspects the chats table and picks the canonical key
// column, preferring conversation_id over the legacy id.
func resolveIDColumn(db *sql.DB) (string, error) {
	rows, err := db.Query(`SELECT name FROM pragma_table_info('chats')`)
	if err != nil {
		return "", fmt.Errorf("inspecting chats table: %w", err)
	}
	defer rows.Close()

	hasLegacy := false
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return "", fmt.Errorf("inspecting chats table: %w", err)
		}
		switch name {
		case "conversation_id":
			return "conversation_id", nil
		case "id":
			hasLegacy = true
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("inspecting chats table: %w", err)
	}
	if hasLegacy {
		return "id", nil
	}
	return "", errors.New("chats table has neither conversation_id nor id column")
}

func (r *SQLiteConversationRepo) List(ctx context.Context, userID string) ([]domain.ConversationSummary, error) {
	query := fmt.Sprintf(`SELECT %s, title, updated_at FROM chats WHERE user_id = ? ORDER BY updated_at DESC`, r.idColumn)
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	defer rows.Close()

	var out []domain.ConversationSummary
	for rows.Next() {
		var s domain.ConversationSummary
		var updatedAt string
		if err := rows.Scan(&s.ConversationID, &s.Title, &updatedAt); err != nil {
			return nil, fmt.Errorf("scanning conversation summary: %w", err)
		}
		s.UpdatedAt = parseTime(updatedAt)
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing conversations: %w", err)
	}
	return out, nil
}

func (r *SQLiteConversationRepo) Load(ctx context.Context, userID, conversationID string) (*domain.Conversation, error) {
	query := fmt.Sprintf(`SELECT %s, title, messages, updated_at FROM chats WHERE user_id = ? AND %s = ?`, r.idColumn, r.idColumn)
	row := r.db.QueryRowContext(ctx, query, userID, conversationID)

	var c domain.Conversation
	var blob, updatedAt string
	err := row.Scan(&c.ConversationID, &c.Title, &blob, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("conversation %s: %w", conversationID, ErrNotFound)
		}
		return nil, fmt.Errorf("loading conversation: %w", err)
	}
	c.UserID = userID
	c.UpdatedAt = parseTime(updatedAt)

	msgs, err := domain.DecodeMessages(blob)
	if err != nil {
		// Corrupt message blobs degrade to an empty view instead of failing
		// the whole load.
		logger.L.Warn("stored messages unreadable, returning empty list", "conversation_id", conversationID, "error", err)
		msgs = []domain.Message{}
	}
	c.Messages = msgs
	return &c, nil
}

// Save inserts the conversation when it has no id yet, adopting a freshly
// generated one, and otherwise overwrites the stored record wholesale.
func (r *SQLiteConversationRepo) Save(ctx context.Context, c *domain.Conversation) error {
	blob, err := domain.EncodeMessages(c.Messages)
	if err != nil {
		return fmt.Errorf("encoding messages: %w", err)
	}
	now := time.Now().UTC()

	if c.ConversationID == "" {
		id := uuid.NewString()
		query := fmt.Sprintf(`INSERT INTO chats (%s, user_id, title, messages, updated_at) VALUES (?, ?, ?, ?, ?)`, r.idColumn)
		if _, err := r.db.ExecContext(ctx, query, id, c.UserID, c.Title, blob, now.Format(time.RFC3339)); err != nil {
			return fmt.Errorf("inserting conversation: %w", err)
		}
		c.ConversationID = id
		c.UpdatedAt = now
		return nil
	}

	query := fmt.Sprintf(`UPDATE chats SET title = ?, messages = ?, updated_at = ? WHERE user_id = ? AND %s = ?`, r.idColumn)
	res, err := r.db.ExecContext(ctx, query, c.Title, blob, now.Format(time.RFC3339), c.UserID, c.ConversationID)
	if err != nil {
		return fmt.Errorf("updating conversation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating conversation: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("conversation %s: %w", c.ConversationID, ErrNotFound)
	}
	c.UpdatedAt = now
	return nil
}

func (r *SQLiteConversationRepo) Delete(ctx context.Context, userID, conversationID string) error {
	query := fmt.Sprintf(`DELETE FROM chats WHERE user_id = ? AND %s = ?`, r.idColumn)
	res, err := r.db.ExecContext(ctx, query, userID, conversationID)
	if err != nil {
		return fmt.Errorf("deleting conversation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting conversation: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("conversation %s: %w", conversationID, ErrNotFound)
	}
	return nil
}

// parseTime reads a stored RFC3339 timestamp, zero on failure.
func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
