package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrDuplicateParticipant reports a (chat, user) pair that already exists.
// The unique constraint on chat_participants is what turns a concurrent
// double-submission into this error instead of a silent duplicate row.
var ErrDuplicateParticipant = errors.New("participant already in chat")

type Saver interface {
	SaveChat(tx *sql.Tx, chat *NewChat) (int64, error)
	SaveParticipants(tx *sql.Tx, chatID int64, userIDs []int64) error
}

type Provider interface {
	ChatIDsForUser(ctx context.Context, userExternalID string) ([]int64, error)
	ChatsByIDs(ctx context.Context, ids []int64) ([]*ChatRow, error)
	ChatByFilter(ctx context.Context, filter ChatFilter) (*ChatRow, error)
	ParticipantsByChatIDs(ctx context.Context, ids []int64) ([]*ParticipantRow, error)
	LatestMessagesByChatIDs(ctx context.Context, ids []int64) ([]*MessageRow, error)
}

type PostgresStorage struct {
	db *sql.DB
}

func NewChatPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (r *PostgresStorage) SaveChat(tx *sql.Tx, chat *NewChat) (int64, error) {
	var id int64
	err := tx.QueryRow(`
		INSERT INTO chats (chat_id, type, created_by, group_name, group_photo, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		chat.ExternalID, chat.Type, chat.CreatedBy, chat.GroupName, chat.GroupPhoto, chat.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert chat: %w", err)
	}
	return id, nil
}

func (r *PostgresStorage) SaveParticipants(tx *sql.Tx, chatID int64, userIDs []int64) error {
	for _, userID := range userIDs {
		_, err := tx.Exec(`
			INSERT INTO chat_participants (chat_id, user_id)
			VALUES ($1, $2)`,
			chatID, userID)
		if err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
				return fmt.Errorf("%w: user %d in chat %d", ErrDuplicateParticipant, userID, chatID)
			}
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	return nil
}

func (r *PostgresStorage) ChatIDsForUser(ctx context.Context, userExternalID string) ([]int64, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cp.chat_id
		FROM chat_participants cp
		JOIN users u ON u.id = cp.user_id
		WHERE u.user_id = $1`,
		userExternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to query chat ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan chat id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *PostgresStorage) ChatsByIDs(ctx context.Context, ids []int64) ([]*ChatRow, error) {
	rows, err := r.db.QueryContext(ctx, chatSelect+` WHERE c.id = ANY($1)`, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query chats: %w", err)
	}
	defer rows.Close()

	var chats []*ChatRow
	for rows.Next() {
		chat, err := scanChat(rows)
		if err != nil {
			return nil, err
		}
		chats = append(chats, chat)
	}
	return chats, rows.Err()
}

// ChatByFilter returns sql.ErrNoRows when nothing matches; the repository
// layer maps that to the caller-facing not-found error.
func (r *PostgresStorage) ChatByFilter(ctx context.Context, filter ChatFilter) (*ChatRow, error) {
	row := r.db.QueryRowContext(ctx,
		fmt.Sprintf("%s WHERE %s = $1", chatSelect, filter.Column()),
		filter.Value())
	return scanChat(row)
}

func (r *PostgresStorage) ParticipantsByChatIDs(ctx context.Context, ids []int64) ([]*ParticipantRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT cp.chat_id, u.id, u.user_id, u.username
		FROM chat_participants cp
		JOIN users u ON u.id = cp.user_id
		WHERE cp.chat_id = ANY($1)
		ORDER BY cp.id`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	var participants []*ParticipantRow
	for rows.Next() {
		var p ParticipantRow
		err := rows.Scan(&p.ChatID, &p.User.ID, &p.User.ExternalID, &p.User.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, &p)
	}
	return participants, rows.Err()
}

// LatestMessagesByChatIDs computes the per-chat latest message as one
// windowed query over the whole id set, not one query per chat.
func (r *PostgresStorage) LatestMessagesByChatIDs(ctx context.Context, ids []int64) ([]*MessageRow, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id, m.chat_id, m.content, m.created_at, u.id, u.user_id, u.username
		FROM (
			SELECT id, chat_id, sender_id, content, created_at,
			       ROW_NUMBER() OVER (PARTITION BY chat_id ORDER BY id DESC) AS rn
			FROM messages
			WHERE chat_id = ANY($1)
		) m
		JOIN users u ON u.id = m.sender_id
		WHERE m.rn = 1`,
		pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to query latest messages: %w", err)
	}
	defer rows.Close()

	var messages []*MessageRow
	for rows.Next() {
		var m MessageRow
		err := rows.Scan(&m.ID, &m.ChatID, &m.Content, &m.CreatedAt,
			&m.Sender.ID, &m.Sender.ExternalID, &m.Sender.Username)
		if err != nil {
			return nil, fmt.Errorf("failed to scan message: %w", err)
		}
		messages = append(messages, &m)
	}
	return messages, rows.Err()
}

const chatSelect = `
	SELECT c.id, c.chat_id, c.type, c.group_name, c.group_photo, c.created_at,
	       u.id, u.user_id, u.username
	FROM chats c
	JOIN users u ON u.id = c.created_by`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanChat(row rowScanner) (*ChatRow, error) {
	var c ChatRow
	err := row.Scan(&c.ID, &c.ExternalID, &c.Type, &c.GroupName, &c.GroupPhoto, &c.CreatedAt,
		&c.Creator.ID, &c.Creator.ExternalID, &c.Creator.Username)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
