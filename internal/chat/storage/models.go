package storage

import (
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/kly-netizen/infonow-chat/internal/user"
)

type ChatRow struct {
	ID         int64
	ExternalID uuid.UUID
	Type       string
	Creator    user.User
	GroupName  sql.NullString
	GroupPhoto sql.NullString
	CreatedAt  time.Time
}

// NewChat carries the fields of a chat row about to be inserted; the
// internal id and external uuid are generated during the insert.
type NewChat struct {
	ExternalID uuid.UUID
	Type       string
	CreatedBy  int64
	GroupName  *string
	GroupPhoto *string
	CreatedAt  time.Time
}

type ParticipantRow struct {
	ChatID int64
	User   user.User
}

type MessageRow struct {
	ID        int64
	ChatID    int64
	Sender    user.User
	Content   string
	CreatedAt time.Time
}
