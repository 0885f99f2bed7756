package chat

import (
	"time"

	"github.com/google/uuid"

	"github.com/kly-netizen/infonow-chat/internal/user"
)

type ChatType string

const (
	ChatTypeDirect ChatType = "direct"
	ChatTypeGroup  ChatType = "group"
)

// Projection selects how much of a chat's identity a read exposes. Every
// read operation takes it explicitly; there is no process-wide default.
type Projection int

const (
	// ProjectionPublic strips internal storage keys from the result.
	ProjectionPublic Projection = iota
	// ProjectionInternal keeps internal numeric ids on the result, for
	// callers inside the service boundary.
	ProjectionInternal
)

type Message struct {
	ID        int64      `json:"internal_id,omitempty"`
	Sender    *user.User `json:"sender"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
}

// EnrichedChat is the read model every caller receives: the chat row joined
// with its participants and the most recent message, or nil when the chat
// has no messages yet. It is assembled on every read, never cached.
type EnrichedChat struct {
	InternalID   int64        `json:"internal_id,omitempty"`
	ExternalID   uuid.UUID    `json:"chat_id"`
	Type         ChatType     `json:"type"`
	Creator      *user.User   `json:"created_by"`
	GroupName    *string      `json:"group_name"`
	GroupPhoto   *string      `json:"group_photo"`
	CreatedAt    time.Time    `json:"created_at"`
	Participants []*user.User `json:"participants"`
	LastMessage  *Message     `json:"last_message"`
}

type CreateChatRequest struct {
	Type         string   `json:"type" validate:"required,oneof=direct group"`
	CreatedBy    string   `json:"created_by" validate:"required,uuid"`
	Participants []string `json:"participants" validate:"required,min=1,dive,uuid"`
	GroupName    *string  `json:"group_name" validate:"omitempty,min=1,max=255"`
	GroupPhoto   *string  `json:"group_photo" validate:"omitempty,url"`
}
