package chat

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/kly-netizen/infonow-chat/infrastructure"
	"github.com/kly-netizen/infonow-chat/internal/chat/storage"
	"github.com/kly-netizen/infonow-chat/internal/user"
)

// Aggregator assembles EnrichedChat read models. Participants and the
// per-chat latest message are fetched as grouped queries over the whole
// chat id set, so a listing never degrades into one query per chat.
type Aggregator struct {
	repo  Repository
	chats storage.Provider
}

func NewAggregator(repo Repository, chats storage.Provider) *Aggregator {
	return &Aggregator{repo: repo, chats: chats}
}

// ListForUser returns every chat the user participates in. The order among
// chats is not part of the contract. An unknown user simply has no chats.
func (a *Aggregator) ListForUser(ctx context.Context, userExternalID string, p Projection) ([]*EnrichedChat, error) {
	ids, err := a.chats.ChatIDsForUser(ctx, userExternalID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", infrastructure.ErrPersistenceFailed, err)
	}
	if len(ids) == 0 {
		return []*EnrichedChat{}, nil
	}

	rows, err := a.chats.ChatsByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", infrastructure.ErrPersistenceFailed, err)
	}
	return a.enrich(ctx, rows, p)
}

func (a *Aggregator) GetChat(ctx context.Context, filter storage.ChatFilter, p Projection) (*EnrichedChat, error) {
	row, err := a.repo.ChatByFilter(ctx, filter)
	if err != nil {
		return nil, err
	}

	enriched, err := a.enrich(ctx, []*storage.ChatRow{row}, p)
	if err != nil {
		return nil, err
	}
	return enriched[0], nil
}

func (a *Aggregator) enrich(ctx context.Context, rows []*storage.ChatRow, p Projection) ([]*EnrichedChat, error) {
	ids := lo.Map(rows, func(c *storage.ChatRow, _ int) int64 { return c.ID })

	participants, err := a.chats.ParticipantsByChatIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", infrastructure.ErrPersistenceFailed, err)
	}
	messages, err := a.chats.LatestMessagesByChatIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", infrastructure.ErrPersistenceFailed, err)
	}

	participantsByChat := lo.GroupBy(participants, func(pr *storage.ParticipantRow) int64 { return pr.ChatID })
	messageByChat := lo.KeyBy(messages, func(m *storage.MessageRow) int64 { return m.ChatID })

	enriched := make([]*EnrichedChat, 0, len(rows))
	for _, row := range rows {
		chat := &EnrichedChat{
			InternalID: row.ID,
			ExternalID: row.ExternalID,
			Type:       ChatType(row.Type),
			Creator:    cloneUser(row.Creator),
			CreatedAt:  row.CreatedAt,
		}
		if row.GroupName.Valid {
			chat.GroupName = &row.GroupName.String
		}
		if row.GroupPhoto.Valid {
			chat.GroupPhoto = &row.GroupPhoto.String
		}

		chat.Participants = lo.Map(participantsByChat[row.ID], func(pr *storage.ParticipantRow, _ int) *user.User {
			return cloneUser(pr.User)
		})
		if m, ok := messageByChat[row.ID]; ok {
			chat.LastMessage = &Message{
				ID:        m.ID,
				Sender:    cloneUser(m.Sender),
				Content:   m.Content,
				CreatedAt: m.CreatedAt,
			}
		}

		chat.applyProjection(p)
		enriched = append(enriched, chat)
	}
	return enriched, nil
}

func (c *EnrichedChat) applyProjection(p Projection) {
	if p == ProjectionInternal {
		return
	}
	c.InternalID = 0
	if c.LastMessage != nil {
		c.LastMessage.ID = 0
	}
}

func cloneUser(u user.User) *user.User {
	return &u
}
