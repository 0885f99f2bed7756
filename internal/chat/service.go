package chat

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kly-netizen/infonow-chat/infrastructure"
	"github.com/kly-netizen/infonow-chat/internal/chat/storage"
	"github.com/kly-netizen/infonow-chat/internal/user"
)

// Service is the programmatic interface of the chat domain: listing a
// user's chats, resolving one chat, and creating a chat with validated
// participants. All state lives in the store; the service itself is
// stateless and safe for concurrent use.
type Service struct {
	validate   *Validator
	users      user.Provider
	repo       Repository
	aggregator *Aggregator
	log        *zap.Logger
}

func NewService(validate *Validator, users user.Provider, repo Repository, aggregator *Aggregator, log *zap.Logger) *Service {
	return &Service{
		validate:   validate,
		users:      users,
		repo:       repo,
		aggregator: aggregator,
		log:        log,
	}
}

// ListChats never fails with not-found; a user without chats gets an empty
// list. An id that cannot be a user id participates in nothing, so it is
// answered without touching the store (the uuid column would reject it).
func (s *Service) ListChats(ctx context.Context, userExternalID string, p Projection) ([]*EnrichedChat, error) {
	if _, err := uuid.Parse(userExternalID); err != nil {
		return []*EnrichedChat{}, nil
	}
	return s.aggregator.ListForUser(ctx, userExternalID, p)
}

func (s *Service) GetChat(ctx context.Context, chatExternalID string, p Projection) (*EnrichedChat, error) {
	if _, err := uuid.Parse(chatExternalID); err != nil {
		return nil, fmt.Errorf("%w: %q is not a chat id", infrastructure.ErrChatNotFound, chatExternalID)
	}
	return s.aggregator.GetChat(ctx, storage.FilterByExternalID(chatExternalID), p)
}

func (s *Service) GetChatByInternalID(ctx context.Context, id int64, p Projection) (*EnrichedChat, error) {
	return s.aggregator.GetChat(ctx, storage.FilterByInternalID(id), p)
}

// CreateChat validates the request, resolves every participant, inserts the
// chat and its participant rows atomically, then reads the result back
// through the single-chat path. Creation is not idempotent: a failed
// attempt is surfaced, never retried.
func (s *Service) CreateChat(ctx context.Context, req CreateChatRequest) (*EnrichedChat, error) {
	if err := s.validate.ValidateCreateChat(req); err != nil {
		return nil, err
	}

	resolved, err := s.resolveParticipants(ctx, req.CreatedBy, req.Participants)
	if err != nil {
		return nil, err
	}

	newChat := &storage.NewChat{
		ExternalID: uuid.New(),
		Type:       req.Type,
		CreatedBy:  resolved.creator.ID,
		GroupName:  req.GroupName,
		GroupPhoto: req.GroupPhoto,
		CreatedAt:  time.Now().UTC(),
	}

	id, err := s.repo.CreateChat(ctx, newChat, resolved.userIDs())
	if err != nil {
		return nil, err
	}

	chat, err := s.aggregator.GetChat(ctx, storage.FilterByInternalID(id), ProjectionPublic)
	if err != nil {
		if errors.Is(err, infrastructure.ErrChatNotFound) {
			// A committed chat that cannot be read back means the store is
			// inconsistent; log loudly instead of retrying.
			s.log.Error("created chat missing on read-back",
				zap.Int64("chat_internal_id", id),
				zap.String("chat_id", newChat.ExternalID.String()))
			return nil, fmt.Errorf("chat %s missing after create: %w", newChat.ExternalID, err)
		}
		return nil, err
	}

	s.log.Info("chat created",
		zap.String("chat_id", chat.ExternalID.String()),
		zap.String("type", string(chat.Type)),
		zap.Int("participants", len(chat.Participants)))
	return chat, nil
}
