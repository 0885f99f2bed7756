package chat

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kly-netizen/infonow-chat/infrastructure"
	"github.com/kly-netizen/infonow-chat/internal/chat/storage"
)

type Repository interface {
	// CreateChat inserts the chat row and one participant row per user id
	// inside a single transaction. Either all rows commit or none do.
	CreateChat(ctx context.Context, chat *storage.NewChat, userIDs []int64) (int64, error)
	ChatByFilter(ctx context.Context, filter storage.ChatFilter) (*storage.ChatRow, error)
}

type repository struct {
	*sql.DB
	chatSaver    storage.Saver
	chatProvider storage.Provider
	log          *zap.Logger
}

func NewRepository(db *sql.DB, chatSaver storage.Saver, chatProvider storage.Provider, log *zap.Logger) Repository {
	return &repository{
		DB:           db,
		chatSaver:    chatSaver,
		chatProvider: chatProvider,
		log:          log,
	}
}

func (r *repository) CreateChat(ctx context.Context, chat *storage.NewChat, userIDs []int64) (int64, error) {
	var chatID int64
	err := infrastructure.WithTransaction(r.DB, ctx, r.log, func(tx *sql.Tx) error {
		id, err := r.chatSaver.SaveChat(tx, chat)
		if err != nil {
			return err
		}
		if err := r.chatSaver.SaveParticipants(tx, id, userIDs); err != nil {
			return err
		}
		chatID = id
		return nil
	})
	if err != nil {
		if errors.Is(err, infrastructure.ErrPersistenceFailed) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %v", infrastructure.ErrPersistenceFailed, err)
	}
	return chatID, nil
}

func (r *repository) ChatByFilter(ctx context.Context, filter storage.ChatFilter) (*storage.ChatRow, error) {
	chat, err := r.chatProvider.ChatByFilter(ctx, filter)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, infrastructure.ErrChatNotFound
		}
		return nil, fmt.Errorf("%w: %v", infrastructure.ErrPersistenceFailed, err)
	}
	return chat, nil
}
