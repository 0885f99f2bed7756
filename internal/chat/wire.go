package chat

import (
	"database/sql"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/kly-netizen/infonow-chat/internal/chat/storage"
	"github.com/kly-netizen/infonow-chat/internal/user"
)

func ProvideChatStorage(db *sql.DB) *storage.PostgresStorage {
	return storage.NewChatPostgresStorage(db)
}

func ProvideRepository(db *sql.DB, chatStorage *storage.PostgresStorage, log *zap.Logger) Repository {
	return NewRepository(db, chatStorage, chatStorage, log)
}

func ProvideAggregator(repo Repository, chatStorage *storage.PostgresStorage) *Aggregator {
	return NewAggregator(repo, chatStorage)
}

func ProvideService(users user.Provider, repo Repository, aggregator *Aggregator, log *zap.Logger) *Service {
	return NewService(NewValidator(), users, repo, aggregator, log)
}

func ProvideJSONHandler(service *Service, log *zap.Logger) *JSONHandler {
	return NewJSONHandler(service, log)
}

var Set = wire.NewSet(ProvideChatStorage, ProvideRepository, ProvideAggregator, ProvideService, ProvideJSONHandler)
