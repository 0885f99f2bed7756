//go:build wireinject
// +build wireinject

package di

import (
	"database/sql"

	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/kly-netizen/infonow-chat/internal/chat"
	"github.com/kly-netizen/infonow-chat/internal/user"
)

func InitializeChatHandler(db *sql.DB, log *zap.Logger) *chat.JSONHandler {
	wire.Build(user.Set, chat.Set)
	return &chat.JSONHandler{}
}
