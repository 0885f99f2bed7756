package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

type Provider interface {
	UsersByExternalIDs(ctx context.Context, externalIDs []string) ([]*User, error)
}

type PostgresStorage struct {
	db *sql.DB
}

func NewUserPostgresStorage(db *sql.DB) *PostgresStorage {
	return &PostgresStorage{db: db}
}

func (r *PostgresStorage) UsersByExternalIDs(ctx context.Context, externalIDs []string) ([]*User, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, username FROM users WHERE user_id = ANY($1)`,
		pq.Array(externalIDs))
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.ExternalID, &u.Username); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}
