package chat

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/kly-netizen/infonow-chat/infrastructure"
	"github.com/kly-netizen/infonow-chat/internal/chat/storage"
)

// txRecorderConn is a driver connection that only knows how to open and
// close transactions, recording the outcome. The saver stub below owns all
// SQL, so no statement ever reaches the driver.
type txRecorderConn struct {
	committed  bool
	rolledBack bool
}

type txRecorderConnector struct{ conn *txRecorderConn }

func (c *txRecorderConnector) Connect(context.Context) (driver.Conn, error) { return c.conn, nil }
func (c *txRecorderConnector) Driver() driver.Driver                        { return txRecorderDriver{c.conn} }

type txRecorderDriver struct{ conn *txRecorderConn }

func (d txRecorderDriver) Open(string) (driver.Conn, error) { return d.conn, nil }

func (c *txRecorderConn) Prepare(string) (driver.Stmt, error) {
	return nil, errors.New("unexpected statement")
}
func (c *txRecorderConn) Close() error              { return nil }
func (c *txRecorderConn) Begin() (driver.Tx, error) { return c, nil }
func (c *txRecorderConn) Commit() error             { c.committed = true; return nil }
func (c *txRecorderConn) Rollback() error           { c.rolledBack = true; return nil }

type saverStub struct {
	chatID          int64
	saveErr         error
	participantsErr error
}

func (s *saverStub) SaveChat(*sql.Tx, *storage.NewChat) (int64, error) {
	return s.chatID, s.saveErr
}

func (s *saverStub) SaveParticipants(*sql.Tx, int64, []int64) error {
	return s.participantsErr
}

func TestRepositoryCreateChat_CommitsOnSuccess(t *testing.T) {
	req := require.New(t)
	conn := &txRecorderConn{}
	db := sql.OpenDB(&txRecorderConnector{conn: conn})
	repo := NewRepository(db, &saverStub{chatID: 42}, nil, zap.NewNop())

	id, err := repo.CreateChat(context.Background(), &storage.NewChat{}, []int64{1, 2})
	req.NoError(err)
	req.Equal(int64(42), id)
	req.True(conn.committed)
	req.False(conn.rolledBack)
}

func TestRepositoryCreateChat_DuplicateParticipantRollsBack(t *testing.T) {
	req := require.New(t)
	conn := &txRecorderConn{}
	db := sql.OpenDB(&txRecorderConnector{conn: conn})
	saver := &saverStub{
		chatID:          42,
		participantsErr: fmt.Errorf("%w: user 2 in chat 42", storage.ErrDuplicateParticipant),
	}
	repo := NewRepository(db, saver, nil, zap.NewNop())

	// A concurrent retry that trips the (chat, user) unique constraint
	// surfaces as a persistence failure and leaves no chat behind.
	id, err := repo.CreateChat(context.Background(), &storage.NewChat{}, []int64{1, 2})
	req.Zero(id)
	req.ErrorIs(err, infrastructure.ErrPersistenceFailed)
	req.True(conn.rolledBack)
	req.False(conn.committed)
}

func TestRepositoryCreateChat_ChatInsertFailureRollsBack(t *testing.T) {
	req := require.New(t)
	conn := &txRecorderConn{}
	db := sql.OpenDB(&txRecorderConnector{conn: conn})
	repo := NewRepository(db, &saverStub{saveErr: errors.New("connection reset")}, nil, zap.NewNop())

	id, err := repo.CreateChat(context.Background(), &storage.NewChat{}, []int64{1})
	req.Zero(id)
	req.ErrorIs(err, infrastructure.ErrPersistenceFailed)
	req.True(conn.rolledBack)
	req.False(conn.committed)
}
