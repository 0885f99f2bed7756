package database

import (
	"database/sql"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Database struct {
	*gorm.DB
}

// NewDatabase opens the Postgres connection pool. Query code works against
// the underlying *sql.DB (see SQLDB); gorm is used for connection management
// and schema migration only.
func NewDatabase(dsn string) (*Database, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return &Database{db}, nil
}

func (db *Database) SQLDB() (*sql.DB, error) {
	return db.DB.DB()
}

func (db *Database) Migrate() error {
	err := db.AutoMigrate(&User{}, &Chat{}, &ChatParticipant{}, &Message{})
	if err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// User is owned by the identity system; the chat domain reads it by
// external id and references it by internal id only.
type User struct {
	ID        int64     `gorm:"primaryKey"`
	UserID    string    `gorm:"type:uuid;uniqueIndex;not null"`
	Username  string    `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null"`
}

type Chat struct {
	ID         int64   `gorm:"primaryKey"`
	ChatID     string  `gorm:"type:uuid;uniqueIndex;not null"`
	Type       string  `gorm:"not null"`
	CreatedBy  int64   `gorm:"not null"`
	Creator    *User   `gorm:"foreignKey:CreatedBy"`
	GroupName  *string `gorm:"default:null"`
	GroupPhoto *string `gorm:"default:null"`
	CreatedAt  time.Time
}

// ChatParticipant rows cannot outlive their chat; the (chat, user) pair is
// unique so a concurrent double-submission cannot land twice.
type ChatParticipant struct {
	ID     int64 `gorm:"primaryKey"`
	ChatID int64 `gorm:"uniqueIndex:idx_chat_participant;not null"`
	Chat   *Chat `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
	UserID int64 `gorm:"uniqueIndex:idx_chat_participant;not null"`
	User   *User `gorm:"foreignKey:UserID"`
}

// Message ids are allocated from one sequence, so per chat the id is a
// strictly increasing recency key.
type Message struct {
	ID        int64 `gorm:"primaryKey"`
	ChatID    int64 `gorm:"index;not null"`
	Chat      *Chat `gorm:"foreignKey:ChatID;constraint:OnDelete:CASCADE"`
	SenderID  int64 `gorm:"not null"`
	Sender    *User `gorm:"foreignKey:SenderID"`
	Content   string
	CreatedAt time.Time
}
