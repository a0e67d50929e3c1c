// Package testutil builds throwaway databases for package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"docchat-be/internal/entity"
	"docchat-be/internal/model"
	"docchat-be/internal/repository/unitofwork"
	"docchat-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database closed at test end.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.NewSqliteDB("")
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func NewFactory(t *testing.T) unitofwork.RepositoryFactory {
	t.Helper()
	return unitofwork.NewRepositoryFactory(NewDB(t))
}

// CreateUser inserts a user with a placeholder hash.
func CreateUser(t *testing.T, f unitofwork.RepositoryFactory, email string) *entity.User {
	t.Helper()
	u := &entity.User{Id: uuid.New(), Email: email, PasswordHash: "x", CreatedAt: time.Now()}
	require.NoError(t, f.NewUnitOfWork(context.Background()).UserRepository().Create(context.Background(), u))
	return u
}

func CreateChat(t *testing.T, f unitofwork.RepositoryFactory, userId uuid.UUID, title string) *entity.Chat {
	t.Helper()
	c := &entity.Chat{Id: uuid.New(), UserId: userId, Title: title, CreatedAt: time.Now()}
	require.NoError(t, f.NewUnitOfWork(context.Background()).ChatRepository().Create(context.Background(), c))
	return c
}

// CreateMessage appends a message at the given position.
func CreateMessage(t *testing.T, f unitofwork.RepositoryFactory, chatId uuid.UUID, position int, role entity.MessageRole, content string) *entity.ChatMessage {
	t.Helper()
	m := &entity.ChatMessage{
		Id:        uuid.New(),
		ChatId:    chatId,
		Position:  position,
		Role:      role,
		Content:   content,
		CreatedAt: time.Now(),
	}
	require.NoError(t, f.NewUnitOfWork(context.Background()).ChatMessageRepository().Create(context.Background(), m))
	return m
}
