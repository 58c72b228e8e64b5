package data

import (
	"context"

	"github.com/voidmesh/tgrelay/internal/infra/telegram"
)

// TelegramRepo adapts the Telegram client to the chat repository interface.
type TelegramRepo struct {
	client *telegram.Client
}

// NewTelegramRepo creates a new Telegram repository.
func NewTelegramRepo(client *telegram.Client) *TelegramRepo {
	return &TelegramRepo{client: client}
}

// GetChatTitle resolves the display title of a chat.
func (r *TelegramRepo) GetChatTitle(ctx context.Context, chatID int64) (string, error) {
	return r.client.GetChatTitle(ctx, chatID)
}

// GetSenderName resolves the display name of a message sender.
func (r *TelegramRepo) GetSenderName(ctx context.Context, senderID int64) (string, error) {
	return r.client.GetSenderName(ctx, senderID)
}

// GetMuteState returns the chat's raw mute-until value.
func (r *TelegramRepo) GetMuteState(ctx context.Context, chatID int64) (int, bool, error) {
	return r.client.GetMuteState(ctx, chatID)
}
