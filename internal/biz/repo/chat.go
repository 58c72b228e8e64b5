package repo

import "context"

// ChatRepo resolves chat and sender metadata from the messaging platform.
// Every lookup is best-effort; callers must tolerate failures.
type ChatRepo interface {
	// GetChatTitle resolves the display title of a chat.
	GetChatTitle(ctx context.Context, chatID int64) (string, error)

	// GetSenderName resolves the display name of a message sender.
	GetSenderName(ctx context.Context, senderID int64) (string, error)

	// GetMuteState returns the chat's raw mute-until value. ok is false
	// when the platform reports no mute setting for the chat.
	GetMuteState(ctx context.Context, chatID int64) (muteUntil int, ok bool, err error)
}
