// Package telegram maintains the authenticated user session the relay
// consumes events from.
package telegram

import (
	"context"
	"fmt"
	"sync"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"
	"github.com/rs/zerolog"

	"github.com/voidmesh/tgrelay/internal/biz/domain"
)

// Handler is the callback invoked for every inbound message event.
type Handler func(ctx context.Context, ev domain.Event)

// Client wraps the MTProto client: it turns raw updates into domain events
// and answers metadata lookups for chats and senders. Entities are cached
// from the update stream, the way the official clients learn about peers.
type Client struct {
	client  *telegram.Client
	api     *tg.Client
	handler Handler
	log     zerolog.Logger

	mu       sync.RWMutex
	users    map[int64]*tg.User
	chats    map[int64]*tg.Chat
	channels map[int64]*tg.Channel
}

// NewClient creates a Telegram client backed by the given session storage.
func NewClient(apiID int, apiHash string, storage session.Storage, log zerolog.Logger) *Client {
	c := &Client{
		log:      log,
		users:    make(map[int64]*tg.User),
		chats:    make(map[int64]*tg.Chat),
		channels: make(map[int64]*tg.Channel),
	}

	dispatcher := tg.NewUpdateDispatcher()
	dispatcher.OnNewMessage(func(ctx context.Context, e tg.Entities, u *tg.UpdateNewMessage) error {
		c.remember(e)
		// Handle asynchronously so a slow backend never stalls the update
		// loop. Events are independent; ordering is not guaranteed.
		go c.handleMessage(ctx, u.Message)
		return nil
	})
	dispatcher.OnNewChannelMessage(func(ctx context.Context, e tg.Entities, u *tg.UpdateNewChannelMessage) error {
		c.remember(e)
		go c.handleMessage(ctx, u.Message)
		return nil
	})

	c.client = telegram.NewClient(apiID, apiHash, telegram.Options{
		SessionStorage: storage,
		UpdateHandler:  dispatcher,
	})
	c.api = c.client.API()
	return c
}

// OnMessage sets the message handler.
func (c *Client) OnMessage(handler Handler) {
	c.handler = handler
}

// Run connects, verifies that a persisted login exists and blocks consuming
// updates until ctx is canceled.
func (c *Client) Run(ctx context.Context) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		status, err := c.client.Auth().Status(ctx)
		if err != nil {
			return fmt.Errorf("auth status: %w", err)
		}
		if !status.Authorized {
			return fmt.Errorf("no authorized session, run the login command first")
		}

		self, err := c.client.Self(ctx)
		if err != nil {
			return fmt.Errorf("fetch self: %w", err)
		}
		c.log.Info().Int64("user_id", self.ID).Str("username", self.Username).Msg("logged in to Telegram")

		<-ctx.Done()
		return ctx.Err()
	})
}

// handleMessage converts a raw update into a domain event. Service messages
// are passed through flagged so the filter can drop them.
func (c *Client) handleMessage(ctx context.Context, msg tg.MessageClass) {
	if c.handler == nil {
		return
	}

	switch m := msg.(type) {
	case *tg.Message:
		from, _ := m.GetFromID()
		c.handler(ctx, domain.Event{
			ChatID:    peerID(m.PeerID),
			MessageID: m.ID,
			SenderID:  senderID(from, m.PeerID),
			Text:      m.Message,
			Out:       m.Out,
		})
	case *tg.MessageService:
		c.handler(ctx, domain.Event{
			ChatID:    peerID(m.PeerID),
			MessageID: m.ID,
			Service:   true,
		})
	}
}

// remember merges the entities attached to an update into the local caches.
func (c *Client) remember(e tg.Entities) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for id, user := range e.Users {
		c.users[id] = user
	}
	for id, chat := range e.Chats {
		c.chats[id] = chat
	}
	for id, channel := range e.Channels {
		c.channels[id] = channel
	}
}

// GetChatTitle resolves the display title of a chat from the entities seen
// on the update stream.
func (c *Client) GetChatTitle(ctx context.Context, chatID int64) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if channel, ok := c.channels[chatID]; ok {
		return channel.Title, nil
	}
	if chat, ok := c.chats[chatID]; ok {
		return chat.Title, nil
	}
	if user, ok := c.users[chatID]; ok {
		return displayName(user), nil
	}
	return "", fmt.Errorf("chat %d not seen on this session", chatID)
}

// GetSenderName resolves the display name of a message sender.
func (c *Client) GetSenderName(ctx context.Context, senderID int64) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if user, ok := c.users[senderID]; ok {
		return displayName(user), nil
	}
	return "", fmt.Errorf("user %d not seen on this session", senderID)
}

// GetMuteState fetches the chat's notify settings. ok is false when the
// dialog has no mute-until value set.
func (c *Client) GetMuteState(ctx context.Context, chatID int64) (int, bool, error) {
	peer, err := c.inputNotifyPeer(chatID)
	if err != nil {
		return 0, false, err
	}

	settings, err := c.api.AccountGetNotifySettings(ctx, peer)
	if err != nil {
		return 0, false, fmt.Errorf("get notify settings: %w", err)
	}

	muteUntil, ok := settings.GetMuteUntil()
	return muteUntil, ok, nil
}

func (c *Client) inputNotifyPeer(chatID int64) (tg.InputNotifyPeerClass, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if channel, ok := c.channels[chatID]; ok {
		return &tg.InputNotifyPeer{Peer: channel.AsInputPeer()}, nil
	}
	if _, ok := c.chats[chatID]; ok {
		return &tg.InputNotifyPeer{Peer: &tg.InputPeerChat{ChatID: chatID}}, nil
	}
	if user, ok := c.users[chatID]; ok {
		return &tg.InputNotifyPeer{Peer: user.AsInputPeer()}, nil
	}
	return nil, fmt.Errorf("chat %d not seen on this session", chatID)
}

// peerID extracts the bare chat identifier from a peer.
func peerID(peer tg.PeerClass) int64 {
	switch p := peer.(type) {
	case *tg.PeerUser:
		return p.UserID
	case *tg.PeerChat:
		return p.ChatID
	case *tg.PeerChannel:
		return p.ChannelID
	}
	return 0
}

// senderID resolves the sending user. Private chats omit from_id on
// incoming messages; there the peer user is the sender. Channel posts have
// no user sender and yield 0.
func senderID(from, peer tg.PeerClass) int64 {
	if from != nil {
		if u, ok := from.(*tg.PeerUser); ok {
			return u.UserID
		}
		return 0
	}
	if u, ok := peer.(*tg.PeerUser); ok {
		return u.UserID
	}
	return 0
}

// displayName concatenates first and last name the way the official clients
// render users.
func displayName(u *tg.User) string {
	if u.LastName != "" {
		return u.FirstName + " " + u.LastName
	}
	if u.FirstName == "" {
		return "Unknown"
	}
	return u.FirstName
}
