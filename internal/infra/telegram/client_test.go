package telegram

import (
	"context"
	"testing"

	"github.com/gotd/td/tg"
)

func newTestClient() *Client {
	return &Client{
		users:    make(map[int64]*tg.User),
		chats:    make(map[int64]*tg.Chat),
		channels: make(map[int64]*tg.Channel),
	}
}

func TestPeerID(t *testing.T) {
	if got := peerID(&tg.PeerUser{UserID: 7}); got != 7 {
		t.Errorf("Expected 7, got %d", got)
	}
	if got := peerID(&tg.PeerChat{ChatID: 8}); got != 8 {
		t.Errorf("Expected 8, got %d", got)
	}
	if got := peerID(&tg.PeerChannel{ChannelID: 9}); got != 9 {
		t.Errorf("Expected 9, got %d", got)
	}
}

func TestSenderID_FromUser(t *testing.T) {
	got := senderID(&tg.PeerUser{UserID: 7}, &tg.PeerChannel{ChannelID: 9})
	if got != 7 {
		t.Errorf("Expected sender 7, got %d", got)
	}
}

func TestSenderID_PrivateChatFallsBackToPeer(t *testing.T) {
	got := senderID(nil, &tg.PeerUser{UserID: 7})
	if got != 7 {
		t.Errorf("Expected peer user as sender, got %d", got)
	}
}

func TestSenderID_ChannelPostHasNoUserSender(t *testing.T) {
	if got := senderID(&tg.PeerChannel{ChannelID: 9}, &tg.PeerChannel{ChannelID: 9}); got != 0 {
		t.Errorf("Expected 0 for channel posts, got %d", got)
	}
	if got := senderID(nil, &tg.PeerChat{ChatID: 8}); got != 0 {
		t.Errorf("Expected 0 for group messages without from_id, got %d", got)
	}
}

func TestDisplayName(t *testing.T) {
	if got := displayName(&tg.User{FirstName: "Alice", LastName: "Zhang"}); got != "Alice Zhang" {
		t.Errorf("Expected Alice Zhang, got %q", got)
	}
	if got := displayName(&tg.User{FirstName: "Alice"}); got != "Alice" {
		t.Errorf("Expected Alice, got %q", got)
	}
	if got := displayName(&tg.User{}); got != "Unknown" {
		t.Errorf("Expected Unknown for a nameless user, got %q", got)
	}
}

func TestClient_GetChatTitle_FromEntities(t *testing.T) {
	c := newTestClient()
	c.remember(tg.Entities{
		Users:    map[int64]*tg.User{7: {ID: 7, FirstName: "Alice", LastName: "Zhang"}},
		Chats:    map[int64]*tg.Chat{8: {ID: 8, Title: "Family"}},
		Channels: map[int64]*tg.Channel{9: {ID: 9, Title: "News"}},
	})

	cases := map[int64]string{
		7: "Alice Zhang",
		8: "Family",
		9: "News",
	}
	for id, want := range cases {
		got, err := c.GetChatTitle(context.Background(), id)
		if err != nil {
			t.Fatalf("GetChatTitle(%d) failed: %v", id, err)
		}
		if got != want {
			t.Errorf("Expected title %q for chat %d, got %q", want, id, got)
		}
	}
}

func TestClient_GetChatTitle_UnseenChat(t *testing.T) {
	c := newTestClient()

	if _, err := c.GetChatTitle(context.Background(), 12345); err == nil {
		t.Error("Expected an error for a chat never seen on the session")
	}
}

func TestClient_GetSenderName(t *testing.T) {
	c := newTestClient()
	c.remember(tg.Entities{
		Users: map[int64]*tg.User{7: {ID: 7, FirstName: "Alice"}},
	})

	got, err := c.GetSenderName(context.Background(), 7)
	if err != nil {
		t.Fatalf("GetSenderName failed: %v", err)
	}
	if got != "Alice" {
		t.Errorf("Expected Alice, got %q", got)
	}

	if _, err := c.GetSenderName(context.Background(), 99); err == nil {
		t.Error("Expected an error for an unseen user")
	}
}
