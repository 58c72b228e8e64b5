package forwarder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/voidmesh/tgrelay/internal/biz/domain"
)

func samplePayload() domain.ForwardPayload {
	return domain.ForwardPayload{
		ChatTitle: "Dev Group",
		Sender:    "Alice Zhang",
		Message:   "hello",
		ChatID:    100,
		MessageID: 42,
	}
}

func TestWeCom_Send(t *testing.T) {
	var got wecomMarkdownMsg
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Expected application/json, got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("Failed to decode request: %v", err)
		}
		w.Write([]byte(`{"errcode":0}`))
	}))
	defer server.Close()

	fwd := NewWeCom(server.URL, zerolog.Nop())
	if err := fwd.Send(context.Background(), samplePayload()); err != nil {
		t.Fatalf("Expected send to succeed, got %v", err)
	}

	if got.MsgType != "markdown" {
		t.Errorf("Expected msgtype markdown, got %q", got.MsgType)
	}
	if !strings.HasPrefix(got.Markdown.Content, "**Dev Group**\n") {
		t.Errorf("Expected bold chat title first, got %q", got.Markdown.Content)
	}
	if !strings.Contains(got.Markdown.Content, "hello") || !strings.Contains(got.Markdown.Content, "Alice Zhang") {
		t.Errorf("Expected message and sender in content, got %q", got.Markdown.Content)
	}
}

func TestWeCom_SendNon200(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	fwd := NewWeCom(server.URL, zerolog.Nop())
	if err := fwd.Send(context.Background(), samplePayload()); err == nil {
		t.Error("Expected non-200 status to fail the send")
	}
}

func TestWeCom_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	fwd := NewWeCom(server.URL, zerolog.Nop())
	if err := fwd.Send(context.Background(), samplePayload()); err == nil {
		t.Error("Expected transport failure to surface as an error")
	}
}

func TestWeCom_NotConfigured(t *testing.T) {
	fwd := NewWeCom("", zerolog.Nop())

	err := fwd.Send(context.Background(), samplePayload())
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", err)
	}
}
