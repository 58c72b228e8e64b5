package forwarder

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/voidmesh/tgrelay/internal/conf"
)

func TestNew_SelectsVariantByKey(t *testing.T) {
	cases := map[string]string{
		"wecom":     TypeWeCom,
		"wecom-app": TypeWeComApp,
		"feishu":    TypeFeishu,
		"custom":    TypeCustom,
	}

	for key, want := range cases {
		fwd, err := New(conf.ForwarderConfig{Type: key}, zerolog.Nop())
		if err != nil {
			t.Fatalf("Expected %q to be accepted, got %v", key, err)
		}
		if fwd.Name() != want {
			t.Errorf("Expected %q forwarder for key %q, got %q", want, key, fwd.Name())
		}
	}
}

func TestNew_KeyIsCaseInsensitive(t *testing.T) {
	fwd, err := New(conf.ForwarderConfig{Type: "WeCom-App"}, zerolog.Nop())
	if err != nil {
		t.Fatalf("Expected mixed-case key to be accepted, got %v", err)
	}
	if fwd.Name() != TypeWeComApp {
		t.Errorf("Expected wecom-app forwarder, got %q", fwd.Name())
	}
}

func TestNew_UnknownKey(t *testing.T) {
	if _, err := New(conf.ForwarderConfig{Type: "slack"}, zerolog.Nop()); err == nil {
		t.Error("Expected unknown forwarder type to fail")
	}
}

func TestFormatText(t *testing.T) {
	p := samplePayload()

	bold := formatText(p, true)
	if bold != "**Dev Group**\n消息: hello\n发送者: Alice Zhang" {
		t.Errorf("Unexpected bold layout: %q", bold)
	}

	plain := formatText(p, false)
	if plain != "Dev Group\n消息: hello\n发送者: Alice Zhang" {
		t.Errorf("Unexpected plain layout: %q", plain)
	}
}
