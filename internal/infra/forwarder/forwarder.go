// Package forwarder implements the notification backends a relayed message
// can be delivered to, selected by a configuration key.
package forwarder

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/voidmesh/tgrelay/internal/biz/domain"
	"github.com/voidmesh/tgrelay/internal/biz/repo"
	"github.com/voidmesh/tgrelay/internal/conf"
)

// Backend keys accepted by New.
const (
	TypeWeCom    = "wecom"
	TypeWeComApp = "wecom-app"
	TypeFeishu   = "feishu"
	TypeCustom   = "custom"
)

// ErrNotConfigured is returned by Send when the variant was constructed
// without its required settings. No network I/O is attempted.
var ErrNotConfigured = errors.New("forwarder not configured")

// New creates the forwarder selected by cfg.Type. The key is
// case-insensitive; an unknown key is a startup error.
func New(cfg conf.ForwarderConfig, log zerolog.Logger) (repo.Forwarder, error) {
	switch strings.ToLower(cfg.Type) {
	case TypeWeCom:
		return NewWeCom(cfg.WeComWebhookURL, log), nil
	case TypeWeComApp:
		return NewWeComApp(cfg, log), nil
	case TypeFeishu:
		return NewFeishu(cfg.FeishuWebhookURL, log), nil
	case TypeCustom:
		return NewCustom(cfg, log), nil
	default:
		return nil, fmt.Errorf("unsupported forwarder type: %q", cfg.Type)
	}
}

// formatText renders the payload in the layout shared by the WeCom and
// Feishu variants. boldTitle wraps the chat title in markdown bold.
func formatText(p domain.ForwardPayload, boldTitle bool) string {
	title := p.ChatTitle
	if boldTitle {
		title = "**" + title + "**"
	}
	return title + "\n消息: " + p.Message + "\n发送者: " + p.Sender
}
