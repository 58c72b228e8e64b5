package forwarder

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/voidmesh/tgrelay/internal/biz/domain"
)

// WeCom posts markdown messages to a WeCom group-robot webhook.
type WeCom struct {
	webhookURL string
	http       *httpClient
	log        zerolog.Logger
}

type wecomMarkdownMsg struct {
	MsgType  string        `json:"msgtype"`
	Markdown wecomMarkdown `json:"markdown"`
}

type wecomMarkdown struct {
	Content string `json:"content"`
}

// NewWeCom creates the group-robot webhook variant. A missing webhook URL
// makes the forwarder inert: every Send fails without network I/O.
func NewWeCom(webhookURL string, log zerolog.Logger) *WeCom {
	if webhookURL == "" {
		log.Error().Msg("WECOM_WEBHOOK_URL is not set")
	}
	return &WeCom{
		webhookURL: webhookURL,
		http:       newHTTPClient(),
		log:        log,
	}
}

// Name returns the backend key.
func (f *WeCom) Name() string { return TypeWeCom }

// Send posts the payload as a markdown envelope.
func (f *WeCom) Send(ctx context.Context, p domain.ForwardPayload) error {
	if f.webhookURL == "" {
		return ErrNotConfigured
	}

	msg := wecomMarkdownMsg{
		MsgType:  "markdown",
		Markdown: wecomMarkdown{Content: formatText(p, true)},
	}
	if _, err := f.http.postJSON(ctx, f.webhookURL, msg, nil); err != nil {
		return fmt.Errorf("wecom webhook: %w", err)
	}
	return nil
}
