package forwarder

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/voidmesh/tgrelay/internal/biz/domain"
)

// Feishu posts text messages to a Feishu custom-bot webhook.
type Feishu struct {
	webhookURL string
	http       *httpClient
	log        zerolog.Logger
}

type feishuTextMsg struct {
	MsgType string            `json:"msg_type"`
	Content feishuTextContent `json:"content"`
}

type feishuTextContent struct {
	Text string `json:"text"`
}

// NewFeishu creates the Feishu webhook variant. A missing webhook URL makes
// the forwarder inert: every Send fails without network I/O.
func NewFeishu(webhookURL string, log zerolog.Logger) *Feishu {
	if webhookURL == "" {
		log.Error().Msg("FEISHU_WEBHOOK_URL is not set")
	}
	return &Feishu{
		webhookURL: webhookURL,
		http:       newHTTPClient(),
		log:        log,
	}
}

// Name returns the backend key.
func (f *Feishu) Name() string { return TypeFeishu }

// Send posts the payload as a text envelope.
func (f *Feishu) Send(ctx context.Context, p domain.ForwardPayload) error {
	if f.webhookURL == "" {
		return ErrNotConfigured
	}

	msg := feishuTextMsg{
		MsgType: "text",
		Content: feishuTextContent{Text: formatText(p, true)},
	}
	if _, err := f.http.postJSON(ctx, f.webhookURL, msg, nil); err != nil {
		return fmt.Errorf("feishu webhook: %w", err)
	}
	return nil
}
