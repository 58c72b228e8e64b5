package forwarder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/voidmesh/tgrelay/internal/biz/domain"
	"github.com/voidmesh/tgrelay/internal/conf"
)

const wecomSendURL = "https://qyapi.weixin.qq.com/cgi-bin/message/send"

// WeComApp sends messages through a WeCom application, authenticating each
// send with a cached access token.
type WeComApp struct {
	agentID    int
	toUser     string
	configured bool
	tokens     *tokenCache
	http       *httpClient
	log        zerolog.Logger
	sendURL    string
}

type wecomAppMsg struct {
	ToUser               string       `json:"touser"`
	MsgType              string       `json:"msgtype"`
	AgentID              int          `json:"agentid"`
	Text                 wecomAppText `json:"text"`
	Safe                 int          `json:"safe"`
	EnableIDTrans        int          `json:"enable_id_trans"`
	EnableDuplicateCheck int          `json:"enable_duplicate_check"`
}

type wecomAppText struct {
	Content string `json:"content"`
}

type wecomAppResponse struct {
	ErrCode int    `json:"errcode"`
	ErrMsg  string `json:"errmsg"`
}

// NewWeComApp creates the application variant. Missing corp settings make
// the forwarder inert: every Send fails without network I/O.
func NewWeComApp(cfg conf.ForwarderConfig, log zerolog.Logger) *WeComApp {
	configured := cfg.WeComCorpID != "" && cfg.WeComCorpSecret != "" && cfg.WeComAgentID != 0
	if !configured {
		log.Error().Msg("WECOM_CORPID, WECOM_CORPSECRET and WECOM_AGENTID are required for the wecom-app forwarder")
	}

	httpc := newHTTPClient()
	return &WeComApp{
		agentID:    cfg.WeComAgentID,
		toUser:     cfg.WeComToUser,
		configured: configured,
		tokens:     newTokenCache(cfg.WeComCorpID, cfg.WeComCorpSecret, httpc, log),
		http:       httpc,
		log:        log,
		sendURL:    wecomSendURL,
	}
}

// Name returns the backend key.
func (f *WeComApp) Name() string { return TypeWeComApp }

// Send obtains an access token and posts a text envelope to the send
// endpoint. Provider codes signalling a dead token invalidate the cache so
// the next send re-authenticates; every other provider error is just a
// failed send.
func (f *WeComApp) Send(ctx context.Context, p domain.ForwardPayload) error {
	if !f.configured {
		return ErrNotConfigured
	}

	token, err := f.tokens.token(ctx)
	if err != nil {
		return err
	}

	msg := wecomAppMsg{
		ToUser:  f.toUser,
		MsgType: "text",
		AgentID: f.agentID,
		Text:    wecomAppText{Content: formatText(p, false)},
	}

	body, err := f.http.postJSON(ctx, f.sendURL+"?access_token="+url.QueryEscape(token), msg, nil)
	if err != nil {
		return fmt.Errorf("wecom app send: %w", err)
	}

	var resp wecomAppResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return fmt.Errorf("wecom app send: decode response: %w", err)
	}
	if resp.ErrCode != 0 {
		if isAuthExpired(resp.ErrCode) {
			f.tokens.invalidate()
		}
		return fmt.Errorf("wecom app send: errcode %d: %s", resp.ErrCode, resp.ErrMsg)
	}
	return nil
}
