package forwarder

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const wecomTokenURL = "https://qyapi.weixin.qq.com/cgi-bin/gettoken"

// refreshMargin forces a refresh this long before the provider-reported
// expiry so a token never dies mid-send.
const refreshMargin = 5 * time.Minute

// defaultTokenTTL applies when the provider omits expires_in.
const defaultTokenTTL = 7200

// Provider error codes that signal a dead access token.
const (
	errCodeTokenInvalid = 40014
	errCodeTokenExpired = 42001
)

// tokenCache holds a WeCom application access token. The mutex guards the
// cached state only; it is not held across the exchange call, so two sends
// hitting an expired token may both refresh. The duplicate exchange is
// harmless and the last writer wins.
type tokenCache struct {
	corpID      string
	corpSecret  string
	http        *httpClient
	log         zerolog.Logger
	exchangeURL string
	now         func() time.Time

	mu        sync.Mutex
	value     string
	expiresAt time.Time
}

type tokenResponse struct {
	ErrCode     int    `json:"errcode"`
	ErrMsg      string `json:"errmsg"`
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func newTokenCache(corpID, corpSecret string, http *httpClient, log zerolog.Logger) *tokenCache {
	return &tokenCache{
		corpID:      corpID,
		corpSecret:  corpSecret,
		http:        http,
		log:         log,
		exchangeURL: wecomTokenURL,
		now:         time.Now,
	}
}

// token returns the cached access token, performing a fresh exchange when
// none is held or the held one is within refreshMargin of expiry. A failed
// exchange leaves the cached state untouched.
func (t *tokenCache) token(ctx context.Context) (string, error) {
	t.mu.Lock()
	if t.value != "" && t.now().Before(t.expiresAt.Add(-refreshMargin)) {
		value := t.value
		t.mu.Unlock()
		return value, nil
	}
	t.mu.Unlock()

	params := url.Values{}
	params.Set("corpid", t.corpID)
	params.Set("corpsecret", t.corpSecret)

	var resp tokenResponse
	if err := t.http.getJSON(ctx, t.exchangeURL, params, &resp); err != nil {
		return "", fmt.Errorf("token exchange: %w", err)
	}
	if resp.ErrCode != 0 {
		return "", fmt.Errorf("token exchange: errcode %d: %s", resp.ErrCode, resp.ErrMsg)
	}

	ttl := resp.ExpiresIn
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}

	t.mu.Lock()
	t.value = resp.AccessToken
	t.expiresAt = t.now().Add(time.Duration(ttl) * time.Second)
	expiresAt := t.expiresAt
	t.mu.Unlock()

	t.log.Info().Time("expires_at", expiresAt).Msg("access token refreshed")
	return resp.AccessToken, nil
}

// invalidate clears the cached token so the next call performs a fresh
// exchange.
func (t *tokenCache) invalidate() {
	t.mu.Lock()
	t.value = ""
	t.expiresAt = time.Time{}
	t.mu.Unlock()
}

// isAuthExpired reports whether a provider error code means the current
// access token is dead.
func isAuthExpired(code int) bool {
	return code == errCodeTokenInvalid || code == errCodeTokenExpired
}
