package forwarder

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/voidmesh/tgrelay/internal/biz/domain"
	"github.com/voidmesh/tgrelay/internal/conf"
)

// Custom forwards the raw payload to a user-defined HTTP endpoint. Content
// shaping is entirely the receiving side's concern.
type Custom struct {
	apiURL  string
	method  string
	headers map[string]string
	http    *httpClient
	log     zerolog.Logger
}

// NewCustom creates the generic HTTP variant. A missing API URL makes the
// forwarder inert: every Send fails without network I/O.
func NewCustom(cfg conf.ForwarderConfig, log zerolog.Logger) *Custom {
	if cfg.CustomAPIURL == "" {
		log.Error().Msg("CUSTOM_API_URL is not set")
	}

	method := strings.ToUpper(cfg.CustomAPIMethod)
	if method == "" {
		method = http.MethodPost
	}

	return &Custom{
		apiURL:  cfg.CustomAPIURL,
		method:  method,
		headers: parseHeaders(cfg.CustomAPIHeaders),
		http:    newHTTPClient(),
		log:     log,
	}
}

// parseHeaders parses a custom header string, format: Key1:Value1,Key2:Value2.
func parseHeaders(s string) map[string]string {
	headers := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		key, value, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return headers
}

// Name returns the backend key.
func (f *Custom) Name() string { return TypeCustom }

// Send forwards the payload fields as-is.
func (f *Custom) Send(ctx context.Context, p domain.ForwardPayload) error {
	if f.apiURL == "" {
		return ErrNotConfigured
	}

	if _, err := f.http.do(ctx, f.method, f.apiURL, p, f.headers); err != nil {
		return fmt.Errorf("custom api: %w", err)
	}
	return nil
}
