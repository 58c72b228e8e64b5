package repo

import (
	"context"

	"github.com/voidmesh/tgrelay/internal/biz/domain"
)

// Forwarder delivers a payload to one external notification backend.
type Forwarder interface {
	// Name returns the backend key the forwarder was built from.
	Name() string

	// Send delivers the payload. A non-nil error means the backend did not
	// accept the message; the relay logs it and moves on, no retries.
	Send(ctx context.Context, p domain.ForwardPayload) error
}
