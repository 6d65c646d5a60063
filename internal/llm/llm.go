// Package llm talks to the external text-understanding service and
// wraps it in deterministic fallbacks. Nothing in this package ever
// surfaces a service error to callers: every operation has a defined
// fallback value and degrades to it silently.
package llm

import (
	"context"
	"errors"
)

// Completer is the single capability the pipeline needs from the
// external service: a role-tagged instruction pair in, one text blob
// out. The live implementation is Gemini; tests use scripted fakes and
// Offline provides a no-network stub.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// ErrUnavailable reports that no classification service is configured.
var ErrUnavailable = errors.New("classification service unavailable")

// Offline is a Completer with no backing service. Every call fails
// with ErrUnavailable, which drives each call site onto its
// deterministic fallback. Used when no API key is configured.
type Offline struct{}

func (Offline) Complete(ctx context.Context, system, user string) (string, error) {
	return "", ErrUnavailable
}
