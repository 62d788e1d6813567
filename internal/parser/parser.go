package parser

import (
	"context"
	"io"

	"jrep/internal/domain"
)

// Hooks are the lifecycle callbacks a parser drives
type Hooks interface {
	SessionStarted() error
	CaseStarted() error
	CaseDone(result domain.SpecResult) error
	SessionDone(ctx context.Context, done func()) error
}

// Parser turns a host's event stream into lifecycle hooks
type Parser interface {
	Feed(ctx context.Context, r io.Reader, hooks Hooks) error
}
