package parser

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/adhocteam/sculpt/ast"
)

// Options configures ParseWithOptions and ParseAll. The zero value is ready
// to use.
type Options struct {
	// MaxSourceSize caps the length in bytes of each input. Zero means no
	// limit.
	MaxSourceSize int
	// Logger receives debug logs about each parse. Defaults to
	// slog.Default().
	Logger *slog.Logger
	// Concurrency bounds the number of inputs ParseAll parses at once.
	// Zero means runtime.GOMAXPROCS(0).
	Concurrency int
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	if o.Concurrency <= 0 {
		o.Concurrency = runtime.GOMAXPROCS(0)
	}
	return o
}

// ParseWithOptions is like Parse, but rejects inputs over the configured
// size limit and logs the outcome.
func ParseWithOptions(src string, opts Options) (*ast.Main, error) {
	opts = opts.withDefaults()
	logger := opts.Logger

	if opts.MaxSourceSize > 0 && len(src) > opts.MaxSourceSize {
		return nil, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrSourceTooLarge, len(src), opts.MaxSourceSize)
	}

	logger.Debug("Parsing", "len", len(src))
	tree, err := Parse(src)
	if err != nil {
		var se *SyntaxError
		if errors.As(err, &se) {
			logger.Debug("Syntax error", "offset", se.Offset, "line", se.Line, "column", se.Column, "context", se.Context)
		}
		return nil, err
	}
	logger.Debug("Parsed", "statements", len(tree.Statements))

	return tree, nil
}
