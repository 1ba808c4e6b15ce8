package parser

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/adhocteam/sculpt/ast"
)

// ParseAll parses independent programs concurrently, at most
// opts.Concurrency at a time. The trees are returned in the order of srcs.
// The first failure cancels the remaining work and is returned wrapped with
// the index of the failing input.
func ParseAll(ctx context.Context, srcs []string, opts Options) ([]*ast.Main, error) {
	opts = opts.withDefaults()
	logger := opts.Logger
	logger.Debug("Parsing sources", "count", len(srcs), "concurrency", opts.Concurrency)

	trees := make([]*ast.Main, len(srcs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)

	for i, src := range srcs {
		if gctx.Err() != nil {
			break
		}
		i, src := i, src // per-iteration copies (go 1.21 loop semantics)
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tree, err := ParseWithOptions(src, opts)
			if err != nil {
				return fmt.Errorf("source #%d: %w", i, err)
			}
			trees[i] = tree
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	// the group context is cancelled by Wait, so check the caller's
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return trees, nil
}
