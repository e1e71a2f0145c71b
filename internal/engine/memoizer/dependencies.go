package memoizer

import (
	"context"
	"runtime"

	"go.trai.ch/memo/internal/core/domain"
	"go.trai.ch/memo/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// collectDependencies reduces the opens observed by the tracer to a dependency
// list: normalized, deduplicated in first-seen order, relevant, and limited to
// files that still exist as regular files. Fingerprints are taken concurrently.
func collectDependencies(
	ctx context.Context,
	fingerprinter ports.Fingerprinter,
	filter *RelevanceFilter,
	opened []string,
) ([]domain.Dependency, error) {
	seen := make(map[string]struct{}, len(opened))
	candidates := make([]string, 0, len(opened))
	for _, p := range opened {
		path := normalize(p)
		if _, dup := seen[path]; dup {
			continue
		}
		seen[path] = struct{}{}
		if filter.IsRelevant(path) {
			candidates = append(candidates, path)
		}
	}

	snapshots := make([]domain.Dependency, len(candidates))
	regular := make([]bool, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, path := range candidates {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snapshots[i], regular[i] = fingerprinter.Snapshot(path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, zerr.Wrap(err, domain.ErrFingerprintFailed.Error())
	}

	deps := make([]domain.Dependency, 0, len(candidates))
	for i, ok := range regular {
		if ok {
			deps = append(deps, snapshots[i])
		}
	}
	return deps, nil
}
