package strace

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/memo/internal/adapters/logger"
	"go.trai.ch/memo/internal/adapters/shell"
	"go.trai.ch/memo/internal/core/ports"
)

// NodeID is the unique identifier for the strace tracer Graft node.
const NodeID graft.ID = "adapter.file_tracer"

func init() {
	graft.Register(graft.Node[ports.FileTracer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.FileTracer, error) {
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(executor, log), nil
		},
	})
}
