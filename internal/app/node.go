package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/memo/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/adapters/console"   //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/adapters/strace"    //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/memo/internal/core/ports"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			cas.NodeID,
			shell.NodeID,
			strace.NodeID,
			console.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	stores, err := graft.Dep[ports.StoreOpener](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	fileTracer, err := graft.Dep[ports.FileTracer](ctx)
	if err != nil {
		return nil, err
	}

	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	watchers, err := graft.Dep[ports.WatcherFactory](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, stores, executor, fileTracer, reporter, log, tracer, watchers), nil
}
