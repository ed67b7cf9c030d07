package host

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	avm "github.com/avm-dev/avm-sdk"
)

// Executor manages the lifecycle of interpreter WASM instances.
type Executor struct {
	runtime    wazero.Runtime
	logger     *slog.Logger
	invokeName string
}

// NewExecutor creates a new executor with the given options.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{
		logger:     slog.Default(),
		invokeName: defaultInvokeExport,
	}
	for _, opt := range opts {
		opt(e)
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	return e, nil
}

// Close releases resources held by the executor and every interpreter
// instance loaded through it.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}

// Interpreter is an instantiated AIR interpreter WASM module.
//
// The underlying engine keeps per-instance execution state, so an
// Interpreter must not serve overlapping invocations; serialize calls to
// its CallFunc.
type Interpreter struct {
	module     api.Module
	logger     *slog.Logger
	invokeName string
}

// LoadInterpreter instantiates an interpreter from its WASM binary and
// verifies the exports the call ABI needs.
func (e *Executor) LoadInterpreter(ctx context.Context, wasmBytes []byte) (*Interpreter, error) {
	mod, err := e.runtime.Instantiate(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to instantiate interpreter module: %w", err)
	}

	for _, name := range []string{e.invokeName, allocateExport} {
		if mod.ExportedFunction(name) == nil {
			_ = mod.Close(ctx)
			return nil, fmt.Errorf("interpreter module does not export %q", name)
		}
	}

	e.logger.Info("interpreter instantiated",
		"module", mod.Name(),
		"invoke_export", e.invokeName)

	return &Interpreter{
		module:     mod,
		logger:     e.logger,
		invokeName: e.invokeName,
	}, nil
}

// Close releases the interpreter instance.
func (i *Interpreter) Close(ctx context.Context) error {
	return i.module.Close(ctx)
}

// CallFunc adapts this instance into the call boundary shape the
// orchestrator expects.
func (i *Interpreter) CallFunc() avm.CallFunc {
	return i.call
}
