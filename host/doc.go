// Package host provides a runtime environment for a WASM build of the AIR
// interpreter.
//
// It abstracts the underlying WASM engine (wazero), manages the
// interpreter's lifecycle, and handles the low-level ABI interactions
// (guest memory allocation, pointer/length packing). Its sole product is
// an avm.CallFunc: the orchestrator in the root package stays agnostic of
// how the engine is reached.
package host
