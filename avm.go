// Package avm is a marshalling adapter between a host application and an
// external AIR interpreter engine. It translates host-side invocation
// requests into the engine's wire format, invokes the engine through an
// opaque call function, and translates the JSON response back into a
// structured result, including any pending service calls the script still
// needs resolved.
//
// The adapter is stateless: each invocation is independent, and the host
// owns threading the opaque continuation data from one invocation's output
// into the next invocation's prevData. If a host issues overlapping
// invocations against the same engine instance, serializing them is the
// host's responsibility.
package avm

import (
	"context"
	"fmt"

	"github.com/avm-dev/avm-sdk/domain/entities"
	sdkerrors "github.com/avm-dev/avm-sdk/domain/errors"
	"github.com/avm-dev/avm-sdk/wireformat"
)

// failureMessagePrefix prefixes every adapter-level failure message, so
// hosts can tell adapter failures from interpreter-reported ones.
const failureMessagePrefix = "marine-js call failed, "

// CallFunc is the opaque call boundary into the interpreter engine: it
// maps wire-argument text to wire-result text. It is the sole blocking
// point of an invocation; cancellation and timeouts are the host's to
// implement through the context.
type CallFunc func(ctx context.Context, args string) (string, error)

// Invoke runs one interpreter invocation: serialize the inputs, call the
// engine, deserialize the response.
//
// Invoke never fails: any error anywhere in the sequence (serialization,
// call function error or panic, deserialization, engine-reported error)
// collapses into a sentinel result with RetCode set to
// entities.AdapterFailureRetCode and ErrorMessage describing the failure.
// Callers consume results, never errors.
func Invoke(ctx context.Context, call CallFunc, air string, prevData, data []byte, params entities.InvocationParams, callResults entities.CallResultsArray) (res entities.InterpreterResult) {
	defer func() {
		if r := recover(); r != nil {
			res = failureResult(&sdkerrors.CallBoundaryError{
				Err: fmt.Errorf("panic: %v", r),
			})
		}
	}()

	args, err := wireformat.EncodeArgs(air, prevData, data, params, callResults)
	if err != nil {
		return failureResult(err)
	}

	raw, err := call(ctx, args)
	if err != nil {
		return failureResult(&sdkerrors.CallBoundaryError{Err: err})
	}

	result, err := wireformat.DecodeResponse(raw)
	if err != nil {
		return failureResult(err)
	}
	return result
}

// failureResult builds the sentinel InterpreterResult every failure path
// collapses into. The shape is always structurally valid: empty data, no
// peers, no requests.
func failureResult(err error) entities.InterpreterResult {
	return entities.InterpreterResult{
		RetCode:      entities.AdapterFailureRetCode,
		ErrorMessage: failureMessagePrefix + err.Error(),
		Data:         []byte{},
		NextPeerPKs:  []string{},
		CallRequests: []entities.CallRequestEntry{},
	}
}
