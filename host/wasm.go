package host

import (
	"context"
	"fmt"
)

const (
	// defaultInvokeExport is the interpreter entry point taking the
	// serialized argument array.
	defaultInvokeExport = "invoke"

	// allocateExport reserves guest linear memory for the argument text.
	allocateExport = "allocate"
)

// call writes the wire-argument text into guest memory, runs the invoke
// export, and reads back the wire-result text. The invoke export returns
// a packed u64: response pointer in the high 32 bits, length in the low.
func (i *Interpreter) call(ctx context.Context, args string) (string, error) {
	input := []byte(args)

	allocate := i.module.ExportedFunction(allocateExport)
	resAlloc, err := allocate.Call(ctx, uint64(len(input)))
	if err != nil {
		return "", fmt.Errorf("failed to allocate in guest: %w", err)
	}
	if len(resAlloc) == 0 {
		return "", fmt.Errorf("%s returned no results", allocateExport)
	}
	ptr := uint32(resAlloc[0])
	if !i.module.Memory().Write(ptr, input) {
		return "", fmt.Errorf("failed to write arguments to guest memory")
	}

	results, err := i.module.ExportedFunction(i.invokeName).Call(ctx, uint64(ptr), uint64(len(input)))
	if err != nil {
		return "", fmt.Errorf("interpreter invocation failed: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("%s returned no results", i.invokeName)
	}

	packed := results[0]
	respPtr := uint32(packed >> 32)
	respLen := uint32(packed)
	if respPtr == 0 || respLen == 0 {
		return "", fmt.Errorf("null response from interpreter")
	}
	data, ok := i.module.Memory().Read(respPtr, respLen)
	if !ok {
		return "", fmt.Errorf("failed to read response from guest memory")
	}

	// Copy out before guest memory can move under us.
	resp := make([]byte, respLen)
	copy(resp, data)

	i.logger.Debug("interpreter call completed",
		"args_len", len(input),
		"response_len", respLen)

	return string(resp), nil
}
