// Package wireformat implements the JSON wire codec between host-side
// typed values and the AIR interpreter's argument and response shapes.
// These encodings define the ABI contract with the interpreter and must
// remain stable: in particular, call requests and their arguments and
// tetraplets are JSON-encoded twice on the wire, and that double encoding
// is preserved exactly here.
//
// The codec is pure: no I/O, no state. Failures surface as typed errors
// from domain/errors carrying the offending raw text; converting them into
// a result value is the caller's job.
package wireformat

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/avm-dev/avm-sdk/domain/entities"
	sdkerrors "github.com/avm-dev/avm-sdk/domain/errors"
)

// EncodeArgs produces the JSON argument payload for one interpreter
// invocation: a fixed 5-element positional array of the AIR script text,
// the previous continuation data, the current data, the invocation
// parameters, and the keyed call-results map.
//
// Byte buffers cross the wire as integer arrays. The call-results map is
// itself JSON-encoded to text and shipped as the integer array of its
// UTF-8 bytes.
func EncodeArgs(air string, prevData, data []byte, params entities.InvocationParams, callResults entities.CallResultsArray) (string, error) {
	crPayload, err := EncodeCallResults(callResults)
	if err != nil {
		return "", err
	}

	args := [5]any{
		air,
		entities.ByteArray(prevData),
		entities.ByteArray(data),
		entities.ParamsWire{
			InitPeerID:    params.InitPeerID,
			CurrentPeerID: params.CurrentPeerID,
		},
		entities.ByteArray(crPayload),
	}

	out, err := json.Marshal(args)
	if err != nil {
		return "", &sdkerrors.SerializationError{What: "arguments array", Err: err}
	}
	return string(out), nil
}

// EncodeCallResults reduces an ordered call-results sequence to a map
// keyed by decimal call-site key and returns the UTF-8 bytes of its JSON
// encoding. An empty or nil sequence encodes to an empty object.
func EncodeCallResults(callResults entities.CallResultsArray) ([]byte, error) {
	m := make(map[string]entities.CallResultWire, len(callResults))
	for _, entry := range callResults {
		result, err := json.Marshal(entry.Result.Result)
		if err != nil {
			return nil, &sdkerrors.SerializationError{
				What: fmt.Sprintf("result of call %d", entry.Key),
				Err:  err,
			}
		}
		m[strconv.FormatUint(uint64(entry.Key), 10)] = entities.CallResultWire{
			RetCode: entry.Result.RetCode,
			Result:  result,
		}
	}

	payload, err := json.Marshal(m)
	if err != nil {
		return nil, &sdkerrors.SerializationError{What: "call results", Err: err}
	}
	return payload, nil
}

// DecodeCallResults is the inverse of EncodeCallResults. It exists so
// hosts (and interpreter test doubles) can inspect a payload on its way
// to the engine.
func DecodeCallResults(payload []byte) (map[uint32]entities.CallResult, error) {
	var m map[string]entities.CallResultWire
	if err := json.Unmarshal(payload, &m); err != nil {
		return nil, &sdkerrors.ResultParseError{Err: err, Raw: string(payload)}
	}

	out := make(map[uint32]entities.CallResult, len(m))
	for key, wire := range m {
		k, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, &sdkerrors.ResultParseError{Err: err, Raw: string(payload)}
		}
		var result any
		if err := json.Unmarshal(wire.Result, &result); err != nil {
			return nil, &sdkerrors.ResultParseError{Err: err, Raw: string(wire.Result)}
		}
		out[uint32(k)] = entities.CallResult{RetCode: wire.RetCode, Result: result}
	}
	return out, nil
}

// DecodeResponse turns the interpreter's raw JSON response text into an
// InterpreterResult.
//
// A non-empty top-level error field means the engine rejected the call and
// yields an EngineError; it is never confused with the script-level
// ret_code inside the result. The call_requests byte payload decodes to
// UTF-8 text; empty text means no outstanding requests (empty text is not
// valid JSON, so it is never parsed).
func DecodeResponse(raw string) (entities.InterpreterResult, error) {
	var resp entities.ResponseWire
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return entities.InterpreterResult{}, &sdkerrors.ResultParseError{Err: err, Raw: raw}
	}

	if resp.Error != "" {
		return entities.InterpreterResult{}, &sdkerrors.EngineError{Message: resp.Error}
	}

	requests, err := DecodeCallRequests(string(resp.Result.CallRequests))
	if err != nil {
		return entities.InterpreterResult{}, err
	}

	result := entities.InterpreterResult{
		RetCode:      resp.Result.RetCode,
		ErrorMessage: resp.Result.ErrorMessage,
		Data:         resp.Result.Data,
		NextPeerPKs:  resp.Result.NextPeerPKs,
		CallRequests: requests,
	}
	if result.Data == nil {
		result.Data = []byte{}
	}
	if result.NextPeerPKs == nil {
		result.NextPeerPKs = []string{}
	}
	return result, nil
}

// DecodeCallRequests parses the decoded call-requests text: a JSON object
// keyed by decimal call-site key, each entry carrying arguments and
// tetraplets as JSON-encoded strings that are parsed a second time.
// Entries come back in document order, not sorted.
func DecodeCallRequests(text string) ([]entities.CallRequestEntry, error) {
	entries := []entities.CallRequestEntry{}
	if text == "" {
		return entries, nil
	}

	// A streaming decoder keeps the interpreter's key order; unmarshalling
	// into a map would lose it.
	dec := json.NewDecoder(strings.NewReader(text))
	tok, err := dec.Token()
	if err != nil {
		return nil, &sdkerrors.CallRequestParseError{Err: err, Raw: text}
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, &sdkerrors.CallRequestParseError{
			Err: fmt.Errorf("expected a JSON object, got %v", tok),
			Raw: text,
		}
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, &sdkerrors.CallRequestParseError{Err: err, Raw: text}
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, &sdkerrors.CallRequestParseError{
				Err: fmt.Errorf("expected an object key, got %v", keyTok),
				Raw: text,
			}
		}

		k, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, &sdkerrors.CallRequestParseError{
				Err: fmt.Errorf("call-site key is not numeric: %w", err),
				Raw: text,
			}
		}

		var wire entities.CallRequestWire
		if err := dec.Decode(&wire); err != nil {
			return nil, &sdkerrors.CallRequestParseError{Err: err, Raw: text}
		}

		var arguments any
		if err := json.Unmarshal([]byte(wire.Arguments), &arguments); err != nil {
			return nil, &sdkerrors.CallRequestParseError{
				Err: err, Field: "arguments", Key: key, Raw: wire.Arguments,
			}
		}
		var tetraplets any
		if err := json.Unmarshal([]byte(wire.Tetraplets), &tetraplets); err != nil {
			return nil, &sdkerrors.CallRequestParseError{
				Err: err, Field: "tetraplets", Key: key, Raw: wire.Tetraplets,
			}
		}

		entries = append(entries, entities.CallRequestEntry{
			Key: uint32(k),
			Request: entities.CallRequest{
				ServiceID:    wire.ServiceID,
				FunctionName: wire.FunctionName,
				Arguments:    arguments,
				Tetraplets:   tetraplets,
			},
		})
	}

	if _, err := dec.Token(); err != nil {
		return nil, &sdkerrors.CallRequestParseError{Err: err, Raw: text}
	}
	return entries, nil
}
