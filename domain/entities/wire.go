package entities

import (
	"encoding/json"
	"fmt"
)

// ByteArray is a byte buffer that crosses the wire as a JSON array of
// integers (0-255) rather than a base64 string. The interpreter transports
// all binary payloads as integer arrays, so the default []byte encoding
// would break the ABI.
type ByteArray []byte

// MarshalJSON encodes the buffer as a JSON integer array. A nil or empty
// buffer encodes as [].
func (b ByteArray) MarshalJSON() ([]byte, error) {
	buf := make([]byte, 0, len(b)*4+2)
	buf = append(buf, '[')
	for i, v := range b {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = appendUint8(buf, v)
	}
	buf = append(buf, ']')
	return buf, nil
}

// UnmarshalJSON decodes a JSON integer array, rejecting elements outside
// the 0-255 range.
func (b *ByteArray) UnmarshalJSON(data []byte) error {
	var ints []int64
	if err := json.Unmarshal(data, &ints); err != nil {
		return err
	}
	out := make([]byte, len(ints))
	for i, v := range ints {
		if v < 0 || v > 255 {
			return fmt.Errorf("byte array element %d out of range: %d", i, v)
		}
		out[i] = byte(v)
	}
	*b = out
	return nil
}

func appendUint8(buf []byte, v byte) []byte {
	if v >= 100 {
		buf = append(buf, '0'+v/100)
	}
	if v >= 10 {
		buf = append(buf, '0'+(v/10)%10)
	}
	return append(buf, '0'+v%10)
}

// ParamsWire is the JSON wire format for InvocationParams, using the
// interpreter's snake_case field names.
type ParamsWire struct {
	InitPeerID    string `json:"init_peer_id"`
	CurrentPeerID string `json:"current_peer_id"`
}

// CallResultWire is the JSON wire format for one entry of the keyed
// call-results map sent to the interpreter.
type CallResultWire struct {
	RetCode int32           `json:"ret_code"`
	Result  json.RawMessage `json:"result"`
}

// CallRequestWire is the JSON wire format of one decoded call-request map
// entry. Arguments and Tetraplets arrive JSON-encoded a second time and
// must be parsed again to reach their structured form.
type CallRequestWire struct {
	ServiceID    string `json:"service_id"`
	FunctionName string `json:"function_name"`
	Arguments    string `json:"arguments"`
	Tetraplets   string `json:"tetraplets"`
}

// InterpreterResultWire is the JSON wire format of the inner result object
// of an interpreter response. CallRequests holds the UTF-8 bytes of a
// JSON-encoded request map.
type InterpreterResultWire struct {
	RetCode      int32     `json:"ret_code"`
	ErrorMessage string    `json:"error_message"`
	Data         ByteArray `json:"data"`
	NextPeerPKs  []string  `json:"next_peer_pks"`
	CallRequests ByteArray `json:"call_requests"`
}

// ResponseWire is the JSON wire format of a full interpreter response.
// A non-empty Error means the engine itself rejected the call; it is
// unrelated to the script-level RetCode inside Result.
type ResponseWire struct {
	Error  string                `json:"error"`
	Result InterpreterResultWire `json:"result"`
}
