package avm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avm-dev/avm-sdk/domain/entities"
	"github.com/avm-dev/avm-sdk/internal/testutil"
)

var testParams = entities.InvocationParams{InitPeerID: "P1", CurrentPeerID: "P1"}

// echoCall returns a fixed response regardless of the arguments.
func echoCall(response string) CallFunc {
	return func(ctx context.Context, args string) (string, error) {
		return response, nil
	}
}

func assertAdapterFailure(t *testing.T, res entities.InterpreterResult) {
	t.Helper()

	assert.Equal(t, entities.AdapterFailureRetCode, res.RetCode)
	assert.Contains(t, res.ErrorMessage, "marine-js call failed, ")
	assert.NotNil(t, res.Data)
	assert.NotNil(t, res.NextPeerPKs)
	assert.NotNil(t, res.CallRequests)
}

func TestInvoke_EndToEnd(t *testing.T) {
	var seenArgs string
	call := func(ctx context.Context, args string) (string, error) {
		seenArgs = args
		return `{"error":"","result":{"ret_code":0,"error_message":"","data":[],"next_peer_pks":[],"call_requests":[]}}`, nil
	}

	res := Invoke(context.Background(), call, "(null)", []byte{}, []byte{}, testParams, entities.CallResultsArray{})

	testutil.AssertJSONEqual(t,
		`["(null)",[],[],{"init_peer_id":"P1","current_peer_id":"P1"},[123,125]]`,
		seenArgs)
	assert.Equal(t, entities.InterpreterResult{
		RetCode:      0,
		ErrorMessage: "",
		Data:         []byte{},
		NextPeerPKs:  []string{},
		CallRequests: []entities.CallRequestEntry{},
	}, res)
}

func TestInvoke_DecodesCallRequests(t *testing.T) {
	requestsText := `{"0":{"service_id":"srv","function_name":"fn","arguments":"[1,2]","tetraplets":"[]"}}`
	response := fmt.Sprintf(
		`{"error":"","result":{"ret_code":0,"error_message":"","data":[],"next_peer_pks":[],"call_requests":%s}}`,
		testutil.MustMarshal(t, entities.ByteArray(requestsText)))

	res := Invoke(context.Background(), echoCall(response), "(null)", nil, nil, testParams, nil)

	require.Equal(t, int32(0), res.RetCode, res.ErrorMessage)
	require.Len(t, res.CallRequests, 1)
	entry := res.CallRequests[0]
	assert.Equal(t, uint32(0), entry.Key)
	assert.Equal(t, "srv", entry.Request.ServiceID)
	assert.Equal(t, "fn", entry.Request.FunctionName)
	assert.Equal(t, []any{float64(1), float64(2)}, entry.Request.Arguments)
	assert.Equal(t, []any{}, entry.Request.Tetraplets)
}

func TestInvoke_EngineError(t *testing.T) {
	res := Invoke(context.Background(),
		echoCall(`{"error":"linking failed","result":{}}`),
		"(null)", nil, nil, testParams, nil)

	assertAdapterFailure(t, res)
	assert.Contains(t, res.ErrorMessage, "linking failed")
}

func TestInvoke_UnparseableResponse(t *testing.T) {
	res := Invoke(context.Background(), echoCall("<html>502</html>"),
		"(null)", nil, nil, testParams, nil)

	assertAdapterFailure(t, res)
	assert.Contains(t, res.ErrorMessage, "<html>502</html>")
}

func TestInvoke_UnparseableCallRequests(t *testing.T) {
	response := fmt.Sprintf(
		`{"error":"","result":{"ret_code":0,"error_message":"","data":[],"next_peer_pks":[],"call_requests":%s}}`,
		testutil.MustMarshal(t, entities.ByteArray("garbage requests")))

	res := Invoke(context.Background(), echoCall(response), "(null)", nil, nil, testParams, nil)

	assertAdapterFailure(t, res)
	assert.Contains(t, res.ErrorMessage, "garbage requests")
}

func TestInvoke_CallFunctionError(t *testing.T) {
	call := func(ctx context.Context, args string) (string, error) {
		return "", errors.New("engine unavailable")
	}

	res := Invoke(context.Background(), call, "(null)", nil, nil, testParams, nil)

	assertAdapterFailure(t, res)
	assert.Contains(t, res.ErrorMessage, "engine unavailable")
}

func TestInvoke_CallFunctionPanic(t *testing.T) {
	call := func(ctx context.Context, args string) (string, error) {
		panic("interpreter crashed")
	}

	res := Invoke(context.Background(), call, "(null)", nil, nil, testParams, nil)

	assertAdapterFailure(t, res)
	assert.Contains(t, res.ErrorMessage, "interpreter crashed")
}

func TestInvoke_SerializationFault(t *testing.T) {
	called := false
	call := func(ctx context.Context, args string) (string, error) {
		called = true
		return "", nil
	}

	res := Invoke(context.Background(), call, "(null)", nil, nil, testParams,
		entities.CallResultsArray{
			{Key: 0, Result: entities.CallResult{Result: make(chan int)}},
		})

	assertAdapterFailure(t, res)
	assert.False(t, called, "call boundary must not be reached when serialization fails")
}

func TestInvoke_ThreadsDataAcrossInvocations(t *testing.T) {
	continuation := entities.ByteArray{9, 8, 7}
	first := Invoke(context.Background(),
		echoCall(fmt.Sprintf(
			`{"error":"","result":{"ret_code":0,"error_message":"","data":%s,"next_peer_pks":[],"call_requests":[]}}`,
			testutil.MustMarshal(t, continuation))),
		"(null)", nil, nil, testParams, nil)
	require.Equal(t, []byte{9, 8, 7}, first.Data)

	// The host feeds first.Data back in as prevData; the adapter must pass
	// it through byte-for-byte without inspecting it.
	var seenArgs string
	second := Invoke(context.Background(),
		func(ctx context.Context, args string) (string, error) {
			seenArgs = args
			return `{"error":"","result":{"ret_code":0,"error_message":"","data":[],"next_peer_pks":[],"call_requests":[]}}`, nil
		},
		"(null)", first.Data, nil, testParams, nil)
	require.Equal(t, int32(0), second.RetCode)

	var elements []json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(seenArgs), &elements))
	require.Len(t, elements, 5)
	var prevData entities.ByteArray
	require.NoError(t, json.Unmarshal(elements[1], &prevData))
	assert.Equal(t, entities.ByteArray{9, 8, 7}, prevData)
}
