package entities

// InvocationParams identifies the logical peer originating and currently
// executing an AIR script. Immutable for the duration of one invocation.
type InvocationParams struct {
	// InitPeerID is the peer that started the particle.
	InitPeerID string `json:"initPeerId" validate:"required"`

	// CurrentPeerID is the peer executing this invocation.
	CurrentPeerID string `json:"currentPeerId" validate:"required"`
}

// CallResult is the outcome of a previously requested service call,
// supplied back into the interpreter on the next invocation.
type CallResult struct {
	// RetCode is the application-level return code of the service call.
	RetCode int32 `json:"retCode"`

	// Result is an arbitrary JSON value produced by the service.
	// Script authors control its shape, so it stays generic.
	Result any `json:"result"`
}

// CallResultEntry pairs a call-site key with its result. The key uniquely
// identifies a call site within one interpreter run.
type CallResultEntry struct {
	Key    uint32
	Result CallResult
}

// CallResultsArray is an ordered sequence of call results. Insertion order
// is irrelevant: the codec consumes it into a keyed mapping before
// transmission.
type CallResultsArray []CallResultEntry

// CallRequest is a service invocation the interpreter could not resolve
// locally and is asking the host to perform.
type CallRequest struct {
	// ServiceID names the service to call.
	ServiceID string `json:"serviceId"`

	// FunctionName names the function within the service.
	FunctionName string `json:"functionName"`

	// Arguments is the decoded argument list, an arbitrary JSON value.
	Arguments any `json:"arguments"`

	// Tetraplets carries provenance metadata for each argument,
	// opaque to this layer.
	Tetraplets any `json:"tetraplets"`
}

// CallRequestEntry pairs a call-site key with an outstanding request.
type CallRequestEntry struct {
	Key     uint32
	Request CallRequest
}

// AdapterFailureRetCode is reserved by this layer to mean "the adapter
// itself failed" (transport or parse failure), distinct from any
// application-level non-zero code the interpreter reports.
const AdapterFailureRetCode int32 = -1

// InterpreterResult is the full outcome of one interpreter invocation.
//
// Data is an opaque continuation blob: the adapter never inspects it,
// it is threaded byte-for-byte into the next invocation's prevData by
// the host.
type InterpreterResult struct {
	// RetCode is the interpreter's return code; 0 means success and
	// AdapterFailureRetCode means the adapter itself failed.
	RetCode int32 `json:"retCode"`

	// ErrorMessage describes a script-level or adapter-level failure.
	ErrorMessage string `json:"errorMessage"`

	// Data is the opaque continuation state blob.
	Data []byte `json:"data"`

	// NextPeerPKs lists the peers the script should propagate to next.
	NextPeerPKs []string `json:"nextPeerPks"`

	// CallRequests lists outstanding service calls, in the order the
	// interpreter reported them.
	CallRequests []CallRequestEntry `json:"callRequests"`
}
