// Package entities provides core domain entities for the SDK.
// These are general-purpose types shared by the wire codec and the
// invocation API. Script-level semantics (what an AIR program means)
// belong to the interpreter, not here.
package entities
