package contract

import "errors"

var (
	// ErrConfig marks a misconfiguration the operator must fix (missing
	// credential, unsupported model). Fatal to the run, never retried.
	ErrConfig = errors.New("configuration error")

	// ErrTool marks a downstream tool invocation fault (HTTP failure,
	// timeout, malformed response).
	ErrTool = errors.New("tool invocation failed")

	// ErrValidation marks input rejected before any engine or tool call.
	ErrValidation = errors.New("validation failed")

	// ErrModelInvoke marks a reasoning-engine failure that is not a
	// configuration problem.
	ErrModelInvoke = errors.New("model invoke failed")
)
