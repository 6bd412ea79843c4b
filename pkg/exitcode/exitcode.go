// Package exitcode defines exit codes for the salamander CLI.
package exitcode

// Exit codes follow a standard convention:
// 0 = Success (every payload mapped)
// 1 = Fallback (at least one view model is the unavailable placeholder)
// 2 = Tool/config error (ERROR)
const (
	// Success indicates every payload was mapped.
	Success = 0

	// Fallback indicates at least one mapping returned the unavailable
	// view model.
	Fallback = 1

	// Error indicates a tool or configuration error.
	Error = 2
)

// FromFallback converts the outcome of a mapping run to an exit code.
func FromFallback(fallback bool) int {
	if fallback {
		return Fallback
	}
	return Success
}

// Description returns a human-readable description of the exit code.
func Description(code int) string {
	switch code {
	case Success:
		return "Payload mapped"
	case Fallback:
		return "Data unavailable, placeholder view model returned"
	case Error:
		return "Tool or configuration error"
	default:
		return "Unknown exit code"
	}
}

// IsSuccess returns true if the exit code indicates success.
func IsSuccess(code int) bool {
	return code == Success
}

// IsFallback returns true if the exit code indicates a fallback.
func IsFallback(code int) bool {
	return code == Fallback
}

// IsError returns true if the exit code indicates an error.
func IsError(code int) bool {
	return code == Error
}
