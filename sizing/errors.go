package sizing

import "fmt"

// MalformedBytecodeError indicates that the length of a bytecode object cannot be reconciled with its source map,
// its embedded runtime code or its metadata length field.
type MalformedBytecodeError struct {
	// Reason describes which reconciliation failed.
	Reason string

	// Remaining is the number of hex characters which were left to account for.
	Remaining int

	// Expected is the number of hex characters which should have been available.
	Expected int
}

// Error returns the error message.
func (e *MalformedBytecodeError) Error() string {
	if e.Expected == 0 && e.Remaining == 0 {
		return e.Reason
	}
	return fmt.Sprintf("%s: %d < %d", e.Reason, e.Remaining, e.Expected)
}
