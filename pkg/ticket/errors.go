package ticket

import "fmt"

// ValidationError reports a missing or malformed input. It is raised
// before any external call is made and before the secret is consumed.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// InvocationError reports that an external primitive could not be invoked
// at all. This is an infrastructure failure, distinct from a primitive
// running and reporting a negative result.
type InvocationError struct {
	Op  string
	Err error
}

func (e *InvocationError) Error() string {
	return fmt.Sprintf("%s primitive could not be invoked: %v", e.Op, e.Err)
}

func (e *InvocationError) Unwrap() error { return e.Err }

// AcquisitionError reports that the acquisition primitive ran and failed.
// Its text is the primitive's diagnostic, unmodified.
type AcquisitionError struct {
	Diagnostic string
}

func (e *AcquisitionError) Error() string {
	return e.Diagnostic
}
