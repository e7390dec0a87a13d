package router

import (
	"fmt"

	"github.com/pkg/errors"
)

// A ContractViolation describes a state that a correct router can never
// reach. It is raised with panic and carries enough of the offending state to
// reconstruct what happened.
type ContractViolation struct {
	Component string
	Reason    string
	State     string

	cause error
}

func (v *ContractViolation) Error() string {
	return fmt.Sprintf("%s: %s", v.Component, v.Reason)
}

// Cause returns the underlying error, which records where the violation was
// raised.
func (v *ContractViolation) Cause() error {
	return v.cause
}

// Unwrap allows errors.Is and errors.As to look through the violation.
func (v *ContractViolation) Unwrap() error {
	return v.cause
}

// Format prints the state dump and the stack trace with %+v.
func (v *ContractViolation) Format(s fmt.State, verb rune) {
	if verb == 'v' && s.Flag('+') {
		fmt.Fprintf(s, "%s\n%s\n%+v", v.Error(), v.State, v.cause)
		return
	}

	fmt.Fprint(s, v.Error())
}

func violate(component, state, format string, args ...any) {
	cause := errors.Errorf(format, args...)

	panic(&ContractViolation{
		Component: component,
		Reason:    cause.Error(),
		State:     state,
		cause:     cause,
	})
}
