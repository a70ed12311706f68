package domain

import (
	"time"

	"github.com/pkg/errors"
)

// TestUnit is a handle to a single test owned by the host framework.
// The bridge only reads from it.
type TestUnit interface {
	ID() string
}

// Describer is implemented by units that carry a short human description.
type Describer interface {
	ShortDescription() string
}

// Wrapper is implemented by units that box the real test.
type Wrapper interface {
	RealTest() TestUnit
}

// TypeNamer lets a unit report its fully-qualified type name instead of
// having it derived by reflection.
type TypeNamer interface {
	TypeName() string
}

// ErrorInfo is the (kind, value, trace) triple reported by the host framework.
type ErrorInfo struct {
	Kind  string            // fully-qualified kind name, e.g. "domain.SkipTest"
	Value any               // an error after repair; hosts sometimes hand over a bare string
	Trace errors.StackTrace // may be nil
}

// GenericError wraps a bare message so it can be treated as an error value.
type GenericError struct {
	Message string
}

func (e *GenericError) Error() string {
	return e.Message
}

// SkipTest signals that a test was skipped.
type SkipTest struct {
	Reason string
}

func (e *SkipTest) Error() string {
	if e.Reason == "" {
		return "skipped"
	}
	return e.Reason
}

// DeprecatedTest signals that a test is deprecated and was not run.
type DeprecatedTest struct {
	Reason string
}

func (e *DeprecatedTest) Error() string {
	if e.Reason == "" {
		return "deprecated"
	}
	return e.Reason
}

// ErrorHolder stands in for a failure that is not tied to a real test,
// such as a package-level setup failure. Its ID has the form "<name> (<module>)".
type ErrorHolder struct {
	Description string
}

func (h *ErrorHolder) ID() string {
	return h.Description
}

// NewErrorHolder creates an ErrorHolder for the given name and module.
func NewErrorHolder(name, module string) *ErrorHolder {
	return &ErrorHolder{Description: name + " (" + module + ")"}
}

// DocTest is a test generated from documentation examples. Its description is
// not stable across runs and is never part of its identity.
type DocTest struct {
	Name        string
	Description string
}

func (d *DocTest) ID() string {
	return d.Name
}

func (d *DocTest) ShortDescription() string {
	return d.Description
}

// Message names understood by the CI observer.
const (
	MessageTestStarted  = "testStarted"
	MessageTestFinished = "testFinished"
	MessageTestFailed   = "testFailed"
	MessageTestIgnored  = "testIgnored"
	MessageTestStdOut   = "testStdOut"
)

// Attr is a single key/value attribute of a ServiceMessage.
type Attr struct {
	Key   string
	Value string
}

// ServiceMessage is one structured event in the emitted reporting stream.
type ServiceMessage struct {
	Name     string
	TestID   string
	FlowID   string
	Duration time.Duration // only meaningful for testFinished
	Attrs    []Attr        // event-specific attributes, in emission order
}

// Attr returns the value of the named attribute and whether it was set.
func (m ServiceMessage) Attr(key string) (string, bool) {
	for _, a := range m.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}
