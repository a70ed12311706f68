// Package traceback turns error triples reported by a host framework into
// deterministic text.
package traceback

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/pkg/errors"

	"github.com/fjglira/tcbridge/internal/domain"
)

// FailedPrefix starts the text produced when an error cannot be formatted.
const FailedPrefix = "*FAILED TO GET TRACEBACK*: "

type stackTracer interface {
	StackTrace() errors.StackTrace
}

// Fix repairs a triple whose value is a bare string by wrapping the string in
// a *domain.GenericError. Kind and trace are left untouched.
func Fix(info domain.ErrorInfo) domain.ErrorInfo {
	if s, ok := info.Value.(string); ok {
		info.Value = &domain.GenericError{Message: s}
	}
	return info
}

// Format renders info as "<kind>: <message>" followed by its stack frames.
// It never panics: if rendering fails the result starts with FailedPrefix and
// carries whatever trace could be recovered.
func Format(info domain.ErrorInfo) (text string) {
	defer func() {
		if r := recover(); r != nil {
			text = FailedPrefix + fmt.Sprintf("%v\n%s", r, debug.Stack())
		}
	}()

	kind := info.Kind
	if kind == "" {
		kind = domain.KindOf(info.Value)
	}

	var b strings.Builder
	b.WriteString(kind)
	if msg := message(info.Value); msg != "" {
		b.WriteString(": ")
		b.WriteString(msg)
	}
	if len(info.Trace) > 0 {
		fmt.Fprintf(&b, "%+v", info.Trace)
	}
	b.WriteString("\n")
	return b.String()
}

// FromError builds a triple from err. The kind is taken from the root cause
// and the trace from the innermost error in the chain that recorded a stack.
func FromError(err error) domain.ErrorInfo {
	info := domain.ErrorInfo{
		Kind:  domain.KindOf(errors.Cause(err)),
		Value: err,
	}
	for e := err; e != nil; e = errors.Unwrap(e) {
		if st, ok := e.(stackTracer); ok {
			info.Trace = st.StackTrace()
		}
	}
	return info
}

func message(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
