// Package emitter stamps service messages with their flow and hands them to a sink.
package emitter

import (
	"time"

	"github.com/fjglira/tcbridge/internal/domain"
)

// Sink receives service messages, typically to serialize them onto a stream.
type Sink interface {
	Emit(msg domain.ServiceMessage) error
}

// Emitter builds one message per call and forwards it to its sink. It does
// no buffering or retrying.
type Emitter struct {
	sink Sink
}

// New creates an Emitter writing to sink.
func New(sink Sink) *Emitter {
	return &Emitter{sink: sink}
}

// TestStarted reports that testID began, with output capture enabled.
func (e *Emitter) TestStarted(testID string) error {
	return e.emit(domain.MessageTestStarted, testID, 0,
		domain.Attr{Key: "captureStandardOutput", Value: "true"})
}

// TestFinished reports that testID completed after d.
func (e *Emitter) TestFinished(testID string, d time.Duration) error {
	return e.emit(domain.MessageTestFinished, testID, d)
}

// TestFailed reports a failure; message is "Error" or "Failure".
func (e *Emitter) TestFailed(testID, message, details string) error {
	return e.emit(domain.MessageTestFailed, testID, 0,
		domain.Attr{Key: "message", Value: message},
		domain.Attr{Key: "details", Value: details})
}

// TestIgnored reports that testID was not run or its result is disregarded.
func (e *Emitter) TestIgnored(testID, message string) error {
	return e.emit(domain.MessageTestIgnored, testID, 0,
		domain.Attr{Key: "message", Value: message})
}

// TestStdOut reports one chunk of captured output.
func (e *Emitter) TestStdOut(testID, out string) error {
	return e.emit(domain.MessageTestStdOut, testID, 0,
		domain.Attr{Key: "out", Value: out})
}

func (e *Emitter) emit(name, testID string, d time.Duration, attrs ...domain.Attr) error {
	return e.sink.Emit(domain.ServiceMessage{
		Name:     name,
		TestID:   testID,
		FlowID:   testID,
		Duration: d,
		Attrs:    attrs,
	})
}
