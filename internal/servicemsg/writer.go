// Package servicemsg serializes service messages into TeamCity's line format.
package servicemsg

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/fjglira/tcbridge/internal/domain"
)

const timestampLayout = "2006-01-02T15:04:05.000-0700"

var escaper = strings.NewReplacer(
	"|", "||",
	"'", "|'",
	"\n", "|n",
	"\r", "|r",
	"[", "|[",
	"]", "|]",
	"\u0085", "|x",
	"\u2028", "|l",
	"\u2029", "|p",
)

// Escape applies TeamCity's attribute value escaping.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Writer writes each message as a single "##teamcity[...]" line.
type Writer struct {
	out        io.Writer
	clock      clock.Clock
	timestamps bool
}

// NewWriter creates a Writer. When timestamps is true every line carries the
// time it was written, taken from clk.
func NewWriter(out io.Writer, clk clock.Clock, timestamps bool) *Writer {
	if clk == nil {
		clk = clock.New()
	}
	return &Writer{out: out, clock: clk, timestamps: timestamps}
}

// Emit serializes msg and writes it unbuffered.
func (w *Writer) Emit(msg domain.ServiceMessage) error {
	if _, err := io.WriteString(w.out, w.Format(msg)); err != nil {
		return domain.NewError("report", msg.TestID, fmt.Sprintf("failed to write %s", msg.Name), err)
	}
	return nil
}

// Format renders msg as a newline-terminated line.
func (w *Writer) Format(msg domain.ServiceMessage) string {
	var b strings.Builder
	b.WriteString("##teamcity[")
	b.WriteString(msg.Name)
	if w.timestamps {
		writeAttr(&b, "timestamp", w.clock.Now().Format(timestampLayout))
	}
	writeAttr(&b, "name", msg.TestID)
	for _, a := range msg.Attrs {
		writeAttr(&b, a.Key, a.Value)
	}
	if msg.Name == domain.MessageTestFinished {
		writeAttr(&b, "duration", strconv.FormatInt(msg.Duration.Milliseconds(), 10))
	}
	if msg.FlowID != "" {
		writeAttr(&b, "flowId", msg.FlowID)
	}
	b.WriteString("]\n")
	return b.String()
}

func writeAttr(b *strings.Builder, key, value string) {
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString("='")
	b.WriteString(Escape(value))
	b.WriteString("'")
}
