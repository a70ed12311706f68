// Package gotest drives a reporter from the event stream of "go test -json".
package gotest

import (
	"encoding/json"
	"strings"
	"time"
)

// Actions emitted by test2json.
const (
	ActionStart  = "start"
	ActionRun    = "run"
	ActionPause  = "pause"
	ActionCont   = "cont"
	ActionPass   = "pass"
	ActionFail   = "fail"
	ActionSkip   = "skip"
	ActionOutput = "output"
	ActionBench  = "bench"
)

// Event is one line of "go test -json" output.
type Event struct {
	Time    time.Time
	Action  string
	Package string
	Test    string
	Elapsed float64
	Output  string
}

// ParseEvent decodes a single JSON line.
func ParseEvent(line []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(line, &ev); err != nil {
		return ev, err
	}
	return ev, nil
}

// Unit identifies one Go test or subtest.
type Unit struct {
	Package string
	Name    string
}

// ID returns "<package>.<test>", e.g. "example.com/foo.TestBar/sub".
func (u Unit) ID() string {
	if u.Package == "" {
		return u.Name
	}
	return u.Package + "." + u.Name
}

// framing reports whether line is test2json bookkeeping rather than test output.
func framing(line string) bool {
	trimmed := strings.TrimLeft(line, " ")
	for _, prefix := range []string{"=== RUN", "=== PAUSE", "=== CONT", "=== NAME", "--- PASS", "--- FAIL", "--- SKIP"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}
