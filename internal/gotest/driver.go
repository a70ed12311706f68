package gotest

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fjglira/tcbridge/internal/capture"
	"github.com/fjglira/tcbridge/internal/domain"
)

const (
	maxLineSize = 16 * 1024 * 1024

	// FailureKind is the kind reported for failed Go tests.
	FailureKind = "testing.T"
	// setupName names package-level failures that belong to no test.
	setupName = "setup"
)

// Listener is the plugin callback shape.
type Listener interface {
	StartTest(unit any)
	StopTest(unit any) error
	AddSuccess(unit any)
	AddError(unit any, info domain.ErrorInfo)
	AddFailure(unit any, info domain.ErrorInfo)
}

// ResultListener is the result-object callback shape, which has a skip hook
// and understands error holders.
type ResultListener interface {
	Listener
	AddSkip(unit any, reason string)
}

type testState struct {
	unit   Unit
	output strings.Builder
}

// Driver feeds test2json events to a Listener.
type Driver struct {
	listener Listener
	log      *logrus.Logger
	clock    *ReplayClock

	running   map[string]*testState
	pkgOutput map[string]*strings.Builder
	pkgFailed map[string]bool
}

// NewDriver creates a Driver reporting to l.
func NewDriver(l Listener, log *logrus.Logger) *Driver {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Driver{
		listener:  l,
		log:       log,
		running:   make(map[string]*testState),
		pkgOutput: make(map[string]*strings.Builder),
		pkgFailed: make(map[string]bool),
	}
}

// WithClock makes the Driver move c to the time of every event before
// handling it. The listener's reporter should read time from c.
func (d *Driver) WithClock(c *ReplayClock) *Driver {
	d.clock = c
	return d
}

// Run reads events from r until EOF or until ctx is cancelled. Lines that are
// not JSON events, such as build output, are skipped.
func (d *Driver) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := scanner.Bytes()
		if len(line) == 0 || line[0] != '{' {
			d.log.Debugf("Skipping non-event line: %s", line)
			continue
		}
		ev, err := ParseEvent(line)
		if err != nil {
			d.log.Warnf("Skipping malformed event: %v", err)
			continue
		}
		if err := d.Handle(ev); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return domain.NewError("decode", "", "failed to read test events", errors.WithStack(err))
	}
	return nil
}

// Handle applies a single event.
func (d *Driver) Handle(ev Event) error {
	if d.clock != nil {
		d.clock.Set(ev.Time)
	}
	if ev.Test == "" {
		return d.handlePackage(ev)
	}

	key := ev.Package + "\x00" + ev.Test
	switch ev.Action {
	case ActionRun:
		d.start(key, ev)
	case ActionOutput:
		if st, ok := d.running[key]; ok && !framing(ev.Output) {
			st.output.WriteString(ev.Output)
		}
	case ActionPass:
		st := d.ensureStarted(key, ev)
		d.listener.AddSuccess(st.unit)
		return d.stop(key, st)
	case ActionFail:
		st := d.ensureStarted(key, ev)
		d.pkgFailed[ev.Package] = true
		d.listener.AddFailure(st.unit, failureInfo(st.unit.ID()+" failed", st.output.String()))
		return d.stop(key, st)
	case ActionSkip:
		st := d.ensureStarted(key, ev)
		d.skip(st)
		return d.stop(key, st)
	}
	return nil
}

func (d *Driver) handlePackage(ev Event) error {
	switch ev.Action {
	case ActionOutput:
		b, ok := d.pkgOutput[ev.Package]
		if !ok {
			b = &strings.Builder{}
			d.pkgOutput[ev.Package] = b
		}
		b.WriteString(ev.Output)
	case ActionFail:
		if err := d.abandonRunning(ev.Package); err != nil {
			return err
		}
		if !d.pkgFailed[ev.Package] {
			d.reportPackageFailure(ev.Package)
		}
		d.forget(ev.Package)
	case ActionPass, ActionSkip:
		d.forget(ev.Package)
	}
	return nil
}

func (d *Driver) start(key string, ev Event) *testState {
	st := &testState{unit: Unit{Package: ev.Package, Name: ev.Test}}
	d.running[key] = st
	d.listener.StartTest(st.unit)
	return st
}

func (d *Driver) ensureStarted(key string, ev Event) *testState {
	if st, ok := d.running[key]; ok {
		return st
	}
	d.log.Debugf("Result for %s/%s without a run event", ev.Package, ev.Test)
	return d.start(key, ev)
}

func (d *Driver) stop(key string, st *testState) error {
	delete(d.running, key)
	return d.listener.StopTest(st.unit)
}

func (d *Driver) skip(st *testState) {
	reason := strings.TrimSpace(st.output.String())
	if rl, ok := d.listener.(ResultListener); ok {
		rl.AddSkip(st.unit, reason)
		return
	}
	d.listener.AddError(st.unit, domain.ErrorInfo{
		Kind:  domain.KindOf(&domain.SkipTest{}),
		Value: &domain.SkipTest{Reason: reason},
	})
}

// abandonRunning fails tests the package exited without finishing, which
// happens when the test binary crashes or times out.
func (d *Driver) abandonRunning(pkg string) error {
	var keys []string
	for key, st := range d.running {
		if st.unit.Package == pkg {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		st := d.running[key]
		d.pkgFailed[pkg] = true
		d.listener.AddFailure(st.unit, failureInfo(st.unit.ID()+" did not complete", st.output.String()))
		if err := d.stop(key, st); err != nil {
			return err
		}
	}
	return nil
}

func (d *Driver) reportPackageFailure(pkg string) {
	var output string
	if b, ok := d.pkgOutput[pkg]; ok {
		output = b.String()
	}
	if _, ok := d.listener.(ResultListener); !ok {
		d.log.Warnf("Package %s failed outside of any test:\n%s", pkg, output)
		return
	}
	d.listener.AddError(domain.NewErrorHolder(setupName, pkg),
		failureInfo(fmt.Sprintf("package %s failed", pkg), output))
}

func (d *Driver) forget(pkg string) {
	delete(d.pkgOutput, pkg)
	delete(d.pkgFailed, pkg)
}

// failureInfo embeds output in a captured-output block so it is reported as
// test output rather than as part of the failure details.
func failureInfo(message, output string) domain.ErrorInfo {
	if output != "" {
		message += "\n" + capture.Wrap(strings.TrimSuffix(output, "\n"))
	}
	return domain.ErrorInfo{
		Kind:  FailureKind,
		Value: &domain.GenericError{Message: message},
	}
}
