// Package reporter translates test lifecycle callbacks into service messages.
//
// A single Core holds the translation logic. PluginReporter and ResultReporter
// are thin front-ends matching the two callback shapes host frameworks use.
// None of the types here are safe for concurrent use: each execution context
// needs its own reporter.
package reporter

import (
	"errors"
	"regexp"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"github.com/fjglira/tcbridge/internal/capture"
	"github.com/fjglira/tcbridge/internal/domain"
	"github.com/fjglira/tcbridge/internal/emitter"
	"github.com/fjglira/tcbridge/internal/identity"
	"github.com/fjglira/tcbridge/internal/traceback"
)

const unexpectedSuccessDetails = "Test should not succeed since it's marked as an expected failure"

var holderIDPattern = regexp.MustCompile(`^(.*) \((.*)\)$`)

// Outcome is the category an error callback was reported under.
type Outcome int

const (
	OutcomeErrored Outcome = iota
	OutcomeSkipped
	OutcomeDeprecated
)

// Kinds lists the error and unit kind names that get special treatment.
type Kinds struct {
	Skip        []string
	Deprecated  []string
	ErrorHolder []string
}

// DefaultKinds returns the kind names of the bridge's own marker types.
func DefaultKinds() Kinds {
	return Kinds{
		Skip:        []string{domain.KindOf(&domain.SkipTest{})},
		Deprecated:  []string{domain.KindOf(&domain.DeprecatedTest{})},
		ErrorHolder: []string{domain.KindOf(&domain.ErrorHolder{})},
	}
}

// Core is the event-translation core shared by both front-ends.
type Core struct {
	emitter   *emitter.Emitter
	resolver  *identity.Resolver
	extractor *capture.Extractor
	clock     clock.Clock
	log       *logrus.Logger

	skipKinds       map[string]struct{}
	deprecatedKinds map[string]struct{}
	holderKinds     map[string]struct{}

	started map[string]time.Time
}

// NewCore creates a Core with all dependencies.
func NewCore(
	em *emitter.Emitter,
	resolver *identity.Resolver,
	extractor *capture.Extractor,
	kinds Kinds,
	clk clock.Clock,
	log *logrus.Logger,
) *Core {
	if clk == nil {
		clk = clock.New()
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Core{
		emitter:         em,
		resolver:        resolver,
		extractor:       extractor,
		clock:           clk,
		log:             log,
		skipKinds:       kindSet(kinds.Skip),
		deprecatedKinds: kindSet(kinds.Deprecated),
		holderKinds:     kindSet(kinds.ErrorHolder),
		started:         make(map[string]time.Time),
	}
}

// Start records the start time of unit and reports it as started.
func (c *Core) Start(unit any) {
	id := c.resolver.Resolve(unit)
	c.started[id] = c.clock.Now()
	c.log.Debugf("Test started: %s", id)
	c.check(id, c.emitter.TestStarted(id))
}

// Stop reports unit as finished with the time elapsed since its start. A stop
// without a matching start is a host framework bug and is returned as an error
// wrapping domain.ErrNoStartRecord.
func (c *Core) Stop(unit any) error {
	id := c.resolver.Resolve(unit)
	start, ok := c.started[id]
	if !ok {
		return domain.NewError("report", id, "test stopped without a matching start", domain.ErrNoStartRecord)
	}
	delete(c.started, id)

	elapsed := c.clock.Since(start)
	if elapsed < 0 {
		elapsed = 0
	}
	c.log.Debugf("Test finished: %s (%s)", id, elapsed)
	c.check(id, c.emitter.TestFinished(id, elapsed))
	return nil
}

// Error reports an error raised by unit. Skip and deprecation signals are
// reported as ignored tests; everything else as a failed test.
func (c *Core) Error(unit any, info domain.ErrorInfo) Outcome {
	info = traceback.Fix(info)
	id := c.resolver.Resolve(unit)

	switch {
	case c.isSkip(info):
		c.check(id, c.emitter.TestIgnored(id, "Skipped"))
		return OutcomeSkipped
	case c.isDeprecated(info):
		c.check(id, c.emitter.TestIgnored(id, "Deprecated"))
		return OutcomeDeprecated
	default:
		c.reportFail(id, "Error", info)
		return OutcomeErrored
	}
}

// Failure reports an assertion failure of unit.
func (c *Core) Failure(unit any, info domain.ErrorInfo) {
	info = traceback.Fix(info)
	c.reportFail(c.resolver.Resolve(unit), "Failure", info)
}

// Skip reports unit as skipped, with reason when given.
func (c *Core) Skip(unit any, reason string) {
	id := c.resolver.Resolve(unit)
	message := "Skipped"
	if reason != "" {
		message += ": " + reason
	}
	c.check(id, c.emitter.TestIgnored(id, message))
}

// ExpectedFailure reports a failure the test was marked to expect.
func (c *Core) ExpectedFailure(unit any, info domain.ErrorInfo) {
	info = traceback.Fix(info)
	id := c.resolver.Resolve(unit)
	c.check(id, c.emitter.TestIgnored(id, "Expected failure: "+traceback.Format(info)))
}

// UnexpectedSuccess reports a test that passed although it was marked to fail.
func (c *Core) UnexpectedSuccess(unit any) {
	id := c.resolver.Resolve(unit)
	c.check(id, c.emitter.TestFailed(id, "Failure", unexpectedSuccessDetails))
}

// IsErrorHolder reports whether unit stands in for a failure outside any test.
func (c *Core) IsErrorHolder(unit any) bool {
	_, ok := c.holderKinds[domain.KindOf(unit)]
	return ok
}

// Standalone reports a failure not tied to a real test as a complete
// start/fail/finish sequence. The start-time map is not touched.
func (c *Core) Standalone(unit any, info domain.ErrorInfo) {
	info = traceback.Fix(info)
	id := StandaloneID(c.resolver.Resolve(unit))

	c.log.Debugf("Standalone error: %s", id)
	c.check(id, c.emitter.TestStarted(id))
	c.reportFail(id, "Failure", info)
	c.check(id, c.emitter.TestFinished(id, 0))
}

// StandaloneID rewrites "<name> (<module>)" as "<module>.<name>". Other ids
// are returned unchanged.
func StandaloneID(id string) string {
	return holderIDPattern.ReplaceAllString(id, "$2.$1")
}

func (c *Core) reportFail(id, failType string, info domain.ErrorInfo) {
	details, chunks := c.extractor.Extract(traceback.Format(info))
	for _, chunk := range chunks {
		c.check(id, c.emitter.TestStdOut(id, chunk))
	}
	c.check(id, c.emitter.TestFailed(id, failType, details))
}

func (c *Core) isSkip(info domain.ErrorInfo) bool {
	if _, ok := c.skipKinds[info.Kind]; ok {
		return true
	}
	var skip *domain.SkipTest
	err, ok := info.Value.(error)
	return ok && errors.As(err, &skip)
}

func (c *Core) isDeprecated(info domain.ErrorInfo) bool {
	if _, ok := c.deprecatedKinds[info.Kind]; ok {
		return true
	}
	var deprecated *domain.DeprecatedTest
	err, ok := info.Value.(error)
	return ok && errors.As(err, &deprecated)
}

// check logs a sink failure. Reporting carries on with the next message.
func (c *Core) check(id string, err error) {
	if err != nil {
		c.log.Warnf("Failed to report %s: %v", id, err)
	}
}

func kindSet(kinds []string) map[string]struct{} {
	set := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return set
}
