package reporter

import "github.com/fjglira/tcbridge/internal/domain"

// ResultReporter implements the result-object callback shape. Besides
// reporting, it keeps the Tally a host framework aggregates results from.
type ResultReporter struct {
	Tally

	core *Core
}

// NewResultReporter creates a ResultReporter backed by core.
func NewResultReporter(core *Core) *ResultReporter {
	return &ResultReporter{core: core}
}

// StartTest counts unit as run and reports it started.
func (r *ResultReporter) StartTest(unit any) {
	r.TestsRun++
	r.core.Start(unit)
}

// StopTest reports unit finished. It fails when unit was never started.
func (r *ResultReporter) StopTest(unit any) error {
	return r.core.Stop(unit)
}

// AddSuccess counts a passing test. Passing needs no message of its own.
func (r *ResultReporter) AddSuccess(unit any) {
	r.Passed++
}

// AddError reports an error. Error holders that stand for failures outside
// any test are reported as a self-contained test of their own.
func (r *ResultReporter) AddError(unit any, info domain.ErrorInfo) {
	if r.core.IsErrorHolder(unit) {
		r.Errors++
		r.core.Standalone(unit, info)
		return
	}
	r.countError(r.core.Error(unit, info))
}

// AddFailure reports an assertion failure.
func (r *ResultReporter) AddFailure(unit any, info domain.ErrorInfo) {
	r.Failures++
	r.core.Failure(unit, info)
}

// AddSkip reports unit as ignored, with reason when given.
func (r *ResultReporter) AddSkip(unit any, reason string) {
	r.Skipped++
	r.core.Skip(unit, reason)
}

// AddExpectedFailure reports a failure the test was marked to expect as an
// ignored test.
func (r *ResultReporter) AddExpectedFailure(unit any, info domain.ErrorInfo) {
	r.ExpectedFailures++
	r.core.ExpectedFailure(unit, info)
}

// AddUnexpectedSuccess reports a pass of a test marked to fail as a failure.
func (r *ResultReporter) AddUnexpectedSuccess(unit any) {
	r.UnexpectedSuccesses++
	r.core.UnexpectedSuccess(unit)
}
