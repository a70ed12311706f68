package reporter

// Tally is the base result protocol: the counters a host framework
// aggregates into pass/fail totals.
type Tally struct {
	TestsRun            int
	Passed              int
	Failures            int
	Errors              int
	Skipped             int
	ExpectedFailures    int
	UnexpectedSuccesses int

	shouldStop bool
}

// WasSuccessful reports whether no test failed, errored or passed unexpectedly.
func (t *Tally) WasSuccessful() bool {
	return t.Failures == 0 && t.Errors == 0 && t.UnexpectedSuccesses == 0
}

// Stop asks the host framework to stop running further tests.
func (t *Tally) Stop() {
	t.shouldStop = true
}

// ShouldStop reports whether Stop was called.
func (t *Tally) ShouldStop() bool {
	return t.shouldStop
}

// Counts returns a copy of the counters.
func (t *Tally) Counts() Tally {
	return *t
}

func (t *Tally) countError(o Outcome) {
	if o == OutcomeErrored {
		t.Errors++
	} else {
		t.Skipped++
	}
}
