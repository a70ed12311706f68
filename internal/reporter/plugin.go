package reporter

import "github.com/fjglira/tcbridge/internal/domain"

// PluginName is the name PluginReporter registers under.
const PluginName = "teamcity-report"

// PluginReporter implements the plugin callback shape: independent start,
// stop, error and failure hooks, and no skip hook. Skips arrive as errors of
// a skip kind. When disabled every callback is a no-op.
type PluginReporter struct {
	Tally

	core    *Core
	enabled bool
}

// NewPluginReporter creates a PluginReporter backed by core.
func NewPluginReporter(core *Core, enabled bool) *PluginReporter {
	return &PluginReporter{core: core, enabled: enabled}
}

// Name returns PluginName.
func (p *PluginReporter) Name() string {
	return PluginName
}

// Configure switches reporting on or off.
func (p *PluginReporter) Configure(enabled bool) {
	p.enabled = enabled
}

// Enabled reports whether callbacks are translated.
func (p *PluginReporter) Enabled() bool {
	return p.enabled
}

// StartTest counts unit as run and reports it started.
func (p *PluginReporter) StartTest(unit any) {
	if !p.enabled {
		return
	}
	p.TestsRun++
	p.core.Start(unit)
}

// StopTest reports unit finished. It fails when unit was never started.
func (p *PluginReporter) StopTest(unit any) error {
	if !p.enabled {
		return nil
	}
	return p.core.Stop(unit)
}

// AddSuccess counts a passing test. Passing needs no message of its own.
func (p *PluginReporter) AddSuccess(unit any) {
	if !p.enabled {
		return
	}
	p.Passed++
}

// AddError reports an error. Errors of a skip or deprecated kind are
// reported as ignored tests.
func (p *PluginReporter) AddError(unit any, info domain.ErrorInfo) {
	if !p.enabled {
		return
	}
	p.countError(p.core.Error(unit, info))
}

// AddFailure reports an assertion failure.
func (p *PluginReporter) AddFailure(unit any, info domain.ErrorInfo) {
	if !p.enabled {
		return
	}
	p.Failures++
	p.core.Failure(unit, info)
}
