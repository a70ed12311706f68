// Package summary renders the totals of a reporting run as a table.
package summary

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/fjglira/tcbridge/internal/reporter"
)

// Status returns the overall result of a run: FAIL, SKIP or PASS.
func Status(t reporter.Tally) string {
	switch {
	case !t.WasSuccessful():
		return "FAIL"
	case t.Skipped > 0:
		return "SKIP"
	default:
		return "PASS"
	}
}

// Format renders t as an ASCII table. Colored output picks a style by status.
func Format(t reporter.Tally, elapsed time.Duration, colored bool) string {
	var buf bytes.Buffer

	tw := table.NewWriter()
	tw.SetOutputMirror(&buf)
	tw.SetTitle("Test Report")
	tw.AppendHeader(table.Row{"Result", "Count"})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Count", Align: text.AlignRight},
	})

	tw.AppendRows([]table.Row{
		{"Passed", t.Passed},
		{"Failed", t.Failures},
		{"Errored", t.Errors},
		{"Skipped", t.Skipped},
		{"Expected failures", t.ExpectedFailures},
		{"Unexpected successes", t.UnexpectedSuccesses},
	})
	tw.AppendSeparator()
	tw.AppendFooter(table.Row{
		fmt.Sprintf("TOTAL %d (%s)", t.TestsRun, formatDuration(elapsed)),
		Status(t),
	})

	if colored {
		switch Status(t) {
		case "FAIL":
			tw.SetStyle(table.StyleColoredBlackOnRedWhite)
		case "SKIP":
			tw.SetStyle(table.StyleColoredBlackOnYellowWhite)
		default:
			tw.SetStyle(table.StyleColoredBlackOnGreenWhite)
		}
	}

	tw.Render()
	return buf.String()
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Truncate(time.Millisecond).String()
}
