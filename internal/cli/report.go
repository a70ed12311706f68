package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	"github.com/fjglira/tcbridge/internal/capture"
	"github.com/fjglira/tcbridge/internal/config"
	"github.com/fjglira/tcbridge/internal/emitter"
	"github.com/fjglira/tcbridge/internal/gotest"
	"github.com/fjglira/tcbridge/internal/identity"
	"github.com/fjglira/tcbridge/internal/reporter"
	"github.com/fjglira/tcbridge/internal/scanner"
	"github.com/fjglira/tcbridge/internal/servicemsg"
	"github.com/fjglira/tcbridge/internal/summary"
)

var (
	adapter     string
	enabledFlag bool
	scanInputs  bool
	showSummary bool
)

var reportCmd = &cobra.Command{
	Use:   "report [file|dir|-]...",
	Short: "Translate go test -json output into TeamCity service messages",
	Long: `Reads "go test -json" events from the given files or directories, or from
stdin when no argument (or "-") is given, and writes TeamCity service messages to stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		flags := cmd.Flags()
		if flags.Changed("adapter") {
			cfg.Adapter = adapter
		}
		if flags.Changed("enabled") {
			cfg.Enabled = &enabledFlag
		}
		if flags.Changed("summary") {
			cfg.Summary.Enabled = showSummary
		}

		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}
		applyLogLevel(cfg.Logging.Level)

		inputs := args
		if scanInputs {
			inputs = append(inputs, cfg.Input.Directories...)
		}

		return runReport(cmd.Context(), cfg, inputs, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	},
}

func init() {
	reportCmd.Flags().StringVar(&adapter, "adapter", config.AdapterResult, "callback shape to drive: result or plugin")
	reportCmd.Flags().BoolVar(&enabledFlag, "enabled", true, "emit service messages (default: detect TeamCity)")
	reportCmd.Flags().BoolVar(&scanInputs, "scan", false, "also read report files found under input.directories")
	reportCmd.Flags().BoolVar(&showSummary, "summary", true, "print a summary table to stderr")
	rootCmd.AddCommand(reportCmd)
}

// runReport wires all components and feeds every input through the driver.
func runReport(ctx context.Context, cfg *config.Config, inputs []string, stdin io.Reader, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	clk := clock.New()

	enabled := cfg.ResolveEnabled()
	if !enabled {
		log.Info("Not running under TeamCity, service messages are disabled")
	}

	// The result shape has no switch of its own, so its messages go nowhere.
	out := stdout
	if !enabled && cfg.Adapter == config.AdapterResult {
		out = io.Discard
	}
	writer := servicemsg.NewWriter(out, clk, cfg.Output.Timestamps)

	// Durations follow the event times so replayed reports keep their timing.
	replay := gotest.NewReplayClock(clk)
	core := reporter.NewCore(
		emitter.New(writer),
		identity.NewResolver(cfg.Identity.DocTestKinds),
		capture.NewExtractor(cfg.Capture.MaxOutputSize, cfg.Capture.ChunkSize),
		cfg.Kinds(),
		replay,
		log,
	)

	var (
		listener gotest.Listener
		tally    *reporter.Tally
	)
	switch cfg.Adapter {
	case config.AdapterPlugin:
		p := reporter.NewPluginReporter(core, enabled)
		listener, tally = p, &p.Tally
	default:
		r := reporter.NewResultReporter(core)
		listener, tally = r, &r.Tally
	}
	driver := gotest.NewDriver(listener, log).WithClock(replay)

	start := clk.Now()
	files, readStdin, err := expandInputs(cfg, inputs)
	if err != nil {
		return err
	}
	if readStdin {
		log.Debug("Reading test events from stdin")
		if err := driver.Run(ctx, stdin); err != nil {
			return err
		}
	}
	for _, path := range files {
		if err := runFile(ctx, driver, path); err != nil {
			return err
		}
	}

	log.Infof("Reported %d test(s)", tally.TestsRun)
	if cfg.Summary.Enabled {
		fmt.Fprint(stderr, summary.Format(tally.Counts(), clk.Since(start), cfg.Summary.Colored))
	}
	return nil
}

// expandInputs resolves directories to the report files they contain.
func expandInputs(cfg *config.Config, inputs []string) ([]string, bool, error) {
	if len(inputs) == 0 {
		return nil, true, nil
	}

	recursive := true
	if cfg.Input.Recursive != nil {
		recursive = *cfg.Input.Recursive
	}
	s := scanner.NewScanner(cfg.Input.Include, cfg.Input.Exclude, recursive)

	var (
		files     []string
		readStdin bool
	)
	for _, in := range inputs {
		if in == "-" {
			readStdin = true
			continue
		}
		found, err := s.Scan(in)
		if err != nil {
			return nil, false, err
		}
		if len(found) == 0 {
			log.Warnf("No report files found in %s", in)
		}
		files = append(files, found...)
	}
	return files, readStdin, nil
}

func runFile(ctx context.Context, driver *gotest.Driver, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	log.Debugf("Reading test events from %s", path)
	return driver.Run(ctx, f)
}
