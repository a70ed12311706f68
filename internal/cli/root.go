package cli

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
	log     *logrus.Logger
)

// rootCmd is the base command for tcbridge.
var rootCmd = &cobra.Command{
	Use:   "tcbridge",
	Short: "Report Go test results to TeamCity",
	Long: `tcbridge translates test lifecycle events into TeamCity service messages.

It reads the event stream of "go test -json" and writes one service message
per line to stdout. Settings come from a YAML configuration file (tcbridge.yaml).`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log = newLogger(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "tcbridge.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	// Initialize default logger (overridden in PersistentPreRun)
	log = newLogger(false)
}

// newLogger logs to stderr; stdout carries service messages only.
func newLogger(debug bool) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	return l
}

// applyLogLevel sets the configured level unless --verbose was given.
func applyLogLevel(level string) {
	if verbose || level == "" {
		return
	}
	if lvl, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(lvl)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
