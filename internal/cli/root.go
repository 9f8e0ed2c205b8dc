// Package cli implements the eventflow command tree: participant
// registration and checkout, the staff console, the gate station, and
// report exports, all against the fest portal API.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/SXPXL/eventflow/internal/dependencies/clock"
	"github.com/SXPXL/eventflow/internal/portal"
	"github.com/SXPXL/eventflow/internal/session"
)

var (
	cfg    *Config
	sess   *session.Store
	client *portal.Client
	logger *slog.Logger
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	loaded, err := LoadConfig()
	if err != nil {
		loaded = &Config{ServerURL: "http://localhost:8000", Output: "text", ReportDir: "."}
	}
	cfg = loaded

	rootCmd := &cobra.Command{
		Use:   "eventflow",
		Short: "Client for the fest event-registration portal",
		Long: `eventflow talks to the fest portal API: participants register and
check out event stacks, cashiers issue tokens and handle walk-ins,
guards run the gate, and admins manage events, staff and reports.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			path := cfg.SessionFile
			if path == "" {
				path = session.DefaultPath()
			}
			var err error
			sess, err = session.Open(path, clock.New())
			if err != nil {
				return err
			}

			client = portal.New(cfg.ServerURL, sess, logger)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Portal URL (env: EVENTFLOW_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "Session file path (env: EVENTFLOW_SESSION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	rootCmd.AddCommand(newRegisterCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newCheckoutCmd())
	rootCmd.AddCommand(newPayCmd())
	rootCmd.AddCommand(newStaffCmd())
	rootCmd.AddCommand(newCashierCmd())
	rootCmd.AddCommand(newWalkinCmd())
	rootCmd.AddCommand(newGateCmd())
	rootCmd.AddCommand(newReportsCmd())
	rootCmd.AddCommand(newSessionCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
