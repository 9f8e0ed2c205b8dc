package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SXPXL/eventflow/internal/model"
)

func newReportsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reports",
		Short: "Download registration reports (admin)",
	}
	cmd.AddCommand(newReportsEventCmd())
	cmd.AddCommand(newReportsMasterCmd())
	return cmd
}

func newReportsEventCmd() *cobra.Command {
	var filter, sortBy, dir string

	cmd := &cobra.Command{
		Use:   "event <event-id>",
		Short: "Export one event's registrations as CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.ReportDir
			}

			path, err := console().ExportEvent(cmd.Context(), dir, model.EventID(id),
				strings.ToUpper(filter), strings.ToUpper(sortBy))
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Wrote " + path)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "ALL", "Row filter: all, present, absent")
	cmd.Flags().StringVar(&sortBy, "sort", "NAME", "Sort order: name, team")
	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (env: EVENTFLOW_REPORT_DIR)")

	return cmd
}

func newReportsMasterCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "master",
		Short: "Export every registration as CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dir == "" {
				dir = cfg.ReportDir
			}
			path, err := console().ExportMaster(cmd.Context(), dir)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Wrote " + path)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "Output directory (env: EVENTFLOW_REPORT_DIR)")
	return cmd
}
