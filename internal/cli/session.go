package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Inspect or reset the local session",
	}
	cmd.AddCommand(newSessionShowCmd())
	cmd.AddCommand(newSessionClearCmd())
	cmd.AddCommand(newSessionSpotModeCmd())
	return cmd
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show what the session remembers",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := NewOutput(cfg.Output)
			view := map[string]any{
				"active_uid": sess.ActiveUID(),
				"spot_mode":  sess.SpotMode(),
			}
			if user := sess.Staff(); user != nil {
				view["staff"] = user
				view["token_expired"] = sess.TokenExpired()
			}
			out.Print(view)
			return nil
		},
	}
}

func newSessionClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Forget everything, including staff credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := sess.Reset(); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Session cleared")
			return nil
		},
	}
}

func newSessionSpotModeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "spot-mode <on|off>",
		Short: "Toggle the spot-registration desk, enabling cash checkout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var on bool
			switch args[0] {
			case "on":
				on = true
			case "off":
			default:
				return fmt.Errorf("argument must be on or off")
			}
			if err := sess.SetSpotMode(on); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Spot mode %s", args[0]))
			return nil
		},
	}
}
