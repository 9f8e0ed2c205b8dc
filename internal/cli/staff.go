package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/SXPXL/eventflow/internal/model"
	"github.com/SXPXL/eventflow/internal/portal"
	"github.com/SXPXL/eventflow/internal/staff"
)

func newStaffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "staff",
		Short: "Staff console commands",
	}

	cmd.AddCommand(newStaffLoginCmd())
	cmd.AddCommand(newStaffLogoutCmd())
	cmd.AddCommand(newStaffWhoamiCmd())
	cmd.AddCommand(newStaffEventsCmd())
	cmd.AddCommand(newStaffAccountsCmd())
	cmd.AddCommand(newStaffParticipantsCmd())

	return cmd
}

func console() *staff.Console {
	return staff.NewConsole(client, sess, logger)
}

func newStaffLoginCmd() *cobra.Command {
	var user, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in to the staff console",
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := console().Login(cmd.Context(), user, pass)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Logged in as %s (%s)", u.Username, u.Role))
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newStaffLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out of the staff console",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := console().Logout(); err != nil {
				return err
			}
			NewOutput(cfg.Output).PrintMessage("Logged out")
			return nil
		},
	}
}

func newStaffWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			user := sess.Staff()
			if user == nil {
				return model.ErrNotLoggedIn
			}
			out := NewOutput(cfg.Output)
			if sess.TokenExpired() {
				out.PrintMessage("Session expired; log in again")
			}
			out.Print([]model.StaffUser{*user})
			return nil
		},
	}
}

func newStaffEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Manage the event catalog (admin)",
	}
	cmd.AddCommand(newStaffEventsListCmd())
	cmd.AddCommand(newStaffEventsCreateCmd())
	cmd.AddCommand(newStaffEventsDeleteCmd())
	return cmd
}

func newStaffEventsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List every event",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := client.ListEvents(cmd.Context())
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(events)
			return nil
		},
	}
}

func newStaffEventsCreateCmd() *cobra.Command {
	var req portal.CreateEventRequest
	var kind string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Type = model.EventType(strings.ToUpper(kind))
			if req.Type != model.EventSolo && req.Type != model.EventGroup {
				return fmt.Errorf("--type must be solo or group")
			}
			if req.Type == model.EventGroup && req.MinTeamSize < 1 {
				return fmt.Errorf("group events need --min-team")
			}

			events, err := console().CreateEvent(cmd.Context(), req)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(events)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "Event name (required)")
	cmd.Flags().StringVar(&kind, "type", "solo", "Event type: solo, group")
	cmd.Flags().Float64Var(&req.Fee, "fee", 0, "Registration fee")
	cmd.Flags().IntVar(&req.MinTeamSize, "min-team", 0, "Minimum team size (group)")
	cmd.Flags().IntVar(&req.MaxTeamSize, "max-team", 0, "Maximum team size (group)")
	cmd.Flags().StringVar(&req.Date, "date", "", "Event date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.StartTime, "start", "", "Start time (HH:MM)")
	cmd.Flags().StringVar(&req.EndTime, "end", "", "End time (HH:MM)")
	cmd.Flags().StringVar(&req.Description, "desc", "", "Description")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newStaffEventsDeleteCmd() *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an event",
		RunE: func(cmd *cobra.Command, args []string) error {
			events, err := console().DeleteEvent(cmd.Context(), model.EventID(id))
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(events)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Event ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newStaffAccountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage staff accounts (admin)",
	}
	cmd.AddCommand(newStaffAccountsListCmd())
	cmd.AddCommand(newStaffAccountsCreateCmd())
	cmd.AddCommand(newStaffAccountsDeleteCmd())
	return cmd
}

func newStaffAccountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List staff accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := console().ListStaff(cmd.Context())
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(accounts)
			return nil
		},
	}
}

func newStaffAccountsCreateCmd() *cobra.Command {
	var user, pass, role string
	var eventID int64

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			r := model.StaffRole(strings.ToUpper(role))
			switch r {
			case model.RoleAdmin, model.RoleCashier, model.RoleGuard:
			default:
				return fmt.Errorf("--role must be admin, cashier or guard")
			}

			accounts, err := console().CreateStaff(cmd.Context(), portal.CreateStaffRequest{
				Username:        user,
				Password:        pass,
				Role:            r,
				AssignedEventID: model.EventID(eventID),
			})
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(accounts)
			return nil
		},
	}

	cmd.Flags().StringVar(&user, "user", "", "Username (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&role, "role", "", "Role: admin, cashier, guard (required)")
	cmd.Flags().Int64Var(&eventID, "event", 0, "Assigned event ID (guards)")
	_ = cmd.MarkFlagRequired("user")
	_ = cmd.MarkFlagRequired("pass")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newStaffAccountsDeleteCmd() *cobra.Command {
	var id int64

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a staff account",
		RunE: func(cmd *cobra.Command, args []string) error {
			accounts, err := console().DeleteStaff(cmd.Context(), model.StaffID(id))
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(accounts)
			return nil
		},
	}

	cmd.Flags().Int64Var(&id, "id", 0, "Staff account ID (required)")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func newStaffParticipantsCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "participants",
		Short: "Browse or search the participant directory (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			people, err := console().Directory(cmd.Context(), query)
			if err != nil {
				return err
			}
			NewOutput(cfg.Output).Print(people)
			return nil
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Search by name, UID or email")
	return cmd
}
