package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/SXPXL/eventflow/internal/catalog"
	"github.com/SXPXL/eventflow/internal/model"
	"github.com/SXPXL/eventflow/internal/portal"
)

func newRegisterCmd() *cobra.Command {
	var name, email, phone, college string
	var uid string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register as a participant and receive a UID",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := portal.RegisterParticipantRequest{
				Name:    name,
				Email:   email,
				Phone:   phone,
				College: college,
			}

			out := NewOutput(cfg.Output)
			if uid != "" {
				// Completing a profile created by a team leader
				p, err := client.UpdateParticipant(cmd.Context(), model.UID(uid), req)
				if err != nil {
					return err
				}
				out.PrintMessage(fmt.Sprintf("Profile completed for %s (%s)", p.Name, p.UID))
				return nil
			}

			result, err := client.RegisterParticipant(cmd.Context(), req)
			if err != nil {
				return err
			}
			if err := sess.SetActiveUID(result.UID); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}
			out.PrintMessage(fmt.Sprintf("Registered. Your UID is %s; keep it for gate entry.", result.UID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Full name (required)")
	cmd.Flags().StringVar(&email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&college, "college", "", "College name")
	cmd.Flags().StringVar(&uid, "uid", "", "Existing UID, to complete an incomplete profile")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func newLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <uid>",
		Short: "Resume a session with an existing UID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid := model.UID(args[0])
			lookup, err := client.CheckUID(cmd.Context(), uid)
			if err != nil {
				return err
			}
			if !lookup.Exists {
				return model.ErrParticipantNotFound
			}
			if err := sess.SetActiveUID(uid); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}
			NewOutput(cfg.Output).PrintMessage(fmt.Sprintf("Welcome back, %s", lookup.Participant.Name))
			return nil
		},
	}
}

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard [uid]",
		Short: "Show your registrations and the available events",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uid := sess.ActiveUID()
			if len(args) == 1 {
				uid = model.UID(args[0])
			}
			if uid == "" {
				return fmt.Errorf("no UID given and none remembered; pass one or register first")
			}

			svc := catalog.New(client, logger)
			dash, err := svc.Dashboard(cmd.Context(), uid)
			if err != nil {
				return err
			}
			if err := sess.SetActiveUID(uid); err != nil {
				return fmt.Errorf("saving session: %w", err)
			}

			NewOutput(cfg.Output).Print(dash)
			return nil
		},
	}
	return cmd
}
