package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Session commands",
	}

	cmd.AddCommand(newSessionLoginCmd())
	cmd.AddCommand(newSessionLogoutCmd())
	cmd.AddCommand(newSessionShowCmd())
	cmd.AddCommand(newSessionRoomCmd())

	return cmd
}

func newSessionLoginCmd() *cobra.Command {
	var (
		login, pass      string
		version, product int32
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if login == "" || pass == "" {
				return fmt.Errorf("--login and --pass are required")
			}

			req := map[string]any{
				"login":    login,
				"password": pass,
			}
			if version != 0 {
				req["version"] = version
			}
			if product != 0 {
				req["product"] = product
			}
			var result LoginResult

			if err := client.Post("/api/v1/session/login", req, &result); err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(result.SessionToken); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Login name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().Int32Var(&version, "version", 0, "Client build number")
	cmd.Flags().Int32Var(&product, "product", 0, "Product identifier")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newSessionLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the saved token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/session/logout", nil, nil); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newSessionShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Session

			if err := client.Get("/api/v1/session", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newSessionRoomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "room <id>",
		Short: "Move the current session to a room",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var roomID int16
			if _, err := fmt.Sscanf(args[0], "%d", &roomID); err != nil {
				return fmt.Errorf("invalid room ID: %s", args[0])
			}

			req := map[string]int16{"room_id": roomID}
			var result Session

			if err := client.Put("/api/v1/session/room", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
