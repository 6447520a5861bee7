package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerCreateCmd())
	cmd.AddCommand(newPlayerListCmd())
	cmd.AddCommand(newPlayerShowCmd())
	cmd.AddCommand(newPlayerBanCmd())
	cmd.AddCommand(newPlayerUnbanCmd())
	cmd.AddCommand(newPlayerAdminCmd())
	cmd.AddCommand(newPlayerDocumentCmd())
	cmd.AddCommand(newPlayerBuddyCmd())
	cmd.AddCommand(newPlayerResultCmd())

	return cmd
}

func newPlayerCreateCmd() *cobra.Command {
	var login, pass, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new player account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if login == "" || pass == "" {
				return fmt.Errorf("--login and --pass are required")
			}

			req := map[string]string{
				"login":    login,
				"password": pass,
			}
			if name != "" {
				req["name"] = name
			}
			var result Player

			if err := client.Post("/api/v1/players", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&login, "login", "", "Login name (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	cmd.Flags().StringVar(&name, "name", "", "Display name (default: login)")
	_ = cmd.MarkFlagRequired("login")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newPlayerListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all players",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Player

			if err := client.Get("/api/v1/players", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a player (defaults to the logged-in player)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/api/v1/players/me"
			if len(args) == 1 {
				path = fmt.Sprintf("/api/v1/players/%s", args[0])
			}

			var result Player

			if err := client.Get(path, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerBanCmd() *cobra.Command {
	var hours int

	cmd := &cobra.Command{
		Use:   "ban <id>",
		Short: "Ban a player (admin only)",
		Long: `Ban a player from logging in. With --hours 0 the ban is
indefinite; otherwise it lifts automatically once the duration passes.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if hours < 0 {
				return fmt.Errorf("--hours must not be negative")
			}

			req := map[string]int64{"duration_seconds": int64(hours) * 3600}
			var result Player

			if err := client.Post(fmt.Sprintf("/api/v1/players/%s/ban", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().IntVar(&hours, "hours", 0, "Ban duration in hours (0 = indefinite)")

	return cmd
}

func newPlayerUnbanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unban <id>",
		Short: "Lift a player's ban (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Delete(fmt.Sprintf("/api/v1/players/%s/ban", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayerAdminCmd() *cobra.Command {
	var revoke bool

	cmd := &cobra.Command{
		Use:   "admin <id>",
		Short: "Grant or revoke admin privileges (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]bool{"admin": !revoke}
			var result Player

			if err := client.Put(fmt.Sprintf("/api/v1/players/%s/admin", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().BoolVar(&revoke, "revoke", false, "Revoke instead of grant")

	return cmd
}

func newPlayerDocumentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "document <id>",
		Short: "Dump a player's full record document (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result map[string]any

			if err := client.Get(fmt.Sprintf("/api/v1/players/%s/document", args[0]), &result); err != nil {
				return err
			}

			// Documents are always JSON; there is no text rendering
			out := NewOutput("json")
			out.Print(result)
			return nil
		},
	}
}

func newPlayerBuddyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "buddy",
		Short: "Manage the logged-in player's buddy list",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "add <id>",
		Short: "Add a buddy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Put(fmt.Sprintf("/api/v1/players/me/buddies/%s", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "remove <id>",
		Short: "Remove a buddy",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Player

			if err := client.Delete(fmt.Sprintf("/api/v1/players/me/buddies/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	})

	return cmd
}

func newPlayerResultCmd() *cobra.Command {
	var (
		gameType        int16
		ranked          bool
		standing        string
		damageInflicted uint32
		damageReceived  uint32
		disconnected    bool
		pointsDelta     int32
		newRank         int16
		opponents       []uint
	)

	cmd := &cobra.Command{
		Use:   "result",
		Short: "Record a game result for the logged-in player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if standing == "" {
				return fmt.Errorf("--standing is required")
			}

			opponentIDs := make([]uint32, len(opponents))
			for i, id := range opponents {
				opponentIDs[i] = uint32(id)
			}

			req := map[string]any{
				"game_type":        gameType,
				"ranked":           ranked,
				"standing":         standing,
				"damage_inflicted": damageInflicted,
				"damage_received":  damageReceived,
				"disconnected":     disconnected,
				"points_delta":     pointsDelta,
				"new_rank":         newRank,
				"opponents":        opponentIDs,
			}
			var result Player

			if err := client.Post("/api/v1/players/me/results", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().Int16Var(&gameType, "game-type", 0, "Game type index")
	cmd.Flags().BoolVar(&ranked, "ranked", false, "Record against the ranked ledger")
	cmd.Flags().StringVar(&standing, "standing", "", "Result standing: win, loss or tie (required)")
	cmd.Flags().Uint32Var(&damageInflicted, "damage-inflicted", 0, "Damage inflicted")
	cmd.Flags().Uint32Var(&damageReceived, "damage-received", 0, "Damage received")
	cmd.Flags().BoolVar(&disconnected, "disconnected", false, "Player disconnected mid-game")
	cmd.Flags().Int32Var(&pointsDelta, "points", 0, "Points delta")
	cmd.Flags().Int16Var(&newRank, "rank", 0, "New caste rank")
	cmd.Flags().UintSliceVar(&opponents, "opponent", nil, "Opponent player ID (repeatable)")
	_ = cmd.MarkFlagRequired("standing")

	return cmd
}
