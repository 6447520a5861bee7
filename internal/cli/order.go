package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newOrderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "order",
		Short: "Order management commands",
	}

	cmd.AddCommand(newOrderCreateCmd())
	cmd.AddCommand(newOrderListCmd())
	cmd.AddCommand(newOrderShowCmd())
	cmd.AddCommand(newOrderJoinCmd())
	cmd.AddCommand(newOrderLeaveCmd())

	return cmd
}

func newOrderCreateCmd() *cobra.Command {
	var name, memberPass, maintPass string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Found a new order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" {
				return fmt.Errorf("--name is required")
			}

			req := map[string]string{"name": name}
			if memberPass != "" {
				req["member_password"] = memberPass
			}
			if maintPass != "" {
				req["maintenance_password"] = maintPass
			}
			var result Order

			if err := client.Post("/api/v1/orders", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Order name (required)")
	cmd.Flags().StringVar(&memberPass, "member-pass", "", "Password members must present to join")
	cmd.Flags().StringVar(&maintPass, "maint-pass", "", "Password for order maintenance")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newOrderListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result []Order

			if err := client.Get("/api/v1/orders", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newOrderShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show order details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Order

			if err := client.Get(fmt.Sprintf("/api/v1/orders/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newOrderJoinCmd() *cobra.Command {
	var pass string

	cmd := &cobra.Command{
		Use:   "join <id>",
		Short: "Join an order as the logged-in player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{}
			if pass != "" {
				req["password"] = pass
			}
			var result Order

			if err := client.Post(fmt.Sprintf("/api/v1/orders/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&pass, "pass", "", "Member password")

	return cmd
}

func newOrderLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave",
		Short: "Leave the current order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post("/api/v1/orders/leave", nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left order")
			return nil
		},
	}
}
