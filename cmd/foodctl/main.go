package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/msmkdenis/yap-foodorder/internal/apperrors"
	"github.com/msmkdenis/yap-foodorder/internal/client"
	orderdto "github.com/msmkdenis/yap-foodorder/internal/order/handler/dto"
	"github.com/msmkdenis/yap-foodorder/internal/order/validation"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		server  string
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:          "foodctl",
		Short:        "Command line client of the food order service",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&server, "server", "http://localhost:8080", "Base URL of the food order service")
	root.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "Request timeout")

	newClient := func() *client.Client {
		return client.New(server, timeout)
	}

	orders := &cobra.Command{
		Use:   "orders",
		Short: "Submit and list orders",
	}
	orders.AddCommand(newListCmd(newClient), newSubmitCmd(newClient))
	root.AddCommand(orders)

	return root
}

func newListCmd(newClient func() *client.Client) *cobra.Command {
	var secret string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every stored order (admin)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if secret == "" {
				secret = os.Getenv("ADMIN_SECRET")
			}

			list, err := newClient().ListOrders(cmd.Context(), secret)
			if errors.Is(err, apperrors.ErrUnauthorized) {
				return errors.New("incorrect password")
			}
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tEMAIL\tCARD\tEXPIRY\tCVV\tCREATED")
			for _, o := range list {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n", o.ID, o.Name, o.Email, o.CardNumber, o.Expiry, o.CVV, o.CreatedAt)
			}
			return w.Flush()
		},
	}
	cmd.Flags().StringVar(&secret, "secret", "", "Admin secret, defaults to $ADMIN_SECRET")

	return cmd
}

func newSubmitCmd(newClient func() *client.Client) *cobra.Command {
	var request orderdto.OrderRequest

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit an order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			created, err := newClient().SubmitOrder(cmd.Context(), request)

			var validationErr *apperrors.ValidationError
			if errors.As(err, &validationErr) {
				messages := make([]string, 0, len(validationErr.Fields))
				for _, field := range validationErr.Fields {
					messages = append(messages, validation.Message(field))
				}
				return errors.New(strings.Join(messages, "\n"))
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s (order #%d)\n", created.Message, created.ID)
			return nil
		},
	}
	cmd.Flags().StringVar(&request.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&request.Email, "email", "", "Email address")
	cmd.Flags().StringVar(&request.CardNumber, "card", "", "Credit card number (16 digits)")
	cmd.Flags().StringVar(&request.Expiry, "expiry", "", "Expiry date (MM/YY)")
	cmd.Flags().StringVar(&request.CVV, "cvv", "", "CVV (3 digits)")

	return cmd
}
