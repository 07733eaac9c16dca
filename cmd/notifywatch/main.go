// Command notifywatch follows a user's notification stream from a terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	notifications_inbox "opensourcetogether/internal/features/notifications/inbox"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

type rootOptions struct {
	Server string
	Token  string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "notifywatch",
		Short:         "Watch and manage OpenSource Together notifications",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Token == "" {
				opts.Token = os.Getenv("OST_TOKEN")
			}
			if opts.Token == "" {
				return fmt.Errorf("a session token is required: pass --token or set OST_TOKEN")
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Server, "server", "http://localhost:4005", "backend base URL")
	cmd.PersistentFlags().StringVar(&opts.Token, "token", "", "session token (defaults to $OST_TOKEN)")

	cmd.AddCommand(newWatchCommand(opts))
	cmd.AddCommand(newReadCommand(opts))
	cmd.AddCommand(newReadAllCommand(opts))

	return cmd
}

func newWatchCommand(rootOpts *rootOptions) *cobra.Command {
	var reconnectDelay time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print unread notifications, then stream new ones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newAPIClient(rootOpts.Server, rootOpts.Token)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			w := &watcher{
				api:    api,
				inbox:  notifications_inbox.New(),
				out:    cmd.OutOrStdout(),
				logger: slog.New(slog.NewTextHandler(os.Stderr, nil)),
			}

			return w.Run(ctx, reconnectDelay)
		},
	}

	cmd.Flags().DurationVar(&reconnectDelay, "reconnect-delay", 5*time.Second, "wait between reconnect attempts")

	return cmd
}

func newReadCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read <notification-id>",
		Short: "Mark one notification as read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("invalid notification id %q: %w", args[0], err)
			}

			api, err := newAPIClient(rootOpts.Server, rootOpts.Token)
			if err != nil {
				return err
			}

			notification, err := api.MarkRead(cmd.Context(), id)
			if err != nil {
				return err
			}

			if notification.ReadAt == nil {
				return fmt.Errorf("server did not mark %s as read", notification.ID)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "marked %s read at %s\n",
				notification.ID, notification.ReadAt.Format(time.RFC3339))
			return nil
		},
	}
}

func newReadAllCommand(rootOpts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "read-all",
		Short: "Mark every unread notification as read",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := newAPIClient(rootOpts.Server, rootOpts.Token)
			if err != nil {
				return err
			}

			updated, err := api.MarkAllRead(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "marked %d notification(s) read\n", updated)
			return nil
		},
	}
}
