package cli

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/gamerooms/internal/tui"
)

func newPlayCmd() *cobra.Command {
	var opts tui.Options

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Join the server as a player",
		Long: `Open an interactive session over the player WebSocket.

Type /help inside the session for the available commands. Plain text is
sent as chat to the current room.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGTERM)
			defer stop()

			opts.URL = cfg.WebSocketURL()
			if opts.Username == "" {
				opts.Username = cfg.Username
			}
			return tui.Run(ctx, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Username, "username", "u", "", "Display name (env: ROOMCTL_USERNAME)")
	cmd.Flags().StringVar(&opts.JoinRoom, "join", "", "Join this room on connect")

	return cmd
}
