package cli

import (
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

func newRoomsCmd() *cobra.Command {
	var (
		gameType string
		openOnly bool
	)

	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "List live rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			if gameType != "" {
				query.Set("gameType", gameType)
			}
			if openOnly {
				query.Set("open", strconv.FormatBool(true))
			}

			var result RoomList
			if err := client.Get(cmd.Context(), "/api/v1/rooms", query, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&gameType, "game-type", "", "Only rooms of this game type")
	cmd.Flags().BoolVar(&openOnly, "open", false, "Only rooms that can still be joined")

	return cmd
}

func newRoomCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "room <id>",
		Short: "Show one room with its players",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result RoomDetail
			if err := client.Get(cmd.Context(), "/api/v1/rooms/"+url.PathEscape(args[0]), nil, &result); err != nil {
				return err
			}

			NewOutput(cfg.Output, cmd.OutOrStdout()).Print(result)
			return nil
		},
	}
}
