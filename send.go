package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"PollockBoard/internal/logging"
	feed "PollockBoard/internal/net"
)

func newSendCmd() *cobra.Command {
	var (
		to      string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "send <sequence>",
		Short: "Send a command sequence to a running board",
		Long: `Send dials the command feed of a running board and replays the sequence there,
one command per sequence delay. Without --to the board is discovered over mDNS.`,
		Example: `  pollockboard send sgexr
  pollockboard send fff --to 192.168.1.20:8765`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()
			logger := logging.FromContext(ctx)

			addr := to
			if addr == "" {
				logger.Info("looking for a board on the local network")
				found, err := feed.Discover(ctx, timeout/2)
				if err != nil {
					return err
				}
				addr = found
			}

			n, err := feed.Send(ctx, addr, args[0])
			if err != nil {
				return err
			}
			logger.Info("sequence sent", "board", addr, "commands", n)
			return nil
		},
	}

	cmd.Flags().StringVar(&to, "to", "", "board feed address as host:port")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "give up after this long")
	return cmd
}
