package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/me/csvbrowse/internal/browse"
	"github.com/me/csvbrowse/internal/channel"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Follow the file listing and reprint it on server changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			files := browse.NewFileList(client, sess.IsAdmin(), confirm, logger)
			if err := files.Reload(ctx); err != nil {
				return err
			}
			printFileTable(files.Files())

			listener := channel.New(cfg.SocketURL,
				func(msg channel.Message) {
					if files.HandleMessage(ctx, msg) {
						fmt.Println()
						printFileTable(files.Files())
					}
				},
				channel.WithLogger(logger))
			listener.Start()
			defer listener.Stop()

			fmt.Println("\nWatching for changes (Ctrl-C to stop)...")
			<-ctx.Done()
			return nil
		},
	}
}
