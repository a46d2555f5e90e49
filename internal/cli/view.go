package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/me/csvbrowse/internal/browse"
)

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view <file-id>",
		Short: "Show the parsed contents of a CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			id, err := parseFileID(args[0])
			if err != nil {
				return err
			}

			view := browse.NewContentView(client)
			if err := view.Load(cmd.Context(), id); err != nil {
				_, msg := view.State()
				return fmt.Errorf("%s", msg)
			}

			fmt.Println(view.Summary())
			fmt.Println()
			return view.RenderTable(os.Stdout)
		},
	}
}

func newDownloadCmd() *cobra.Command {
	var outDir string

	cmd := &cobra.Command{
		Use:   "download <file-id>",
		Short: "Download the original CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireSession(); err != nil {
				return err
			}
			id, err := parseFileID(args[0])
			if err != nil {
				return err
			}

			filename, err := lookupFilename(cmd, id)
			if err != nil {
				return err
			}

			path, err := browse.DownloadTo(cmd.Context(), client, id, filename, outDir)
			if err != nil {
				return err
			}
			fmt.Printf("Saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "Directory to save into")
	return cmd
}

func parseFileID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid file id %q", arg)
	}
	return id, nil
}

// lookupFilename resolves a file id to its server-side filename via
// the listing.
func lookupFilename(cmd *cobra.Command, id int64) (string, error) {
	files, err := client.ListFiles(cmd.Context())
	if err != nil {
		return "", fmt.Errorf("list files: %w", err)
	}
	for _, f := range files {
		if f.ID == id {
			return f.Filename, nil
		}
	}
	return "", fmt.Errorf("file %d not found", id)
}
