package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/me/csvbrowse/internal/browse"
	"github.com/me/csvbrowse/internal/format"
	"github.com/me/csvbrowse/pkg/model"
)

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <path>",
		Short: "Upload a CSV file (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}

			path := args[0]
			f, err := os.Open(path)
			if err != nil {
				return fmt.Errorf("open %s: %w", path, err)
			}
			defer f.Close()

			files := browse.NewFileList(client, true, confirm, logger)
			summary, err := files.Upload(cmd.Context(), filepath.Base(path), f)
			if err != nil {
				return fmt.Errorf("upload: %s", model.ErrorDetail(err, err.Error()))
			}

			fmt.Printf("Uploaded %s (id %d, %s)\n", summary.Filename, summary.ID, format.Bytes(summary.Size))
			return nil
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <file-id>",
		Short: "Delete a CSV file (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			id, err := parseFileID(args[0])
			if err != nil {
				return err
			}

			files := browse.NewFileList(client, true, confirm, logger)
			if err := files.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted file %d\n", id)
			return nil
		},
	}
}

func newUsersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users",
		Short: "List user accounts (admin only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}

			users, err := client.ListUsers(cmd.Context())
			if err != nil {
				return fmt.Errorf("list users: %w", err)
			}
			if len(users) == 0 {
				fmt.Println("No users found.")
				return nil
			}

			fmt.Printf("%-6s  %-30s  %s\n", "ID", "USERNAME", "ROLE")
			fmt.Printf("%-6s  %-30s  %s\n", "--", "--------", "----")
			for _, u := range users {
				role := string(u.Role)
				if u.IsAdmin() {
					role += " (protected)"
				}
				fmt.Printf("%-6d  %-30s  %s\n", u.ID, u.Username, role)
			}
			return nil
		},
	}
}

func newRmUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm-user <user-id>",
		Short: "Delete a user account (admin only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireAdmin(); err != nil {
				return err
			}
			id, err := parseFileID(args[0])
			if err != nil {
				return err
			}

			users := browse.NewUserList(client, confirm, logger)
			if err := users.Reload(cmd.Context()); err != nil {
				return err
			}
			if err := users.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Printf("Deleted user %d\n", id)
			return nil
		},
	}
}
