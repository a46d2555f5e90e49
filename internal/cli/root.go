package cli

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/me/csvbrowse/internal/api"
	"github.com/me/csvbrowse/internal/config"
	"github.com/me/csvbrowse/internal/logging"
	"github.com/me/csvbrowse/internal/session"
	"github.com/me/csvbrowse/internal/store"
)

const sessionFileName = "session.db"

var (
	flagServer    string
	flagConfig    string
	flagLogLevel  string
	flagLogFormat string
	flagYes       bool

	logger *slog.Logger
	cfg    config.Config
	kv     store.KV
	client *api.Client
	sess   *session.Manager
)

// NewRootCmd creates the root cobra command for the csvbrowse CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "csvbrowse",
		Short: "csvbrowse — browse CSV files on a csvbrowse server",
		Long:  "csvbrowse lists, views, charts, and manages CSV files hosted on a csvbrowse server.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(flagConfig)
			if err != nil {
				return err
			}
			if flagServer != "" {
				cfg.ServerURL = flagServer
				cfg.SocketURL, err = config.DeriveSocketURL(flagServer)
				if err != nil {
					return fmt.Errorf("invalid server URL %q: %w", flagServer, err)
				}
			}
			if flagLogLevel != "" {
				cfg.LogLevel = flagLogLevel
			}
			if flagLogFormat != "" {
				cfg.LogFormat = flagLogFormat
			}

			logger = logging.New(cfg.LogLevel, cfg.LogFormat)

			kv, err = store.OpenSQLite(filepath.Join(cfg.DataDir, sessionFileName))
			if err != nil {
				return fmt.Errorf("opening session store: %w", err)
			}

			client = api.NewClient(cfg.ServerURL, logger)
			sess = session.New(kv, client, logger)
			client.SetTokenSource(sess)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if kv != nil {
				kv.Close()
			}
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagServer, "server", "", "Server URL (or CSVBROWSE_SERVER env)")
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.csvbrowse/config.yaml)")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format (text, json)")
	root.PersistentFlags().BoolVarP(&flagYes, "yes", "y", false, "Skip confirmation prompts")

	root.AddCommand(
		newLoginCmd(),
		newSignupCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newListCmd(),
		newViewCmd(),
		newDownloadCmd(),
		newChartCmd(),
		newUploadCmd(),
		newRmCmd(),
		newUsersCmd(),
		newRmUserCmd(),
		newWatchCmd(),
	)

	return root
}

// confirm asks on stdin unless --yes was passed.
func confirm(prompt string) bool {
	if flagYes {
		return true
	}
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// requireSession fails the command when nobody is signed in.
func requireSession() error {
	if sess.Current() == nil {
		return fmt.Errorf("not logged in (run 'csvbrowse login')")
	}
	return nil
}

// requireAdmin fails the command when the signed-in user lacks the
// admin role.
func requireAdmin() error {
	if err := requireSession(); err != nil {
		return err
	}
	if !sess.IsAdmin() {
		return fmt.Errorf("admin role required")
	}
	return nil
}
