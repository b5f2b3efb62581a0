package main

import (
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"crosspost/internal/api"
	"crosspost/internal/config"
	"crosspost/internal/connection"
	"crosspost/internal/database"
	"crosspost/internal/logging"
	"crosspost/internal/notify"
	"crosspost/internal/session"
	"crosspost/internal/store"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "crosspost",
	Short:         "Draft, generate, and publish posts to LinkedIn and Twitter/X",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(newSignupCmd())
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newConnectCmd())
	rootCmd.AddCommand(newDisconnectCmd())
	rootCmd.AddCommand(newGenerateCmd())
	rootCmd.AddCommand(newDraftCmd())
	rootCmd.AddCommand(newImageCmd())
	rootCmd.AddCommand(newPublishCmd())
	rootCmd.AddCommand(newHistoryCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "crosspost: %v\n", err)
		os.Exit(1)
	}
}

// app wires configuration, the state database, and the API client for
// a single command invocation.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	db       *sql.DB
	session  *session.Manager
	client   *api.Client
	conns    *connection.Manager
	settings *store.SettingsStore
	drafts   *store.DraftStore
	images   *store.AttachmentStore
	history  *store.HistoryStore
	notifier *notify.Notifier
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger := logging.Setup(cfg.LogLevel)

	if dir := filepath.Dir(cfg.DBPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create state directory: %w", err)
		}
	}
	db, err := database.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	sess := session.NewManager(store.NewSessionStore(db), cfg.TokenPassphrase)
	client := api.NewClient(cfg.APIBaseURL, sess)

	return &app{
		cfg:      cfg,
		logger:   logger,
		db:       db,
		session:  sess,
		client:   client,
		conns:    connection.NewManager(client, store.NewConnectionStore(db), logger),
		settings: store.NewSettingsStore(db),
		drafts:   store.NewDraftStore(db),
		images:   store.NewAttachmentStore(db),
		history:  store.NewHistoryStore(db),
		notifier: notify.New(),
	}, nil
}

func (a *app) close() {
	if err := a.db.Close(); err != nil {
		a.logger.Warn("close database", "error", err)
	}
}

// announce routes a status message through the notifier and renders
// whatever it is currently showing.
func (a *app) announce(w io.Writer, text string, severity notify.Severity) {
	a.notifier.Show(text, severity)
	if msg, ok := a.notifier.Current(); ok {
		fmt.Fprintf(w, "%s %s\n", severityMark(msg.Severity), msg.Text)
	}
}

func severityMark(s notify.Severity) string {
	switch s {
	case notify.SeveritySuccess:
		return "✅"
	case notify.SeverityError:
		return "❌"
	default:
		return "ℹ️"
	}
}

func parsePlatform(arg string) (api.Platform, error) {
	p := api.Platform(arg)
	if !p.Valid() {
		return "", fmt.Errorf("unknown platform %q (expected linkedin or twitter)", arg)
	}
	return p, nil
}
