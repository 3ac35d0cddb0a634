// Package cmd wires configuration, logging and the backend client into the
// greenpath commands.
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"greenpath/internal/actions"
	"greenpath/internal/api"
	"greenpath/internal/config"
	"greenpath/internal/logging"
	"greenpath/internal/query"
	"greenpath/internal/ui"
)

// options holds the persistent flag values.
type options struct {
	configPath string
	apiURL     string
	logLevel   string
	// interactive allows first-run onboarding. Tests turn it off.
	interactive bool
}

// Execute runs the root command and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree. The root command opens the dashboard.
func NewRootCmd(version string) *cobra.Command {
	opts := &options{interactive: true}

	root := &cobra.Command{
		Use:           "greenpath",
		Short:         "Green Path customer dashboard",
		Long:          "Schedule waste pickups, donate items, join community events and follow\nyour impact with Green Path, right from the terminal.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDashboard(opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: ~/.greenpath/config.yaml, or $"+config.PathEnv+")")
	root.PersistentFlags().StringVar(&opts.apiURL, "api", "", "Green Path API base URL (overrides config)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")

	root.AddCommand(newDonateCmd(opts))
	root.AddCommand(newDevServerCmd(opts))
	root.AddCommand(newVersionCmd(version))
	return root
}

// loadConfig reads .env files and the config file, runs first-run setup when
// there is no file yet, then applies flag overrides.
func loadConfig(opts *options) (*config.Config, string, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, "", err
	}
	path, explicit, err := config.Resolve(opts.configPath)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, "", err
	}

	if opts.interactive && shouldRunOnboarding(path) {
		saved, err := runOnboarding(path, config.Settings{
			BaseURL: cfg.API.BaseURL,
			Profile: cfg.Profile,
		})
		if err != nil {
			return nil, "", fmt.Errorf("failed to run onboarding: %w", err)
		}
		if saved {
			if cfg, err = config.Load(path, true); err != nil {
				return nil, "", err
			}
		}
	}

	if opts.apiURL != "" {
		cfg.API.BaseURL = opts.apiURL
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", fmt.Errorf("config: validate: %w", err)
	}
	return cfg, path, nil
}

// session is what an interactive command needs to talk to the backend.
type session struct {
	deps    actions.Deps
	log     zerolog.Logger
	dir     string
	logFile io.Closer
}

func (s *session) Close() {
	if s.logFile != nil {
		_ = s.logFile.Close()
	}
}

// openSession builds the logger, REST client and query cache. The UI owns
// the terminal, so logs go to the configured file.
func openSession(opts *options) (*session, error) {
	cfg, path, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	f, err := logging.OpenFile(cfg.Log.File)
	if err != nil {
		return nil, err
	}
	log, err := logging.New(f, cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	client := api.NewClient(cfg.Client(), log)
	cache, err := query.NewCache(client.Fetch, query.Options{Size: cfg.Cache.Size, Logger: log})
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}

	log.Info().Str("api", client.BaseURL()).Int64("user", cfg.Profile.UserID).Msg("session started")
	return &session{
		deps: actions.Deps{
			Backend: client,
			Cache:   cache,
			Profile: cfg.UserProfile(),
			Now:     time.Now,
		},
		log:     log,
		dir:     filepath.Dir(path),
		logFile: f,
	}, nil
}

func runDashboard(opts *options) error {
	s, err := openSession(opts)
	if err != nil {
		return err
	}
	defer s.Close()

	m := ui.New(s.deps, ui.Options{
		PrefsPath: filepath.Join(s.dir, "ui_prefs.json"),
		Logger:    s.log,
	})
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
