package cmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/zhubert/snappy/internal/api"
	"github.com/zhubert/snappy/internal/app"
	"github.com/zhubert/snappy/internal/config"
	"github.com/zhubert/snappy/internal/logger"
	"github.com/zhubert/snappy/internal/storage"
	"github.com/zhubert/snappy/internal/ui"
)

var (
	debugMode             bool
	quietMode             bool
	hostOverride          string
	logFile               string
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "snappy",
	Short: "Terminal contact list with unread message counts",
	Long: `Snappy shows your chat contacts with a badge for each conversation that
has unread messages. Picking a contact opens the conversation and marks it read.

Store your identity first with "snappy login".`,
	RunE:          runTUI,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", true, "Enable debug logging (on by default)")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
	rootCmd.PersistentFlags().StringVar(&hostOverride, "host", "", "Message service URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", logger.DefaultLogPath, "Debug log file")
}

func initConfig() {
	if logFile != "" {
		if err := logger.Init(logFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	// Set version dynamically
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("snappy %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("snappy %s\n", version)
}

// loadConfig reads .env from the working directory, then the config file
// with environment overrides, then applies --host.
func loadConfig() (*config.Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}
	if hostOverride != "" {
		cfg.SetHost(hostOverride)
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid --host: %w", err)
		}
	}
	return cfg, nil
}

// openIdentities opens the identity store named by cfg. The caller must
// close the returned store.
func openIdentities(cfg *config.Config) (*storage.BadgerStore, *storage.Identities, error) {
	store, err := storage.Open(cfg.StoreDir())
	if err != nil {
		return nil, nil, fmt.Errorf("error opening identity store: %w", err)
	}
	return store, storage.NewIdentities(store, cfg.GetStorageKey()), nil
}

// newClient creates a message service client from cfg.
func newClient(cfg *config.Config) *api.Client {
	client := api.NewClient(cfg.GetHost(), cfg.GetTimeout())
	client.SetToken(cfg.GetToken())
	return client
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	// Ensure logger is closed on exit
	defer logger.Close()
	ui.SetThemeByName(cfg.GetTheme())

	store, identities, err := openIdentities(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	logger.WithComponent("cmd").Info("starting", "version", version, "host", cfg.GetHost())

	// Create and run the app
	m := app.New(ctx, cfg, version, identities, newClient(cfg))
	p := tea.NewProgram(m)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}
