package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"notasmart/cmd/notasmart/calculator"
	"notasmart/cmd/notasmart/ui"
	"notasmart/internal/config"
	"notasmart/internal/ledger"
	"notasmart/internal/logging"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "notasmart",
	Short: "NotaSmart - weighted grade average calculator",
	Long: `NotaSmart computes a weighted course average from (score, percentage)
pairs on a 0-5, 0-10 or 0-100 scale, and tells you the grade you still need
on the remaining percentage to reach your target.

Run without arguments to start the interactive calculator.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive calculator owns the terminal and configures
		// logging from the config file instead.
		if cmd == cmd.Root() {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logging.SetRoot(logger, logging.Options{Level: zcfg.Level.String(), DebugMode: verbose})
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runInteractive,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.DefaultConfig()
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cfg.Name, cfg.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: "+config.DefaultPath()+")")

	rootCmd.AddCommand(calcCmd)
	rootCmd.AddCommand(scalesCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func resolveConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return config.DefaultPath()
}

// loadConfig loads and validates the active config file.
func loadConfig() (*config.Config, error) {
	path := resolveConfigPath()
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// runInteractive launches the calculator TUI.
func runInteractive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logOpts := cfg.Logging.Options()
	if verbose {
		logOpts.DebugMode = true
		logOpts.Level = "debug"
	}
	// Never log onto the alternate screen.
	if logOpts.DebugMode && logOpts.File == "" {
		dir := filepath.Dir(resolveConfigPath())
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		logOpts.File = filepath.Join(dir, "notasmart.log")
	}
	if err := logging.Initialize(logOpts); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() { _ = logging.Sync() }()

	l, err := cfg.NewLedger(ledger.WithLogger(logging.Get(logging.CategoryLedger)))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var updates <-chan *config.Config
	watcher, err := config.NewWatcher(resolveConfigPath())
	if err == nil {
		err = watcher.Start(ctx)
	}
	if err != nil {
		logging.Get(logging.CategoryConfig).Warn("config reload disabled", zap.Error(err))
	} else {
		defer func() { _ = watcher.Stop() }()
		updates = watcher.Updates()
	}

	model := calculator.New(calculator.Options{
		Ledger:        l,
		Styles:        ui.NewStyles(ui.ThemeByName(cfg.UI.Theme)),
		WordWrap:      cfg.UI.WordWrap,
		ConfigUpdates: updates,
	})
	logging.Boot("starting calculator",
		zap.String("session", model.SessionID()),
		zap.String("scale", l.Scale().Name))

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("calculator exited: %w", err)
	}
	return nil
}
