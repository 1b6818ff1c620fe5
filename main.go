package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/katistix/servicetrack/internal/logging"
	"github.com/katistix/servicetrack/internal/tracker"
)

const defaultLogFile = "servicetrack.log"

type rootFlags struct {
	configPath  string
	order       string
	catalogPath string
	logFile     string
	stage       int
	debug       bool
	noColor     bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:           "servicetrack",
		Short:         "Track a home-service order from request to review",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, flags)
			if err != nil {
				return err
			}
			return run(cfg, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.configPath, "config", "c", defaultConfigPath, "Config file (JSON or YAML)")
	cmd.Flags().StringVar(&flags.order, "order", "", "Order number shown in the header")
	cmd.Flags().StringVar(&flags.catalogPath, "catalog", "", "Stage catalog file (JSON or YAML)")
	cmd.Flags().IntVar(&flags.stage, "stage", 0, "Stage to open on")
	cmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable debug logging to "+defaultLogFile)
	cmd.Flags().StringVar(&flags.logFile, "log-file", "", "Write logs to this file")
	cmd.Flags().BoolVar(&flags.noColor, "no-color", false, "Disable colors")
	return cmd
}

// resolveConfig loads the config file and applies flag overrides.
func resolveConfig(cmd *cobra.Command, flags rootFlags) (TrackerConfig, error) {
	cfg, err := loadConfig(flags.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return cfg, err
	}

	if cmd.Flags().Changed("order") {
		cfg.OrderNumber = flags.order
	}
	if cmd.Flags().Changed("catalog") {
		cfg.Catalog = flags.catalogPath
	}
	if cmd.Flags().Changed("stage") {
		cfg.InitialStage = flags.stage
	}
	if flags.debug {
		cfg.LogLevel = logging.LevelDebug
	}
	return cfg, cfg.validate()
}

func run(cfg TrackerConfig, flags rootFlags) error {
	logPath := flags.logFile
	if logPath == "" && flags.debug {
		logPath = defaultLogFile
	}

	var w io.Writer = io.Discard
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		w = f
	}

	logger, err := logging.Configure(cfg.LogLevel, w)
	if err != nil {
		return err
	}
	configureColorProfile(flags.noColor)

	stages, err := cfg.loadCatalog()
	if err != nil {
		return err
	}

	t, err := tracker.New(stages, cfg.trackerOptions(logger)...)
	if err != nil {
		return fmt.Errorf("create tracker: %w", err)
	}
	defer t.Close()

	p := tea.NewProgram(initialModel(t, cfg), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tracker: %w", err)
	}
	return nil
}

// --- MAIN ---
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
