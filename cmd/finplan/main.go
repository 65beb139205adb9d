package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime/debug"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/finplan/internal/calculation"
	"github.com/rgehrsitz/finplan/internal/config"
	"github.com/rgehrsitz/finplan/internal/domain"
	"github.com/rgehrsitz/finplan/internal/logging"
	"github.com/rgehrsitz/finplan/internal/output"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries what PersistentPreRunE resolves for every command
type app struct {
	settings *config.Settings
	logger   *zap.Logger
	engine   *calculation.CalculationEngine
	now      func() time.Time
}

func newRootCmd() *cobra.Command {
	a := &app{now: time.Now}

	root := &cobra.Command{
		Use:   "finplan",
		Short: "Household finance projection CLI",
		Long: "Time-value, retirement, Monte Carlo, goal and financial health projections for a household,\n" +
			"plus what-if scenario comparison.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Settings file (default: ./finplan.yaml or ~/.config/finplan/finplan.yaml)")
	pf.String("env-file", ".env", "Environment file loaded before reading settings")
	pf.String("log-level", "", "Log level (debug, info, warn, error)")
	pf.String("log-format", "", "Log format (console, json)")
	pf.String("log-file", "", "Write logs to this file instead of stderr")
	pf.String("timing", "", "SIP contribution timing (due, ordinary)")
	pf.StringP("format", "f", "", "Output format (console, plain, json, csv, yaml)")
	pf.String("output-dir", "", "Also save the report to this directory")

	root.AddCommand(
		fvCmd(a), sipCmd(a), emiCmd(a), requiredSIPCmd(a), requiredReturnCmd(a),
		monteCarloCmd(a), retirementCmd(a), healthCmd(a), goalsCmd(a),
		calcCmd(a), compareCmd(a), validateCmd(a), versionCmd(),
	)
	return root
}

// init loads .env, settings and the logger, then builds the engine
func (a *app) init(cmd *cobra.Command) error {
	envFile, _ := cmd.Flags().GetString("env-file")
	if err := config.LoadEnvFile(envFile); err != nil {
		return err
	}

	v := config.NewViper()
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	configPath, _ := cmd.Flags().GetString("config")
	settings, err := config.LoadSettings(v, configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(settings.Logging)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}

	timing, err := settings.Timing()
	if err != nil {
		return err
	}

	engine := calculation.NewCalculationEngine()
	engine.Timing = timing
	engine.Workers = settings.MonteCarlo.Workers
	engine.Now = a.now
	engine.SetLogger(logger.Sugar())

	a.settings = settings
	a.logger = logger
	a.engine = engine
	logger.Debug("settings loaded",
		zap.String("op", cmd.Name()),
		zap.String("timing", string(timing)),
		zap.String("format", settings.Output.Format))
	return nil
}

// loadHousehold parses and validates a household file
func (a *app) loadHousehold(path string) (*domain.Household, error) {
	parser := config.NewInputParser()
	h, err := parser.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := parser.ValidateHousehold(h); err != nil {
		return nil, fmt.Errorf("invalid household %s: %w", path, err)
	}
	a.logger.Debug("household loaded", zap.String("op", "load_household"), zap.String("path", path),
		zap.Int("assets", len(h.Assets)), zap.Int("goals", len(h.Goals)))
	return h, nil
}

func (a *app) newReport(title string) *output.Report {
	return output.NewReport(title, a.now())
}

// render writes r to w in the configured format and optionally saves a copy
func (a *app) render(w io.Writer, r *output.Report) error {
	format := a.settings.Output.Format
	if err := output.Write(w, format, r); err != nil {
		return err
	}
	if dir := a.settings.Output.Dir; dir != "" {
		f := output.GetFormatterByName(format)
		ext := f.Name()
		if ext == "console" || ext == "plain" {
			ext = "txt"
		}
		name, err := output.WriteFormatted(f, r, dir, ext)
		if err != nil {
			return err
		}
		a.logger.Info("report saved", zap.String("op", "render"), zap.String("path", name))
	}
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return nil
		},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finplan %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.GoVersion
	}
	return ""
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
