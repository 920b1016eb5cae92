// Package main provides the CLI entrypoint for sortednames.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/sortednames/internal/config"
	"github.com/verte-zerg/sortednames/internal/model"
	"github.com/verte-zerg/sortednames/internal/names"
	"github.com/verte-zerg/sortednames/internal/stats"
	"github.com/verte-zerg/sortednames/internal/statsui"
)

const (
	defaultNormalize   = true
	defaultLabelPeriod = 5
	defaultTop         = stats.DefaultTopN
	defaultWorkers     = 1
)

const (
	chartTitle  = "Percent of Sorted Names per Year"
	chartYLabel = "Percentage of lex. sorted names"
	chartXLabel = "Year"
)

var (
	configPath  string
	namePath    string
	normalize   bool
	labelPeriod int
	topN        int
	workers     int
	verbose     bool

	plotInteractive bool
	plotMarkdown    bool
	plotWidth       int
	plotHeight      int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "sortednames",
		Short:         "Find names with alphabetically sorted letters and chart them per year",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runAnalyzeCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultConfigPath(), "config file (.toml, .yaml)")
	flags.StringVar(&namePath, "name-path", config.DefaultNamePath(), "representative year file; its directory is scanned for yobYYYY.txt files")
	flags.BoolVar(&normalize, "normalize", defaultNormalize, "weight sorted names by count instead of counting records")
	flags.IntVar(&labelPeriod, "label-period", defaultLabelPeriod, "label years divisible by this value (0 disables)")
	flags.IntVar(&topN, "top", defaultTop, "number of longest sorted names to print")
	flags.IntVar(&workers, "workers", defaultWorkers, "year files loaded concurrently")
	flags.BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newTopCmd())
	rootCmd.AddCommand(newPlotCmd())
	rootCmd.AddCommand(newYearsCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

// runAnalyzeCmd prints the longest sorted names and the yearly chart.
func runAnalyzeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	report, err := stats.BuildReport(cmd.Context(), cfg, stats.Options{Logger: newLogger(cmd)})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderTopNames(out, report.Top); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := fmt.Fprintln(out); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderChart(out, report.Series, chartOptions(0, 0)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newTopCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "top",
		Short: "Print the longest sorted names of the name file",
		Args:  cobra.NoArgs,
		RunE:  runTopCmd,
	}
}

func runTopCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	records, err := names.LoadFile(cfg.NamePath)
	if err != nil {
		return err
	}
	newLogger(cmd).Debug("loaded name file", "path", cfg.NamePath, "records", len(records))
	if err := stats.RenderTopNames(cmd.OutOrStdout(), stats.TopNLongestSorted(records, cfg.Top)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Chart the percent of sorted names per year",
		Args:  cobra.NoArgs,
		RunE:  runPlotCmd,
	}
	cmd.Flags().BoolVarP(&plotInteractive, "interactive", "i", false, "open the interactive viewer")
	cmd.Flags().BoolVar(&plotMarkdown, "markdown", false, "write a Markdown report instead of a chart")
	cmd.Flags().IntVar(&plotWidth, "width", 0, "plot width in columns (default: terminal width)")
	cmd.Flags().IntVar(&plotHeight, "height", 0, "plot height in rows")
	cmd.MarkFlagsMutuallyExclusive("interactive", "markdown")
	return cmd
}

func runPlotCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if plotWidth < 0 || plotHeight < 0 {
		return fmt.Errorf("--width and --height must be >= 0")
	}
	report, err := stats.BuildReport(cmd.Context(), cfg, stats.Options{Logger: newLogger(cmd)})
	if err != nil {
		return err
	}
	switch {
	case plotInteractive:
		// The viewer owns the screen; re-summarize quietly.
		report.Options.Logger = buildLogger(io.Discard, false)
		ui := statsui.NewModel(report, chartOptions(0, 0))
		program := tea.NewProgram(ui, tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run viewer: %w", err)
		}
		return nil
	case plotMarkdown:
		if err := stats.WriteMarkdown(cmd.OutOrStdout(), report); err != nil {
			return fmt.Errorf("failed to write markdown: %w", err)
		}
		return nil
	default:
		if err := stats.RenderChart(cmd.OutOrStdout(), report.Series, chartOptions(plotWidth, plotHeight)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}
}

func newYearsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "Print the per-year series as a table",
		Args:  cobra.NoArgs,
		RunE:  runYearsCmd,
	}
}

func runYearsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	report, err := stats.BuildReport(cmd.Context(), cfg, stats.Options{Logger: newLogger(cmd)})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Series); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderSeriesTable(out, report.Series); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig writes the commented template unless path already exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(configPath)
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "name-path", &namePath, fileCfg.NamePath)
	applyBoolConfig(cmd, "normalize", &normalize, fileCfg.Normalize)
	applyIntConfig(cmd, "label-period", &labelPeriod, fileCfg.LabelPeriod)
	applyIntConfig(cmd, "top", &topN, fileCfg.Top)
	applyIntConfig(cmd, "workers", &workers, fileCfg.Workers)

	cfg := model.Config{
		NamePath:    namePath,
		Normalize:   normalize,
		LabelPeriod: labelPeriod,
		Top:         topN,
		Workers:     workers,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.NamePath) == "" {
		return fmt.Errorf("--name-path must not be empty")
	}
	if cfg.LabelPeriod < 0 {
		return fmt.Errorf("--label-period must be >= 0")
	}
	if cfg.Top < 0 {
		return fmt.Errorf("--top must be >= 0")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("--workers must be > 0")
	}
	return nil
}

func chartOptions(width, height int) stats.ChartOptions {
	return stats.ChartOptions{
		Title:  chartTitle,
		YLabel: chartYLabel,
		XLabel: chartXLabel,
		Width:  width,
		Height: height,
	}
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	return buildLogger(cmd.ErrOrStderr(), verbose)
}

func buildLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# sortednames configuration
# Uncomment a value to enable it. CLI flags override config values.

# name-path = %q   # Representative year file; its directory holds yobYYYY.txt files
# normalize = %t              # Weight sorted names by count instead of counting records
# label-period = %d            # Label years divisible by this value (0 disables)
# top = %d                     # Number of longest sorted names to print
# workers = %d                 # Year files loaded concurrently
`,
		config.DefaultNamePath(),
		defaultNormalize,
		defaultLabelPeriod,
		defaultTop,
		defaultWorkers,
	)
}
