package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"bilingual-export/internal/config"
	"bilingual-export/internal/format"
	"bilingual-export/internal/pipeline"
	"bilingual-export/internal/report"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// options holds the flags shared by every command.
type options struct {
	logLevel     string
	logFormat    string
	formatHint   string
	reportFormat string
}

// Execute runs the CLI application.
func Execute() {
	if err := NewRootCmd(os.Stdin, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds the command tree reading from in and writing reports to
// out and logs to errOut.
func NewRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	// Defaults until PersistentPreRunE applies the flags; config.Load logs.
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: errOut})
	cfg := config.Load()
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "bilingual-export",
		Short: "Export XLIFF and PO translation files to tab-separated text and XLSX",
		Long: `Extracts source/target segment pairs from XLIFF-family files (.xlf, .sdlxliff,
.mxliff, .mqxliff) and gettext catalogues (.po), strips inline markup, drops
empty pairs and writes <name>.txt and <name>.xlsx next to the input file.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(errOut, opts.logLevel, opts.logFormat)
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)

	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", cfg.LogLevel, "Log level: trace, debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", cfg.LogFormat, "Log format: console or json")

	rootCmd.AddCommand(exportCmd(opts, cfg))
	rootCmd.AddCommand(inspectCmd(opts, cfg))
	rootCmd.AddCommand(formatsCmd())

	return rootCmd
}

func exportCmd(opts *options, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file]",
		Short: "Write <name>.txt and <name>.xlsx for a translation file",
		Long: `Parses the translation file and writes a tab-separated text file headed by the
language tags and a spreadsheet with "Source" and "Target" columns. Without a
file argument the path is read from standard input.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var picker pipeline.FilePicker
			if len(args) == 1 {
				picker = pipeline.StaticPicker(args[0])
			} else {
				picker = &pipeline.PromptPicker{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
			}
			return runExport(cmd.OutOrStdout(), picker, opts)
		},
	}
	addPipelineFlags(cmd, opts, cfg)
	return cmd
}

func inspectCmd(opts *options, cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Parse a translation file and report what an export would contain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.OutOrStdout(), args[0], opts)
		},
	}
	addPipelineFlags(cmd, opts, cfg)
	return cmd
}

func formatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "List supported file extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kind := range []format.Kind{format.XLIFF, format.PO} {
				fmt.Fprintf(cmd.OutOrStdout(), "%-6s %s\n", kind, strings.Join(format.Extensions(kind), " "))
			}
			return nil
		},
	}
}

func addPipelineFlags(cmd *cobra.Command, opts *options, cfg *config.Config) {
	cmd.Flags().StringVar(&opts.formatHint, "format", "", "Force the input format: xliff, po or a file extension")
	cmd.Flags().StringVar(&opts.reportFormat, "report", cfg.ReportFormat, "Report format on stdout: text, yaml, json or none")
}

// runExport handles the `export` command.
func runExport(out io.Writer, picker pipeline.FilePicker, opts *options) error {
	notifier, err := newNotifier(out, opts.reportFormat)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(picker, notifier, opts.formatHint)
	if _, err := runner.Run(); err != nil {
		if errors.Is(err, pipeline.ErrNoSelection) {
			return nil
		}
		return err
	}
	return nil
}

// runInspect handles the `inspect` command.
func runInspect(out io.Writer, path string, opts *options) error {
	reportFormat, err := report.ParseFormat(opts.reportFormat)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, opts.formatHint)
	outcome, err := runner.Inspect(path)
	if err != nil {
		log.Error().Err(err).Str("input", path).Str("kind", report.ErrorKind(err)).Msg("Inspect failed")
		return err
	}
	return report.Render(out, reportFormat, report.Summarize(outcome))
}

func newNotifier(out io.Writer, reportFormat string) (pipeline.Notifier, error) {
	f, err := report.ParseFormat(reportFormat)
	if err != nil {
		return nil, err
	}
	return report.Multi{
		report.LogNotifier{},
		&report.WriterNotifier{W: out, Format: f},
	}, nil
}

// setupLogging configures the global zerolog logger.
func setupLogging(w io.Writer, level, logFormat string) error {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return fmt.Errorf("parse log level: %w", err)
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	switch strings.ToLower(logFormat) {
	case "json":
		log.Logger = zerolog.New(w).With().Timestamp().Logger()
	case "console", "":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: w})
	default:
		return fmt.Errorf("unknown log format %q (want console or json)", logFormat)
	}
	return nil
}
