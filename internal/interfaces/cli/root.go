package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turtacn/JobPortal/internal/config"
	"github.com/turtacn/JobPortal/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/JobPortal/pkg/errors"
)

// Build-time variables injected via ldflags.
var (
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// defaultConfigPaths are probed in order when --config is not given.  With
// none present the configuration comes from the environment alone.
var defaultConfigPaths = []string{
	"./jobportal.yaml",
	"./configs/config.yaml",
	"/etc/jobportal/config.yaml",
}

// RootOptions holds global CLI flags.
type RootOptions struct {
	ConfigPath   string
	LogLevel     string
	OutputFormat string
}

// NewRootCommand creates the root command.  Running it without a subcommand
// starts the API server.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "jobportal",
		Short: "Job portal API server",
		Long: "jobportal serves the job portal REST API under /api/v1 (user, company,\n" +
			"job, application and bookmark areas) behind CORS, request logging and\n" +
			"error-response capture, and connects to PostgreSQL once it is listening.",
		Version:       versionString(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&opts.ConfigPath, "config", "c", "", "config file path (default: ./jobportal.yaml if present, else environment only)")
	pf.StringVar(&opts.LogLevel, "log-level", "", "override log.level (debug, info, warn, error)")
	pf.StringVarP(&opts.OutputFormat, "output", "o", "text", "output format for informational commands (text, json)")

	cmd.AddCommand(
		newServeCommand(opts),
		newRoutesCommand(opts),
		newVersionCommand(opts),
	)
	return cmd
}

// loadConfig resolves configuration with priority: flags > env > file > defaults.
func loadConfig(opts *RootOptions) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	switch path := resolveConfigPath(opts.ConfigPath); path {
	case "":
		cfg, err = config.LoadFromEnv()
	default:
		cfg, err = config.Load(path)
	}
	if err != nil {
		return nil, err
	}

	if opts.LogLevel != "" {
		cfg.Log.Level = strings.ToLower(opts.LogLevel)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, p := range defaultConfigPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// initLogger builds the process logger and installs it as the default.
func initLogger(cfg *config.Config) (logging.Logger, error) {
	logger, err := logging.NewLogger(cfg.Log)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInternal, "logger initialization failed")
	}
	logging.SetDefault(logger)
	return logger, nil
}

// Execute is the main entry point for the CLI application.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	rootCmd := NewRootCommand()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		PrintError(rootCmd, err)
		return err
	}
	return nil
}

// PrintResult outputs data as JSON or as text, depending on --output.
func PrintResult(cmd *cobra.Command, format string, data interface{}) error {
	if strings.EqualFold(format, "json") {
		return printJSON(cmd, data)
	}
	switch v := data.(type) {
	case interface {
		TableHeaders() []string
		TableRows() [][]string
	}:
		fmt.Fprint(cmd.OutOrStdout(), FormatTable(v.TableHeaders(), v.TableRows()))
	case fmt.Stringer:
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	default:
		fmt.Fprintf(cmd.OutOrStdout(), "%+v\n", v)
	}
	return nil
}

func printJSON(cmd *cobra.Command, data interface{}) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// PrintError writes a formatted error message to stderr.
func PrintError(cmd *cobra.Command, err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %s\n", err.Error())
}

// FormatTable renders headers and rows as an aligned ASCII table.
func FormatTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len(h)
	}
	for _, row := range rows {
		for i := 0; i < len(row) && i < len(colWidths); i++ {
			if len(row[i]) > colWidths[i] {
				colWidths[i] = len(row[i])
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i := range headers {
			if i > 0 {
				sb.WriteString("  ")
			}
			val := ""
			if i < len(cells) {
				val = cells[i]
			}
			if i == len(headers)-1 {
				sb.WriteString(val)
			} else {
				sb.WriteString(padRight(val, colWidths[i]))
			}
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	sep := make([]string, len(colWidths))
	for i, w := range colWidths {
		sep[i] = strings.Repeat("-", w)
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return sb.String()
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

//Personal.AI order the ending
