package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/vsinha/prodseq/pkg/infrastructure/config"
	"github.com/vsinha/prodseq/pkg/infrastructure/logging"
)

// app carries state shared by every subcommand once the root pre-run has loaded it
type app struct {
	config *config.Config
	logger *logrus.Logger
}

// NewRootCommand builds the prodseq command tree
func NewRootCommand(version string) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "prodseq",
		Short: "Production sequencing for manufacturing cells",
		Long: `prodseq reads a part catalog and a customer demand table, simulates
inventory against demand for every part of a cell and family, and prints the
top three parts to produce next, in containers.

Within a day the displayed order is kept stable; it is only replaced when a
shortage earlier than anything already shown appears.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default: ./prodseq.yaml or ~/.config/prodseq/prodseq.yaml)")
	flags.String("catalog", "", "part catalog file (.csv or .xlsx)")
	flags.String("demand", "", "demand table file (.csv or .xlsx)")
	flags.String("sheet", "", "worksheet to read from .xlsx inputs (default: active sheet)")
	flags.Int("look-ahead-days", 21, "calendar days of demand to simulate")
	flags.String("date-layout", "", "Go time layout of demand date columns (default 1/2/2006)")
	flags.String("demand-type", "", "demand type tag in scope (default \"Customer Releases\")")
	flags.String("refresh-column", "", "demand column holding the refresh timestamp")
	flags.String("format", "", "output format: text, json, yaml, csv (default text)")
	flags.String("output-dir", "", "directory to also save results to")
	flags.String("log-level", "", "log level: debug, info, warn, error (default info)")
	flags.String("log-format", "", "log format: text or json (default text)")

	root.AddCommand(
		newSequenceCommand(a),
		newCellsCommand(a),
		newAuditCommand(a),
		newWatchCommand(a),
		newVersionCommand(version),
	)
	return root
}

// load reads configuration with flag > env > file > default precedence and
// attaches the logger to the command context
func (a *app) load(cmd *cobra.Command) error {
	cfgFile, _ := cmd.Flags().GetString("config")
	v, err := config.New(cfgFile)
	if err != nil {
		return err
	}

	var bindErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" || f.Name == "help" || bindErr != nil {
			return
		}
		bindErr = v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f)
	})
	if bindErr != nil {
		return fmt.Errorf("failed to bind flags: %w", bindErr)
	}

	cfg, err := config.Load(v)
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	if used := v.ConfigFileUsed(); used != "" {
		logger.WithField("file", used).Debug("using config file")
	}

	a.config = cfg
	a.logger = logger
	cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
	return nil
}

func (a *app) out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
