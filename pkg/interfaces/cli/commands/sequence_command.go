package commands

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/prodseq/pkg/application/dto"
	"github.com/vsinha/prodseq/pkg/application/services/sequence"
	"github.com/vsinha/prodseq/pkg/domain/repositories"
	"github.com/vsinha/prodseq/pkg/infrastructure/config"
	"github.com/vsinha/prodseq/pkg/infrastructure/events"
	"github.com/vsinha/prodseq/pkg/infrastructure/logging"
	"github.com/vsinha/prodseq/pkg/infrastructure/metrics"
	"github.com/vsinha/prodseq/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/prodseq/pkg/interfaces/cli/output"
)

const todayLayout = "2006-01-02"

// SequenceCommand loads the inputs and prints one stabilized production sequence
type SequenceCommand struct {
	config    *config.Config
	today     func() time.Time
	out       io.Writer
	snapshots repositories.SnapshotRepository
	metrics   sequence.MetricsRecorder
	events    events.EventStore
}

// NewSequenceCommand creates a sequence command with a fresh stabilizer session
func NewSequenceCommand(cfg *config.Config, out io.Writer) *SequenceCommand {
	return &SequenceCommand{
		config:    cfg,
		today:     time.Now,
		out:       out,
		snapshots: memory.NewSnapshotRepository(),
		metrics:   metrics.NewNop(),
	}
}

// Execute recomputes and renders the sequence
func (c *SequenceCommand) Execute(ctx context.Context) (*dto.SequenceResult, error) {
	data, err := loadDataset(ctx, c.config)
	if err != nil {
		return nil, err
	}

	logger := logging.FromContext(ctx)
	store := c.events
	if store == nil {
		store = events.NewInMemoryEventStore(logger)
	}

	service := sequence.NewService(
		data.catalog,
		data.demand,
		c.config.LookAheadDays,
		sequence.WithEventStore(store),
		sequence.WithMetrics(c.metrics),
	)

	cell, family := c.config.Cell, c.config.Family
	if cell == "" {
		if cells := service.Cells(); len(cells) > 0 {
			cell = cells[0]
		}
	}
	if family == "" {
		if families := service.Families(); len(families) > 0 {
			family = families[0]
		}
	}

	result, err := service.Compute(ctx, sequence.Request{
		Cell:   cell,
		Family: family,
		Today:  c.today(),
	}, c.snapshots)
	if err != nil {
		return nil, fmt.Errorf("error computing sequence: %w", err)
	}

	if err := output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.LogLevel == "debug",
		Out:       c.out,
	}); err != nil {
		return nil, err
	}

	return result, nil
}

func newSequenceCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sequence",
		Short: "Print the top parts to produce for a cell and family",
		Long: `sequence simulates every part of the selected cell and family against
its Customer Releases demand and prints up to three production requirements,
most urgent first. Without --cell or --family the first catalog value is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			today, err := parseToday(cmd)
			if err != nil {
				return err
			}

			command := NewSequenceCommand(a.config, a.out(cmd))
			command.today = today
			_, err = command.Execute(cmd.Context())
			return err
		},
	}
	addSelectionFlags(cmd)
	cmd.Flags().String("today", "", "calendar day to sequence for, YYYY-MM-DD (default: now)")
	return cmd
}

func addSelectionFlags(cmd *cobra.Command) {
	cmd.Flags().String("cell", "", "production cell")
	cmd.Flags().String("family", "", "part family within the cell")
}

// parseToday returns a clock pinned to --today, or the wall clock
func parseToday(cmd *cobra.Command) (func() time.Time, error) {
	raw, _ := cmd.Flags().GetString("today")
	if raw == "" {
		return time.Now, nil
	}
	day, err := time.ParseInLocation(todayLayout, raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid --today %q (expected YYYY-MM-DD): %w", raw, err)
	}
	return func() time.Time { return day }, nil
}
