package commands

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vsinha/prodseq/pkg/application/services/sequence"
	"github.com/vsinha/prodseq/pkg/infrastructure/config"
)

// CellsCommand lists the cells and families of the catalog with their rates
type CellsCommand struct {
	config *config.Config
	out    io.Writer
}

// NewCellsCommand creates a cells command
func NewCellsCommand(cfg *config.Config, out io.Writer) *CellsCommand {
	return &CellsCommand{config: cfg, out: out}
}

// Execute prints every cell and family combination that has parts
func (c *CellsCommand) Execute(ctx context.Context) error {
	data, err := loadDataset(ctx, c.config)
	if err != nil {
		return err
	}

	service := sequence.NewService(data.catalog, data.demand, c.config.LookAheadDays)

	fmt.Fprintf(c.out, "%-15s %-15s %-8s %-10s\n", "Cell", "Family", "Parts", "Rate/Hour")
	fmt.Fprintf(c.out, "%-15s %-15s %-8s %-10s\n", "---------------", "---------------", "--------", "----------")

	for _, cell := range service.Cells() {
		for _, family := range service.Families() {
			parts, err := data.catalog.GetPartsForSelection(cell, family)
			if err != nil {
				return err
			}
			if len(parts) == 0 {
				continue
			}

			rate, err := service.CellInfo(cell, family)
			if err != nil && !errors.Is(err, sequence.ErrNoPartsForSelection) {
				return err
			}
			fmt.Fprintf(c.out, "%-15s %-15s %-8d %-10s\n", cell, family, len(parts), rate.String())
		}
	}

	return nil
}

func newCellsCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "cells",
		Short: "List catalog cells and families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewCellsCommand(a.config, a.out(cmd)).Execute(cmd.Context())
		},
	}
}
