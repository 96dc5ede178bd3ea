package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vsinha/prodseq/pkg/infrastructure/config"
	"github.com/vsinha/prodseq/pkg/infrastructure/logging"
	"github.com/vsinha/prodseq/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/prodseq/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/prodseq/pkg/infrastructure/repositories/tabular"
	"github.com/vsinha/prodseq/pkg/infrastructure/repositories/xlsx"
	"github.com/vsinha/prodseq/pkg/interfaces/cli/output"
)

// tableLoader reads catalog and demand tables from one file type
type tableLoader interface {
	LoadCatalog(filename string) (*tabular.CatalogTable, error)
	LoadDemand(filename string, opts tabular.DemandOptions) (*tabular.DemandTable, error)
}

// dataset is the loaded input of one recomputation
type dataset struct {
	catalog      *memory.CatalogRepository
	demand       *memory.DemandRepository
	catalogTable *tabular.CatalogTable
	demandTable  *tabular.DemandTable
}

func loaderFor(filename, sheet string) (tableLoader, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return csv.NewLoader(), nil
	case ".xlsx", ".xlsm":
		return xlsx.NewLoader(sheet), nil
	default:
		return nil, fmt.Errorf("input file %s: %w", filename, output.ErrUnsupportedFormat)
	}
}

// loadDataset reads both input tables and loads them into in-memory repositories
func loadDataset(ctx context.Context, cfg *config.Config) (*dataset, error) {
	if cfg.Catalog == "" || cfg.Demand == "" {
		return nil, fmt.Errorf("both --catalog and --demand are required")
	}
	logger := logging.FromContext(ctx)

	catalogLoader, err := loaderFor(cfg.Catalog, cfg.Sheet)
	if err != nil {
		return nil, err
	}
	catalogTable, err := catalogLoader.LoadCatalog(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("error loading catalog: %w", err)
	}

	demandLoader, err := loaderFor(cfg.Demand, cfg.Sheet)
	if err != nil {
		return nil, err
	}
	demandTable, err := demandLoader.LoadDemand(cfg.Demand, tabular.DemandOptions{
		DateLayout:    cfg.DateLayout,
		RefreshColumn: cfg.RefreshColumn,
	})
	if err != nil {
		return nil, fmt.Errorf("error loading demand: %w", err)
	}

	catalog := memory.NewCatalogRepository(len(catalogTable.Parts))
	if err := catalog.LoadParts(catalogTable.Parts); err != nil {
		return nil, fmt.Errorf("failed to load parts into repository: %w", err)
	}

	demand := memory.NewDemandRepository(cfg.DemandType)
	if err := demand.LoadDemand(demandTable.Records, demandTable.Schema); err != nil {
		return nil, fmt.Errorf("failed to load demand into repository: %w", err)
	}

	if len(catalogTable.SkippedRows) > 0 {
		logger.WithField("rows", catalogTable.SkippedRows).Warn("catalog rows without cell or family skipped")
	}
	if len(catalogTable.DuplicateParts) > 0 {
		logger.WithField("parts", catalogTable.DuplicateParts).Warn("duplicate catalog parts ignored")
	}
	if len(demandTable.InvalidDateKeys) > 0 {
		logger.WithFields(logrus.Fields{
			"columns": demandTable.InvalidDateKeys,
			"layout":  demandTable.Schema.DateLayout,
		}).Warn("demand columns do not parse as dates; every part with demand will be excluded")
	}
	if n := demand.IgnoredDuplicates(); n > 0 {
		logger.WithField("rows", n).Warn("duplicate demand rows ignored")
	}
	logger.WithFields(logrus.Fields{
		"parts":        len(catalogTable.Parts),
		"demand_rows":  demand.Count(),
		"date_columns": len(demandTable.Schema.DateKeys),
	}).Debug("data loaded")

	return &dataset{
		catalog:      catalog,
		demand:       demand,
		catalogTable: catalogTable,
		demandTable:  demandTable,
	}, nil
}
