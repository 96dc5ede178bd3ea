package csv

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/vsinha/prodseq/pkg/domain/entities"
	"github.com/vsinha/prodseq/pkg/domain/services"
	"github.com/vsinha/prodseq/pkg/infrastructure/repositories/tabular"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestLoader_LoadCatalog(t *testing.T) {
	path := writeFile(t, "catalog.csv", `cell_name,part_numbers,pieces_per_container,family,visual_id,description
CELL_A,"P1, P2",24,FAM_1,Amarillo,Brackets
CELL_A,P3,12,FAM_2
`)

	table, err := NewLoader().LoadCatalog(path)
	if err != nil {
		t.Fatalf("Failed to load catalog: %v", err)
	}

	if len(table.Parts) != 3 {
		t.Fatalf("Expected 3 parts, got %d", len(table.Parts))
	}
	if table.Parts[1].PartNumber != "P2" {
		t.Errorf("Expected second part P2, got %s", table.Parts[1].PartNumber)
	}
	if table.Parts[0].Color != entities.Yellow {
		t.Errorf("Expected color Amarillo, got %s", table.Parts[0].Color)
	}
	if table.Parts[2].PiecesPerContainer != 12 {
		t.Errorf("Expected 12 pieces per container, got %d", table.Parts[2].PiecesPerContainer)
	}
}

func TestLoader_LoadCatalog_MissingColumns(t *testing.T) {
	path := writeFile(t, "catalog.csv", "cell_name,part_numbers\nCELL_A,P1\n")

	_, err := NewLoader().LoadCatalog(path)
	if !errors.Is(err, services.ErrMissingColumns) {
		t.Fatalf("Expected missing columns error, got %v", err)
	}
}

func TestLoader_LoadCatalog_MissingFile(t *testing.T) {
	_, err := NewLoader().LoadCatalog(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("Expected not-exist error, got %v", err)
	}
}

func TestLoader_LoadDemand(t *testing.T) {
	path := writeFile(t, "demand.csv", `Part No,Demand Type,Inv FG,Past Due,3/10/2025,3/11/2025,Fecha De Actualizacion
P1,Customer Releases,"1,000",0,50,40,3/9/2025
P2,Forecast,0,0,10,10,
`)

	table, err := NewLoader().LoadDemand(path, tabular.DemandOptions{RefreshColumn: "Fecha De Actualizacion"})
	if err != nil {
		t.Fatalf("Failed to load demand: %v", err)
	}

	if len(table.Schema.DateKeys) != 2 {
		t.Fatalf("Expected 2 date columns, got %v", table.Schema.DateKeys)
	}
	if len(table.Records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(table.Records))
	}

	p1 := table.Records[0]
	if p1.OnHand != 1000 {
		t.Errorf("Expected on hand 1000, got %d", p1.OnHand)
	}
	if !p1.InScope(entities.CustomerReleases) {
		t.Errorf("Expected P1 to be in scope")
	}
	if p1.Cells["3/11/2025"] != "40" {
		t.Errorf("Expected 40 on 3/11/2025, got %q", p1.Cells["3/11/2025"])
	}
}

func TestLoader_LoadDemand_Empty(t *testing.T) {
	path := writeFile(t, "demand.csv", "")

	if _, err := NewLoader().LoadDemand(path, tabular.DemandOptions{}); err == nil {
		t.Fatal("Expected error for empty file")
	}
}
