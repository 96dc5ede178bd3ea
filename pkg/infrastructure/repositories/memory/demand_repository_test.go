package memory

import (
	"testing"

	"github.com/vsinha/prodseq/pkg/domain/entities"
)

func TestDemandRepository_LoadDemand(t *testing.T) {
	repo := NewDemandRepository("")
	schema, err := entities.NewDemandSchema([]string{"3/10/2025"}, "")
	if err != nil {
		t.Fatalf("Failed to build schema: %v", err)
	}

	records := []*entities.DemandRecord{
		{PartNumber: "P1", DemandType: "Forecast", OnHand: 999},
		{PartNumber: "P1", DemandType: entities.CustomerReleases, OnHand: 10},
		{PartNumber: "P1", DemandType: entities.CustomerReleases, OnHand: 20},
		{PartNumber: "P2", DemandType: entities.CustomerReleases, OnHand: 5},
		{PartNumber: "P3", DemandType: "Forecast", OnHand: 5},
	}

	if err := repo.LoadDemand(records, schema); err != nil {
		t.Fatalf("Failed to load demand: %v", err)
	}

	if repo.Count() != 2 {
		t.Errorf("Expected 2 in-scope parts, got %d", repo.Count())
	}
	if repo.IgnoredDuplicates() != 1 {
		t.Errorf("Expected 1 ignored duplicate, got %d", repo.IgnoredDuplicates())
	}

	record, ok := repo.GetDemandRecord("P1")
	if !ok {
		t.Fatal("Expected P1 to have demand")
	}
	if record.OnHand != 10 {
		t.Errorf("Expected first in-scope row to win (on hand 10), got %d", record.OnHand)
	}

	if _, ok := repo.GetDemandRecord("P3"); ok {
		t.Error("Expected forecast-only part to have no demand")
	}
	if repo.GetSchema() != schema {
		t.Error("Expected schema to be stored")
	}
}

func TestDemandRepository_LoadDemand_NilSchema(t *testing.T) {
	repo := NewDemandRepository(entities.CustomerReleases)
	if err := repo.LoadDemand(nil, nil); err == nil {
		t.Error("Expected error for nil schema")
	}
}
