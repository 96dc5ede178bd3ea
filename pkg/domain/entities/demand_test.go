package entities

import "testing"

func TestNewDemandSchema(t *testing.T) {
	schema, err := NewDemandSchema([]string{"3/10/2025", "3/11/2025"}, "")
	if err != nil {
		t.Fatalf("Expected valid schema: %v", err)
	}
	if schema.DateLayout != DefaultDateLayout {
		t.Errorf("Expected default layout %s, got %s", DefaultDateLayout, schema.DateLayout)
	}

	_, err = NewDemandSchema([]string{"3/10/2025", "3/10/2025"}, DefaultDateLayout)
	if err == nil {
		t.Fatal("Expected duplicate date column error")
	}
	if err.Error() != "duplicate date column: 3/10/2025" {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestDemandRecord_InScope(t *testing.T) {
	record := &DemandRecord{PartNumber: "P1", DemandType: " Customer Releases "}
	if !record.InScope(CustomerReleases) {
		t.Error("Expected record to be in scope")
	}
	record.DemandType = "Forecast"
	if record.InScope(CustomerReleases) {
		t.Error("Expected forecast record to be out of scope")
	}
}
