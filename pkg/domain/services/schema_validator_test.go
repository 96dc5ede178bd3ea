package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/prodseq/pkg/domain/entities"
)

func TestSchemaValidator_ValidateHeader(t *testing.T) {
	validator := NewSchemaValidator()
	required := []string{"Part No", "Demand Type", "Inv FG", "Past Due"}

	err := validator.ValidateHeader("demand", []string{"\ufeffpart no", " Demand Type", "Inv FG", "Past Due", "3/10/2025"}, required)
	require.NoError(t, err)

	err = validator.ValidateHeader("demand", []string{"Part No", "Inv FG"}, required)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumns))

	var missing *MissingColumnsError
	require.True(t, errors.As(err, &missing))
	assert.Equal(t, "demand", missing.Table)
	assert.Equal(t, []string{"Demand Type", "Past Due"}, missing.Columns)
	assert.Equal(t, "demand table is missing required columns: Demand Type, Past Due", err.Error())
}

func TestSchemaValidator_ColumnIndex(t *testing.T) {
	index := NewSchemaValidator().ColumnIndex([]string{"Part No", "PART NO", "Inv FG"})
	assert.Equal(t, 0, index["part no"])
	assert.Equal(t, 2, index["inv fg"])
}

func TestSchemaValidator_ValidatePartNumberUniqueness(t *testing.T) {
	validator := NewSchemaValidator()

	result := validator.ValidatePartNumberUniqueness([]*entities.Part{
		{PartNumber: "P1"}, {PartNumber: "P2"}, {PartNumber: "P1"},
	})
	assert.Equal(t, []entities.PartNumber{"P1"}, result.DuplicateParts)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Duplicate part numbers found")

	result = validator.ValidatePartNumberUniqueness([]*entities.Part{{PartNumber: "P1"}})
	assert.Empty(t, result.Errors)
}

func TestSchemaValidator_ValidateDemandCoverage(t *testing.T) {
	validator := NewSchemaValidator()
	parts := []*entities.Part{{PartNumber: "P1"}, {PartNumber: "P2"}}
	records := []*entities.DemandRecord{
		{PartNumber: "P1", DemandType: entities.CustomerReleases},
		{PartNumber: "P2", DemandType: "Forecast"},
		{PartNumber: "P9", DemandType: entities.CustomerReleases},
	}

	result := validator.ValidateDemandCoverage(parts, records, entities.CustomerReleases)
	assert.Equal(t, []entities.PartNumber{"P2"}, result.UncoveredParts)
	assert.Equal(t, []entities.PartNumber{"P9"}, result.UnknownParts)
	assert.Empty(t, result.Errors)
}
