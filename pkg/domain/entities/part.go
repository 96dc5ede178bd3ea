package entities

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// PartNumber represents a unique part identifier
type PartNumber string

// Quantity represents an integer quantity value for discrete manufacturing units
type Quantity int64

// ColorCategory is the visual tag printed on a part's floor card
type ColorCategory int

const (
	White ColorCategory = iota
	Yellow
	Orange
	Pink
	Green
)

// String method for ColorCategory enum
func (c ColorCategory) String() string {
	switch c {
	case Yellow:
		return "Amarillo"
	case Orange:
		return "Naranja"
	case Pink:
		return "Rosa"
	case Green:
		return "Verde"
	default:
		return "Blanco"
	}
}

// Hex returns the background color used by the display for this category
func (c ColorCategory) Hex() string {
	switch c {
	case Yellow:
		return "#FFF3CD"
	case Orange:
		return "#FFE4B5"
	case Pink:
		return "#FFE4E1"
	case Green:
		return "#D4EDDA"
	default:
		return "#F8F9FA"
	}
}

// ParseColorCategory maps a catalog visual tag to a category. Unknown tags are White.
func ParseColorCategory(s string) ColorCategory {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "amarillo", "yellow":
		return Yellow
	case "naranja", "orange":
		return Orange
	case "rosa", "pink":
		return Pink
	case "verde", "green":
		return Green
	default:
		return White
	}
}

// MarshalText renders the catalog tag so JSON and YAML output stay readable
func (c ColorCategory) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Part represents a manufacturable item in the cell catalog
type Part struct {
	PartNumber         PartNumber
	Cell               string
	Family             string
	PiecesPerContainer Quantity
	Color              ColorCategory
	Description        string
	RatePerHour        decimal.Decimal
	CatalogOrder       int // row position in the catalog, used for tie-breaks
}

// NewPart creates a validated Part
func NewPart(partNumber PartNumber, cell, family string, piecesPerContainer Quantity) (*Part, error) {
	if strings.TrimSpace(string(partNumber)) == "" {
		return nil, fmt.Errorf("part number cannot be empty")
	}
	if strings.TrimSpace(cell) == "" {
		return nil, fmt.Errorf("cell cannot be empty")
	}
	if strings.TrimSpace(family) == "" {
		return nil, fmt.Errorf("family cannot be empty")
	}
	if piecesPerContainer < 0 {
		return nil, fmt.Errorf("pieces per container cannot be negative, got %d", piecesPerContainer)
	}

	return &Part{
		PartNumber:         partNumber,
		Cell:               cell,
		Family:             family,
		PiecesPerContainer: piecesPerContainer,
		Color:              White,
	}, nil
}

// InSelection reports whether the part belongs to the given cell and family
func (p *Part) InSelection(cell, family string) bool {
	return p.Cell == cell && p.Family == family
}
