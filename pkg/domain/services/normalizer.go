package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vsinha/prodseq/pkg/domain/entities"
)

var quantityCleaner = strings.NewReplacer(",", "", "$", "", " ", "", "\u00a0", "")

// NormalizeQuantity coerces a raw table cell into a non-negative quantity.
// Missing, blank, malformed and negative values all become 0, so a zero result
// does not distinguish bad data from no demand. Use ParseQuantityStrict to audit.
func NormalizeQuantity(value any) entities.Quantity {
	switch v := value.(type) {
	case nil:
		return 0
	case string:
		return normalizeString(v)
	case *string:
		if v == nil {
			return 0
		}
		return normalizeString(*v)
	case entities.Quantity:
		return clamp(int64(v))
	case int:
		return clamp(int64(v))
	case int32:
		return clamp(int64(v))
	case int64:
		return clamp(v)
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0
		}
		return entities.Quantity(v)
	case float32:
		return normalizeFloat(float64(v))
	case float64:
		return normalizeFloat(v)
	case decimal.Decimal:
		return normalizeDecimal(v)
	case fmt.Stringer:
		return normalizeString(v.String())
	default:
		return 0
	}
}

// ParseQuantityStrict parses a raw cell like NormalizeQuantity but reports
// values that would otherwise be silently zeroed. Blank input is 0 without error.
func ParseQuantityStrict(raw string) (entities.Quantity, error) {
	cleaned := quantityCleaner.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: not a number", raw)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("invalid quantity %q: negative", raw)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("invalid quantity %q: fractional pieces", raw)
	}
	if d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0, fmt.Errorf("invalid quantity %q: out of range", raw)
	}
	return entities.Quantity(d.IntPart()), nil
}

func normalizeString(raw string) entities.Quantity {
	cleaned := quantityCleaner.Replace(strings.TrimSpace(raw))
	if cleaned == "" {
		return 0
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0
	}
	return normalizeDecimal(d)
}

func normalizeFloat(f float64) entities.Quantity {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return normalizeDecimal(decimal.NewFromFloat(f))
}

func normalizeDecimal(d decimal.Decimal) entities.Quantity {
	if !d.IsPositive() || d.GreaterThan(decimal.NewFromInt(math.MaxInt64)) {
		return 0
	}
	return entities.Quantity(d.IntPart())
}

func clamp(v int64) entities.Quantity {
	if v < 0 {
		return 0
	}
	return entities.Quantity(v)
}
