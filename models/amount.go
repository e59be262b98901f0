package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Amount represents a quantity together with its measurement unit.
// It is the shared value type of recipe requirements, inventory entries and
// shopping-list entries, so all three speak the same language when the
// reconciler moves quantities between them.
//
// Unit is a free-text string ("cup", "g", "servings", ...). Two amounts are
// only comparable when their unit strings are equal byte-for-byte; the
// application never attempts unit conversion.
type Amount struct {
	// Qty is the numeric part of the amount. Conceptually non-negative;
	// zero-quantity inventory rows are pruned by the reconciler.
	Qty float64 `json:"qty"`

	// Unit is the free-text measurement unit. May be empty.
	Unit string `json:"unit"`
}

// ParseAmount parses the "quantity unit" string representation used inside
// the serialized recipe ingredients blob, e.g. "1.5 cup" or "2 ".
//
// The quantity is everything before the first space, parsed as float64.
// The unit is the remainder of the string after that space; when the string
// contains no space the unit defaults to empty.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, fmt.Errorf("empty amount string")
	}

	qtyStr, unit, _ := strings.Cut(s, " ")
	qty, err := strconv.ParseFloat(qtyStr, 64)
	if err != nil {
		return Amount{}, fmt.Errorf("invalid quantity %q: %w", qtyStr, err)
	}

	return Amount{Qty: qty, Unit: strings.TrimSpace(unit)}, nil
}

// String renders the amount back into the "quantity unit" storage form.
// It implements the [fmt.Stringer] interface.
func (a Amount) String() string {
	qty := strconv.FormatFloat(a.Qty, 'f', -1, 64)
	if a.Unit == "" {
		return qty
	}
	return qty + " " + a.Unit
}

// SameUnit reports whether both amounts carry the exact same unit string.
// The comparison is case-sensitive; "Cup" and "cup" do not match.
func (a Amount) SameUnit(other Amount) bool {
	return a.Unit == other.Unit
}

// IngredientMap is the canonical in-memory shape of a recipe's required
// ingredients: ingredient name mapped to the required amount. Serialization
// to and from the stored text blob happens only at the storage and import
// boundaries.
type IngredientMap map[string]Amount

// ParseIngredientJSON decodes the stored recipe ingredients blob
// ({"name": "qty unit", ...}) into an IngredientMap.
func ParseIngredientJSON(data string) (IngredientMap, error) {
	var raw map[string]string
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		return nil, fmt.Errorf("error decoding ingredients blob: %w", err)
	}

	ingredients := make(IngredientMap, len(raw))
	for name, amountStr := range raw {
		amount, err := ParseAmount(amountStr)
		if err != nil {
			return nil, fmt.Errorf("ingredient %q: %w", name, err)
		}
		ingredients[name] = amount
	}

	return ingredients, nil
}

// EncodeIngredientJSON renders an IngredientMap into the stored text form
// ({"name": "qty unit", ...}).
func EncodeIngredientJSON(ingredients IngredientMap) (string, error) {
	raw := make(map[string]string, len(ingredients))
	for name, amount := range ingredients {
		raw[name] = amount.String()
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("error encoding ingredients blob: %w", err)
	}

	return string(data), nil
}
