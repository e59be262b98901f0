package models

// PantryItem is one ingredient row owned by a user, used for both the
// inventory and the shopping-list tables (the two collections share a shape
// so the reconciler can move entries between them verbatim).
// Keyed by the composite (UserID, IngredientName) identity.
type PantryItem struct {
	UserID         string  `json:"user_id"`
	IngredientName string  `json:"ingredient_name"`
	Qty            float64 `json:"qty"`
	Unit           string  `json:"unit"`
}

// Amount returns the item's quantity+unit pair.
func (p PantryItem) Amount() Amount {
	return Amount{Qty: p.Qty, Unit: p.Unit}
}

// PantryDoc is the client-facing document form of a user's inventory or
// shopping list: ingredient name mapped to {qty, unit}.
type PantryDoc map[string]Amount

// ToDoc converts a list of pantry rows into the document form.
func ToDoc(items []PantryItem) PantryDoc {
	doc := make(PantryDoc, len(items))
	for _, item := range items {
		doc[item.IngredientName] = item.Amount()
	}
	return doc
}

// FromDoc converts a client document into pantry rows scoped to userID.
func FromDoc(userID string, doc PantryDoc) []PantryItem {
	items := make([]PantryItem, 0, len(doc))
	for name, amount := range doc {
		items = append(items, PantryItem{
			UserID:         userID,
			IngredientName: name,
			Qty:            amount.Qty,
			Unit:           amount.Unit,
		})
	}
	return items
}
