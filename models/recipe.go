package models

// Recipe is a catalog entry: the preview-level description of a dish plus
// the searchable attributes (name, serialized ingredients, tags) and the
// filterable ones (cost, cooking time).
//
// Ingredients holds the serialized {"name": "qty unit"} blob exactly as
// stored; use [ParseIngredientJSON] to obtain the canonical in-memory map.
// Recipes are global, shared read-only by all users, and are never updated
// in place after insertion.
type Recipe struct {
	// ID is the opaque unique identifier assigned at creation time.
	ID string `json:"id"`

	// Name is the display name of the dish, also a search field.
	Name string `json:"name"`

	// Ingredients is the serialized required-ingredients blob.
	Ingredients string `json:"ingredients"`

	// TimeH and TimeMin split the time-to-cook. The pair is normalized at
	// write time so that 0 <= TimeMin < 60, overflow carried into TimeH.
	TimeH   int `json:"time_h"`
	TimeMin int `json:"time_min"`

	// Cost is the non-negative price estimate used by the cost filter.
	Cost float64 `json:"cost"`

	PreviewText     string `json:"preview_text"`
	PreviewMediaURL string `json:"preview_media_url"`

	// Tags is a comma-joined set of known category strings
	// (e.g. "vegetarian, cheap"), also a search field.
	Tags string `json:"tags"`
}

// TableName returns the name of the database table
// associated with the Recipe model.
func (r Recipe) TableName() string {
	return "recipe"
}

// NormalizeTime reduces TimeMin below 60 by carrying full hours into TimeH.
// Applied on every write path (manual insert and import).
func (r *Recipe) NormalizeTime() {
	if r.TimeMin >= 60 {
		r.TimeH += r.TimeMin / 60
		r.TimeMin %= 60
	}
}
