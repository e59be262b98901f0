package models

// ProviderRecipeBatch is the top-level payload of the external recipe
// provider's random-recipes endpoint.
type ProviderRecipeBatch struct {
	Recipes []ProviderRecipe `json:"recipes"`
}

// ProviderRecipe is one raw recipe document as delivered by the external
// provider. Only the fields the import pipeline consumes are mapped; the
// provider sends many more.
type ProviderRecipe struct {
	Title           string  `json:"title"`
	ReadyInMinutes  int     `json:"readyInMinutes"`
	PricePerServing float64 `json:"pricePerServing"`
	Summary         string  `json:"summary"`
	Image           string  `json:"image"`

	// Dietary flags, folded into the comma-joined tag string on import.
	Vegetarian  bool `json:"vegetarian"`
	Vegan       bool `json:"vegan"`
	GlutenFree  bool `json:"glutenFree"`
	VeryHealthy bool `json:"veryHealthy"`
	Cheap       bool `json:"cheap"`
	VeryPopular bool `json:"veryPopular"`
	Sustainable bool `json:"sustainable"`

	ExtendedIngredients  []ProviderIngredient  `json:"extendedIngredients"`
	AnalyzedInstructions []ProviderInstruction `json:"analyzedInstructions"`
}

// ProviderIngredient is one required ingredient of a provider recipe.
type ProviderIngredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Image  string  `json:"image"`
}

// ProviderInstruction groups the ordered cooking steps of one preparation
// variant; the import pipeline only reads the first variant.
type ProviderInstruction struct {
	Steps []ProviderStep `json:"steps"`
}

// ProviderStep is a single cooking step with the ingredients and equipment
// it uses. Image fields hold bare file names relative to the provider's CDN.
type ProviderStep struct {
	Number      int                `json:"number"`
	Step        string             `json:"step"`
	Ingredients []ProviderStepItem `json:"ingredients"`
	Equipment   []ProviderStepItem `json:"equipment"`
}

// ProviderStepItem is a {name, image} pair inside a provider step.
type ProviderStepItem struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}
