package models

// StepItem is one {name, image} pair attached to an instruction step,
// describing either an ingredient or a piece of equipment used at that step.
type StepItem struct {
	Name string `json:"name"`
	Img  string `json:"img"`
}

// Instruction is a single cooking step of a recipe, keyed by the composite
// (RecipeID, StepNum) identity. Ingredients and Equipment hold serialized
// JSON arrays of [StepItem].
//
// Steps are not inherently ordered in storage; consumers must sort by
// StepNum before presentation. A duplicate (RecipeID, StepNum) insert is
// silently rejected — first write wins.
type Instruction struct {
	RecipeID        string `json:"recipe_id"`
	StepNum         int    `json:"step_num"`
	StepInstruction string `json:"step_instruction"`

	// Ingredients is a serialized JSON array of {name, img} objects.
	Ingredients string `json:"ingredients"`

	// Equipment is a serialized JSON array of {name, img} objects.
	Equipment string `json:"equipment"`
}

// TableName returns the name of the database table
// associated with the Instruction model.
func (i Instruction) TableName() string {
	return "recipe_instruction"
}

// InstructionView is the presentation form of one step inside the recipe
// detail response: step text plus decoded ingredient and equipment lists.
type InstructionView struct {
	StepInstruction string     `json:"step_instruction"`
	Ingredients     []StepItem `json:"ingredients"`
	Equipment       []StepItem `json:"equipment"`
}
