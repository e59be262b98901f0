package store

const (
	createUser = `INSERT INTO users (id, name, email, password, settings_id, shopping_id, inventory_id) 
    VALUES ($1, $2, $3, $4, $5, $6, $7) 
    RETURNING id, name, email, password, settings_id, shopping_id, inventory_id;`

	findUserByEmail = `SELECT id, name, email, password, settings_id, shopping_id, inventory_id 
    FROM users 
    WHERE email = $1;`

	getAllUsers = `SELECT id, name, email, password, settings_id, shopping_id, inventory_id 
    FROM users;`

	deleteAllUsers = `DELETE FROM users;`

	createRecipe = `INSERT INTO recipe (id, name, ingredients, time_h, time_min, cost, preview_text, preview_media_url, tags) 
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) 
    RETURNING id, name, ingredients, time_h, time_min, cost, preview_text, preview_media_url, tags;`

	getRecipeByID = `SELECT id, name, ingredients, time_h, time_min, cost, preview_text, preview_media_url, tags 
    FROM recipe 
    WHERE id = $1;`

	findRecipeByName = `SELECT id, name, ingredients, time_h, time_min, cost, preview_text, preview_media_url, tags 
    FROM recipe 
    WHERE name = $1;`

	getAllRecipes = `SELECT id, name, ingredients, time_h, time_min, cost, preview_text, preview_media_url, tags 
    FROM recipe;`

	insertInstruction = `INSERT INTO recipe_instruction (recipe_id, step_num, step_instruction, ingredients, equipment) 
    VALUES ($1, $2, $3, $4, $5) 
    ON CONFLICT (recipe_id, step_num) DO NOTHING;`

	getInstructionsByRecipeID = `SELECT recipe_id, step_num, step_instruction, ingredients, equipment 
    FROM recipe_instruction 
    WHERE recipe_id = $1;`
)

// Pantry table names. The two collections share a schema; repository methods
// receive one of these constants, never caller-supplied input.
const (
	tableInventory    = "inventory"
	tableShoppingList = "shoppinglist"
)
