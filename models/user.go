package models

// User represents an account entity used for authentication and ownership
// partitioning of inventory and shopping-list rows.
// Sensitive fields must never be exposed outside trusted boundaries.
type User struct {
	// ID is the opaque unique identifier of the user.
	ID string `json:"id"`

	// Name is the display name of the user.
	Name string `json:"name"`

	// Email is the unique (lowercased) address used during authentication.
	Email string `json:"email"`

	// Password stores the salted bcrypt hash of the user's password,
	// never the plaintext. It is not exposed via JSON.
	Password string `json:"-"`

	// SettingsID, ShoppingID and InventoryID are derived opaque ids
	// generated at creation time and used as foreign partitioning keys.
	SettingsID  string `json:"settings_id"`
	ShoppingID  string `json:"shopping_id"`
	InventoryID string `json:"inventory_id"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}
