package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/models"
)

// pantryRepository is the SQL-backed implementation of [PantryRepository].
// Both per-user collections (inventory and shopping list) share a schema, so
// one repository serves them with the table name fixed per call site.
//
// Every multi-row mutation runs inside a single transaction: partial writes
// never become visible.
type pantryRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewPantryRepository constructs a [PantryRepository] backed by the provided
// database connection and logger.
func NewPantryRepository(db *DB, logger *logger.Logger) PantryRepository {
	logger.Debug().Msg("creating pantry repository")
	return &pantryRepository{
		db:     db,
		logger: logger,
	}
}

// GetInventory returns every inventory row owned by userID.
func (r *pantryRepository) GetInventory(ctx context.Context, userID string) ([]models.PantryItem, error) {
	return r.getItems(ctx, tableInventory, userID)
}

// GetShopping returns every shopping-list row owned by userID.
func (r *pantryRepository) GetShopping(ctx context.Context, userID string) ([]models.PantryItem, error) {
	return r.getItems(ctx, tableShoppingList, userID)
}

// ReplaceInventory overwrites the user's inventory with the given set.
func (r *pantryRepository) ReplaceInventory(ctx context.Context, userID string, items []models.PantryItem) error {
	return r.db.inTx(ctx, func(tx *sql.Tx) error {
		return r.replaceInTx(ctx, tx, tableInventory, userID, items)
	})
}

// ReplaceShopping overwrites the user's shopping list with the given set.
func (r *pantryRepository) ReplaceShopping(ctx context.Context, userID string, items []models.PantryItem) error {
	return r.db.inTx(ctx, func(tx *sql.Tx) error {
		return r.replaceInTx(ctx, tx, tableShoppingList, userID, items)
	})
}

// AppendShopping inserts shortfall rows into the user's shopping list without
// touching existing ones. Rows colliding on (user_id, ingredient_name) are
// silently skipped — first write wins.
func (r *pantryRepository) AppendShopping(ctx context.Context, userID string, items []models.PantryItem) error {
	if len(items) == 0 {
		return nil
	}

	return r.db.inTx(ctx, func(tx *sql.Tx) error {
		return r.insertInTx(ctx, tx, tableShoppingList, items)
	})
}

// FlashShopping replaces the user's inventory with the merged set and clears
// the user's shopping list, all in one transaction.
func (r *pantryRepository) FlashShopping(ctx context.Context, userID string, merged []models.PantryItem) error {
	return r.db.inTx(ctx, func(tx *sql.Tx) error {
		if err := r.replaceInTx(ctx, tx, tableInventory, userID, merged); err != nil {
			return err
		}
		return r.deleteInTx(ctx, tx, tableShoppingList, userID)
	})
}

func (r *pantryRepository) getItems(ctx context.Context, table string, userID string) ([]models.PantryItem, error) {
	log := logger.FromContext(ctx)

	query, args, err := sq.
		Select("user_id", "ingredient_name", "qty", "unit").
		From(table).
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*pantryRepository.getItems").Str("table", table).Msg("error building query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*pantryRepository.getItems").Str("table", table).Msg("error executing query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	var items []models.PantryItem
	for rows.Next() {
		var item models.PantryItem
		if err := rows.Scan(&item.UserID, &item.IngredientName, &item.Qty, &item.Unit); err != nil {
			log.Err(err).Str("func", "*pantryRepository.getItems").Str("table", table).Msg("error scanning rows")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func (r *pantryRepository) replaceInTx(ctx context.Context, tx *sql.Tx, table string, userID string, items []models.PantryItem) error {
	if err := r.deleteInTx(ctx, tx, table, userID); err != nil {
		return err
	}
	return r.insertInTx(ctx, tx, table, items)
}

func (r *pantryRepository) deleteInTx(ctx context.Context, tx *sql.Tx, table string, userID string) error {
	log := logger.FromContext(ctx)

	query, args, err := sq.
		Delete(table).
		Where(sq.Eq{"user_id": userID}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		log.Err(err).Str("func", "*pantryRepository.deleteInTx").Str("table", table).Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*pantryRepository.deleteInTx").Str("table", table).Msg("error executing delete")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

func (r *pantryRepository) insertInTx(ctx context.Context, tx *sql.Tx, table string, items []models.PantryItem) error {
	log := logger.FromContext(ctx)

	if len(items) == 0 {
		return nil
	}

	builder := sq.
		Insert(table).
		Columns("user_id", "ingredient_name", "qty", "unit").
		Suffix("ON CONFLICT (user_id, ingredient_name) DO NOTHING").
		PlaceholderFormat(sq.Dollar)
	for _, item := range items {
		builder = builder.Values(item.UserID, item.IngredientName, item.Qty, item.Unit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		log.Err(err).Str("func", "*pantryRepository.insertInTx").Str("table", table).Msg("error building query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).Str("func", "*pantryRepository.insertInTx").Str("table", table).Msg("error executing insert")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}
