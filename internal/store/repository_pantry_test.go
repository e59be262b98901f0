package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/plateup/plateup-server/internal/logger"
	"github.com/plateup/plateup-server/models"
)

func newTestPantryRepo(t *testing.T) (*pantryRepository, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to create sqlmock: %v", err)
	}
	l := logger.NewLogger("test")
	repo := &pantryRepository{
		db:     &DB{DB: db, logger: l},
		logger: l,
	}
	return repo, mock, db
}

func pantryColumns() []string {
	return []string{"user_id", "ingredient_name", "qty", "unit"}
}

func TestGetInventory_Success(t *testing.T) {
	repo, mock, db := newTestPantryRepo(t)
	defer db.Close()

	ctx := context.Background()

	rows := sqlmock.
		NewRows(pantryColumns()).
		AddRow("u-1", "milk", 2.0, "l").
		AddRow("u-1", "eggs", 6.0, "whole")

	mock.ExpectQuery("SELECT (.+) FROM inventory").
		WithArgs("u-1").
		WillReturnRows(rows)

	items, err := repo.GetInventory(ctx, "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].IngredientName != "milk" || items[0].Qty != 2.0 {
		t.Errorf("unexpected first item: %+v", items[0])
	}
}

func TestGetShopping_Empty(t *testing.T) {
	repo, mock, db := newTestPantryRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM shoppinglist").
		WithArgs("u-1").
		WillReturnRows(sqlmock.NewRows(pantryColumns()))

	items, err := repo.GetShopping(ctx, "u-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty shopping list, got %d items", len(items))
	}
}

func TestReplaceInventory_DeletesThenInserts(t *testing.T) {
	repo, mock, db := newTestPantryRepo(t)
	defer db.Close()

	ctx := context.Background()
	items := []models.PantryItem{
		{UserID: "u-1", IngredientName: "milk", Qty: 1.5, Unit: "l"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM inventory").
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO inventory").
		WithArgs("u-1", "milk", 1.5, "l").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := repo.ReplaceInventory(ctx, "u-1", items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReplaceShopping_EmptySetClearsTable(t *testing.T) {
	repo, mock, db := newTestPantryRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM shoppinglist").
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	if err := repo.ReplaceShopping(ctx, "u-1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestReplaceInventory_RollsBackOnInsertError(t *testing.T) {
	repo, mock, db := newTestPantryRepo(t)
	defer db.Close()

	ctx := context.Background()
	items := []models.PantryItem{
		{UserID: "u-1", IngredientName: "milk", Qty: 1.5, Unit: "l"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM inventory").
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO inventory").
		WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	err := repo.ReplaceInventory(ctx, "u-1", items)
	if !errors.Is(err, ErrExecutingQuery) {
		t.Fatalf("expected ErrExecutingQuery, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAppendShopping_NoItemsIsNoop(t *testing.T) {
	repo, mock, db := newTestPantryRepo(t)
	defer db.Close()

	ctx := context.Background()

	if err := repo.AppendShopping(ctx, "u-1", nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestAppendShopping_InsertsShortfallRows(t *testing.T) {
	repo, mock, db := newTestPantryRepo(t)
	defer db.Close()

	ctx := context.Background()
	items := []models.PantryItem{
		{UserID: "u-1", IngredientName: "flour", Qty: 0.5, Unit: "kg"},
		{UserID: "u-1", IngredientName: "butter", Qty: 100, Unit: "g"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO shoppinglist").
		WithArgs("u-1", "flour", 0.5, "kg", "u-1", "butter", 100.0, "g").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := repo.AppendShopping(ctx, "u-1", items); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFlashShopping_ReplacesInventoryAndClearsShopping(t *testing.T) {
	repo, mock, db := newTestPantryRepo(t)
	defer db.Close()

	ctx := context.Background()
	merged := []models.PantryItem{
		{UserID: "u-1", IngredientName: "milk", Qty: 3.0, Unit: "l"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM inventory").
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO inventory").
		WithArgs("u-1", "milk", 3.0, "l").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM shoppinglist").
		WithArgs("u-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	if err := repo.FlashShopping(ctx, "u-1", merged); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestFlashShopping_BeginError(t *testing.T) {
	repo, mock, db := newTestPantryRepo(t)
	defer db.Close()

	ctx := context.Background()

	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	err := repo.FlashShopping(ctx, "u-1", nil)
	if !errors.Is(err, ErrBeginningTransaction) {
		t.Fatalf("expected ErrBeginningTransaction, got %v", err)
	}
}
