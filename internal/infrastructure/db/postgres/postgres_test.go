package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		_ = db.Close()
	})
	return New(db), mock
}

// A begin failure is a distinct classification: the mutation never started,
// so there is nothing to roll back.
func TestWithTx_BeginFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin().WillReturnError(fmt.Errorf("connection refused"))

	err := db.WithTx(context.Background(), "category", func(tx *sql.Tx) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})
	if !errors.Is(err, domain.ErrTransactionSetup) {
		t.Fatalf("expected ErrTransactionSetup, got %v", err)
	}
}

func TestWithTx_Commit(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("update categories").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := db.WithTx(context.Background(), "category", func(tx *sql.Tx) error {
		_, err := tx.ExecContext(context.Background(), "update categories set name = 'x'")
		return err
	})
	if err != nil {
		t.Fatalf("expected commit, got %v", err)
	}
}

// A validation failure inside the transaction must roll back, and the
// original error must come through unwrapped.
func TestWithTx_RollbackOnError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := domain.ErrCategoryNotFound
	err := db.WithTx(context.Background(), "category", func(tx *sql.Tx) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected %v, got %v", sentinel, err)
	}
}

func TestWithTx_CommitFailure(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectBegin()
	mock.ExpectCommit().WillReturnError(fmt.Errorf("connection reset"))

	err := db.WithTx(context.Background(), "cart", func(tx *sql.Tx) error {
		return nil
	})
	if err == nil {
		t.Fatal("expected commit failure to surface")
	}
}
