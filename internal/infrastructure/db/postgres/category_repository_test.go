package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

func categoryRows(id int64, name string, imageID *int64, featured, available bool) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "image_id", "is_featured", "is_available"})
	if imageID != nil {
		return rows.AddRow(id, name, *imageID, featured, available)
	}
	return rows.AddRow(id, name, nil, featured, available)
}

func TestCategoryRepository_Create(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("insert into categories").
		WithArgs("books", nil, false, true).
		WillReturnRows(categoryRows(1, "books", nil, false, true))
	mock.ExpectCommit()

	c, err := repo.Create(context.Background(), &domain.Category{Name: "books", IsAvailable: true})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if c.ID != 1 || c.Name != "books" {
		t.Fatalf("unexpected category: %+v", c)
	}
}

// The image precondition is read inside the same transaction; when it fails
// the insert never runs and the transaction rolls back.
func TestCategoryRepository_CreateMissingImage(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("select 1 from images").
		WithArgs(int64(99)).
		WillReturnError(sql.ErrNoRows)
	mock.ExpectRollback()

	imageID := int64(99)
	_, err := repo.Create(context.Background(), &domain.Category{Name: "books", ImageID: &imageID})
	if !errors.Is(err, domain.ErrImageNotFound) {
		t.Fatalf("expected ErrImageNotFound, got %v", err)
	}
}

func TestCategoryRepository_CreateDuplicate(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("insert into categories").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), &domain.Category{Name: "books"})
	if !errors.Is(err, domain.ErrCategoryExists) {
		t.Fatalf("expected ErrCategoryExists, got %v", err)
	}
}

func TestCategoryRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectQuery("select id, name, image_id, is_featured, is_available from categories").
		WithArgs(int64(5)).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), 5)
	if !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestCategoryRepository_Patch(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("select id, name, image_id, is_featured, is_available from categories").
		WithArgs(int64(1)).
		WillReturnRows(categoryRows(1, "books", nil, false, true))
	mock.ExpectQuery("update categories").
		WillReturnRows(categoryRows(1, "ebooks", nil, false, true))
	mock.ExpectCommit()

	name := "ebooks"
	c, err := repo.Patch(context.Background(), 1, ports.CategoryPatch{Name: &name})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if c.Name != "ebooks" {
		t.Fatalf("unexpected category: %+v", c)
	}
}

func TestCategoryRepository_DeleteNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCategoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("delete from categories").
		WithArgs(int64(44)).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	if err := repo.Delete(context.Background(), 44); !errors.Is(err, domain.ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}
