package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

const categoryColumns = "id, name, image_id, is_featured, is_available"

type CategoryRepository struct {
	db *DB
}

func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	var created *domain.Category
	err := r.db.WithTx(ctx, "category", func(tx *sql.Tx) error {
		if category.ImageID != nil {
			if err := imageExists(ctx, tx, *category.ImageID); err != nil {
				return err
			}
		}

		row := tx.QueryRowContext(ctx, `
			insert into categories (name, image_id, is_featured, is_available)
			values ($1, $2, $3, $4)
			returning `+categoryColumns,
			category.Name, category.ImageID, category.IsFeatured, category.IsAvailable)

		c, err := scanCategory(row)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrCategoryExists
			}
			if isForeignKeyViolation(err) {
				return domain.ErrImageNotFound
			}
			return fmt.Errorf("insert category: %w", err)
		}
		created = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (*domain.Category, error) {
	row := r.db.sql.QueryRowContext(ctx,
		`select `+categoryColumns+` from categories where id = $1`, id)
	c, err := scanCategory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepository) List(ctx context.Context, availableOnly, featuredOnly bool) ([]*domain.Category, error) {
	query := `select ` + categoryColumns + ` from categories where true`
	if availableOnly {
		query += ` and is_available`
	}
	if featuredOnly {
		query += ` and is_featured`
	}
	query += ` order by id asc`

	rows, err := r.db.sql.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var categories []*domain.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *CategoryRepository) Patch(ctx context.Context, id int64, patch ports.CategoryPatch) (*domain.Category, error) {
	var updated *domain.Category
	err := r.db.WithTx(ctx, "category", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`select `+categoryColumns+` from categories where id = $1`, id)
		c, err := scanCategory(row)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCategoryNotFound
		}
		if err != nil {
			return fmt.Errorf("load category: %w", err)
		}

		if patch.Name != nil {
			c.Name = *patch.Name
		}
		if patch.ImageID != nil {
			if err := imageExists(ctx, tx, *patch.ImageID); err != nil {
				return err
			}
			c.ImageID = patch.ImageID
		}
		if patch.IsFeatured != nil {
			c.IsFeatured = *patch.IsFeatured
		}
		if patch.IsAvailable != nil {
			c.IsAvailable = *patch.IsAvailable
		}

		row = tx.QueryRowContext(ctx, `
			update categories
			set name = $1, image_id = $2, is_featured = $3, is_available = $4
			where id = $5
			returning `+categoryColumns,
			c.Name, c.ImageID, c.IsFeatured, c.IsAvailable, id)
		updated, err = scanCategory(row)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrCategoryExists
			}
			return fmt.Errorf("update category: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, "category", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `delete from categories where id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete category: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.ErrCategoryNotFound
		}
		return nil
	})
}

// imageExists is the foreign-entity precondition read performed inside the
// mutation transaction.
func imageExists(ctx context.Context, tx *sql.Tx, imageID int64) error {
	var one int
	err := tx.QueryRowContext(ctx, `select 1 from images where id = $1`, imageID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrImageNotFound
	}
	if err != nil {
		return fmt.Errorf("check image: %w", err)
	}
	return nil
}

func scanCategory(row rowScanner) (*domain.Category, error) {
	var (
		c       domain.Category
		imageID sql.NullInt64
	)
	if err := row.Scan(&c.ID, &c.Name, &imageID, &c.IsFeatured, &c.IsAvailable); err != nil {
		return nil, err
	}
	if imageID.Valid {
		c.ImageID = &imageID.Int64
	}
	return &c, nil
}
