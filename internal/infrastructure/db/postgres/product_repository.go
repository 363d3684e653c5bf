package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

const productColumns = "id, name, price, description, category_id, image_id, is_featured, is_available"

type ProductRepository struct {
	db *DB
}

func NewProductRepository(db *DB) *ProductRepository {
	return &ProductRepository{db: db}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	var created *domain.Product
	err := r.db.WithTx(ctx, "product", func(tx *sql.Tx) error {
		if err := categoryExists(ctx, tx, product.CategoryID); err != nil {
			return err
		}
		if product.ImageID != nil {
			if err := imageExists(ctx, tx, *product.ImageID); err != nil {
				return err
			}
		}

		row := tx.QueryRowContext(ctx, `
			insert into products (name, price, description, category_id, image_id, is_featured, is_available)
			values ($1, $2, $3, $4, $5, $6, $7)
			returning `+productColumns,
			product.Name, product.Price, product.Description, product.CategoryID,
			product.ImageID, product.IsFeatured, product.IsAvailable)

		p, err := scanProduct(row)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrProductExists
			}
			if isForeignKeyViolation(err) {
				return domain.ErrCategoryNotFound
			}
			return fmt.Errorf("insert product: %w", err)
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64, availableOnly bool) (*domain.Product, error) {
	query := `select ` + productColumns + ` from products where id = $1`
	if availableOnly {
		query += ` and is_available`
	}
	row := r.db.sql.QueryRowContext(ctx, query, id)
	p, err := scanProduct(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find product: %w", err)
	}
	return p, nil
}

func (r *ProductRepository) List(ctx context.Context, filter domain.ProductFilter, availableOnly bool) ([]*domain.Product, error) {
	query := `select ` + productColumns + ` from products where true`
	var args []any
	if availableOnly {
		query += ` and is_available`
	}
	if filter.FeaturedOnly {
		query += ` and is_featured`
	}
	if filter.Min != nil {
		args = append(args, *filter.Min)
		query += ` and price >= $` + strconv.Itoa(len(args))
	}
	if filter.Max != nil {
		args = append(args, *filter.Max)
		query += ` and price <= $` + strconv.Itoa(len(args))
	}
	query += ` order by id asc`

	rows, err := r.db.sql.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []*domain.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *ProductRepository) Patch(ctx context.Context, id int64, patch ports.ProductPatch) (*domain.Product, error) {
	var updated *domain.Product
	err := r.db.WithTx(ctx, "product", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`select `+productColumns+` from products where id = $1`, id)
		p, err := scanProduct(row)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		if err != nil {
			return fmt.Errorf("load product: %w", err)
		}

		if patch.Name != nil {
			p.Name = *patch.Name
		}
		if patch.Price != nil {
			p.Price = *patch.Price
		}
		if patch.Description != nil {
			p.Description = *patch.Description
		}
		if patch.CategoryID != nil {
			if err := categoryExists(ctx, tx, *patch.CategoryID); err != nil {
				return err
			}
			p.CategoryID = *patch.CategoryID
		}
		if patch.ImageID != nil {
			if err := imageExists(ctx, tx, *patch.ImageID); err != nil {
				return err
			}
			p.ImageID = patch.ImageID
		}
		if patch.IsFeatured != nil {
			p.IsFeatured = *patch.IsFeatured
		}
		if patch.IsAvailable != nil {
			p.IsAvailable = *patch.IsAvailable
		}

		row = tx.QueryRowContext(ctx, `
			update products
			set name = $1, price = $2, description = $3, category_id = $4,
			    image_id = $5, is_featured = $6, is_available = $7
			where id = $8
			returning `+productColumns,
			p.Name, p.Price, p.Description, p.CategoryID, p.ImageID,
			p.IsFeatured, p.IsAvailable, id)
		updated, err = scanProduct(row)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrProductExists
			}
			return fmt.Errorf("update product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, "product", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `delete from products where id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.ErrProductNotFound
		}
		return nil
	})
}

func categoryExists(ctx context.Context, tx *sql.Tx, categoryID int64) error {
	var one int
	err := tx.QueryRowContext(ctx, `select 1 from categories where id = $1`, categoryID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrCategoryNotFound
	}
	if err != nil {
		return fmt.Errorf("check category: %w", err)
	}
	return nil
}

func scanProduct(row rowScanner) (*domain.Product, error) {
	var (
		p       domain.Product
		imageID sql.NullInt64
	)
	if err := row.Scan(&p.ID, &p.Name, &p.Price, &p.Description, &p.CategoryID,
		&imageID, &p.IsFeatured, &p.IsAvailable); err != nil {
		return nil, err
	}
	if imageID.Valid {
		p.ImageID = &imageID.Int64
	}
	return &p, nil
}
