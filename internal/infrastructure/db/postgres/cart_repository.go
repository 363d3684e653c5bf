package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

const cartColumns = "id, user_id, product_id, quantity"

type CartRepository struct {
	db *DB
}

func NewCartRepository(db *DB) *CartRepository {
	return &CartRepository{db: db}
}

func (r *CartRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.CartEntry, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`select `+cartColumns+` from cart_entries where user_id = $1 order by id asc`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart: %w", err)
	}
	defer rows.Close()

	var entries []*domain.CartEntry
	for rows.Next() {
		e, err := scanCartEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan cart entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *CartRepository) Add(ctx context.Context, userID, productID int64, quantity int) (*domain.CartEntry, error) {
	var entry *domain.CartEntry
	err := r.db.WithTx(ctx, "cart", func(tx *sql.Tx) error {
		// The product must exist and be purchasable before any write.
		var one int
		err := tx.QueryRowContext(ctx,
			`select 1 from products where id = $1 and is_available`, productID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrProductNotFound
		}
		if err != nil {
			return fmt.Errorf("check product: %w", err)
		}

		// Merge into an existing line for the same product, if any.
		row := tx.QueryRowContext(ctx, `
			insert into cart_entries (user_id, product_id, quantity)
			values ($1, $2, $3)
			on conflict (user_id, product_id) do update
			set quantity = cart_entries.quantity + excluded.quantity
			returning `+cartColumns,
			userID, productID, quantity)
		entry, err = scanCartEntry(row)
		if err != nil {
			return fmt.Errorf("add cart entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, userID, entryID int64, quantity int) (*domain.CartEntry, error) {
	var entry *domain.CartEntry
	err := r.db.WithTx(ctx, "cart", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			update cart_entries
			set quantity = $1
			where id = $2 and user_id = $3
			returning `+cartColumns,
			quantity, entryID, userID)
		e, err := scanCartEntry(row)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrCartEntryNotFound
		}
		if err != nil {
			return fmt.Errorf("update cart entry: %w", err)
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

func (r *CartRepository) Remove(ctx context.Context, userID, entryID int64) error {
	return r.db.WithTx(ctx, "cart", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`delete from cart_entries where id = $1 and user_id = $2`, entryID, userID)
		if err != nil {
			return fmt.Errorf("delete cart entry: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.ErrCartEntryNotFound
		}
		return nil
	})
}

func scanCartEntry(row rowScanner) (*domain.CartEntry, error) {
	var e domain.CartEntry
	if err := row.Scan(&e.ID, &e.UserID, &e.ProductID, &e.Quantity); err != nil {
		return nil, err
	}
	return &e, nil
}
