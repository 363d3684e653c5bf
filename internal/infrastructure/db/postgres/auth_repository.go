package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
	"github.com/storefrontlabs/storefront-api/internal/core/ports"
)

const userColumns = "id, username, password_hash, role, created_at, updated_at"

type AuthRepository struct {
	db *DB
}

func NewAuthRepository(db *DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	var created *domain.User
	err := r.db.WithTx(ctx, "user", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			insert into users (username, password_hash, role)
			values ($1, $2, $3)
			returning `+userColumns,
			user.Username, user.PasswordHash, string(user.Role))

		u, err := scanUser(row)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUserExists
			}
			return fmt.Errorf("insert user: %w", err)
		}
		created = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *AuthRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.sql.QueryRowContext(ctx,
		`select `+userColumns+` from users where username = $1`, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *AuthRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.sql.QueryRowContext(ctx,
		`select `+userColumns+` from users where id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// FindByIDAndRole is the session validator's double-check: it matches only
// when the row still holds the role encoded in the token.
func (r *AuthRepository) FindByIDAndRole(ctx context.Context, id int64, role domain.Role) (*domain.User, error) {
	row := r.db.sql.QueryRowContext(ctx,
		`select `+userColumns+` from users where id = $1 and role = $2`, id, string(role))
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrRoleMismatch
	}
	if err != nil {
		return nil, fmt.Errorf("find user by role: %w", err)
	}
	return u, nil
}

func (r *AuthRepository) Patch(ctx context.Context, id int64, patch ports.UserPatch) (*domain.User, error) {
	var updated *domain.User
	err := r.db.WithTx(ctx, "user", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx,
			`select `+userColumns+` from users where id = $1`, id)
		u, err := scanUser(row)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrUserNotFound
		}
		if err != nil {
			return fmt.Errorf("load user: %w", err)
		}

		if patch.Username != nil {
			u.Username = *patch.Username
		}
		if patch.PasswordHash != nil {
			u.PasswordHash = *patch.PasswordHash
		}

		row = tx.QueryRowContext(ctx, `
			update users
			set username = $1, password_hash = $2, updated_at = now()
			where id = $3
			returning `+userColumns,
			u.Username, u.PasswordHash, id)
		updated, err = scanUser(row)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrUserExists
			}
			return fmt.Errorf("update user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (r *AuthRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`select `+userColumns+` from users order by id asc`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *AuthRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithTx(ctx, "user", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `delete from users where id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return domain.ErrUserNotFound
		}
		return nil
	})
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var (
		u    domain.User
		role string
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	u.Role = domain.Role(role)
	return &u, nil
}
