package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/storefrontlabs/storefront-api/internal/core/domain"
)

const imageColumns = "id, file_name, path_name, extension"

type ImageRepository struct {
	db *DB
}

func NewImageRepository(db *DB) *ImageRepository {
	return &ImageRepository{db: db}
}

func (r *ImageRepository) Create(ctx context.Context, image *domain.Image) (*domain.Image, error) {
	var created *domain.Image
	err := r.db.WithTx(ctx, "image", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			insert into images (file_name, path_name, extension)
			values ($1, $2, $3)
			returning `+imageColumns,
			image.FileName, image.PathName, image.Extension)

		img, err := scanImage(row)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrImageExists
			}
			return fmt.Errorf("insert image: %w", err)
		}
		created = img
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *ImageRepository) FindByID(ctx context.Context, id int64) (*domain.Image, error) {
	row := r.db.sql.QueryRowContext(ctx,
		`select `+imageColumns+` from images where id = $1`, id)
	img, err := scanImage(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrImageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find image: %w", err)
	}
	return img, nil
}

func (r *ImageRepository) List(ctx context.Context) ([]*domain.Image, error) {
	rows, err := r.db.sql.QueryContext(ctx,
		`select `+imageColumns+` from images order by id asc`)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	var images []*domain.Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

func (r *ImageRepository) Rename(ctx context.Context, id int64, fileName string) (*domain.Image, error) {
	var renamed *domain.Image
	err := r.db.WithTx(ctx, "image", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			update images set file_name = $1 where id = $2
			returning `+imageColumns,
			fileName, id)
		img, err := scanImage(row)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrImageNotFound
		}
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrImageExists
			}
			return fmt.Errorf("rename image: %w", err)
		}
		renamed = img
		return nil
	})
	if err != nil {
		return nil, err
	}
	return renamed, nil
}

func (r *ImageRepository) Delete(ctx context.Context, id int64) (*domain.Image, error) {
	var deleted *domain.Image
	err := r.db.WithTx(ctx, "image", func(tx *sql.Tx) error {
		row := tx.QueryRowContext(ctx, `
			delete from images where id = $1
			returning `+imageColumns, id)
		img, err := scanImage(row)
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrImageNotFound
		}
		if err != nil {
			return fmt.Errorf("delete image: %w", err)
		}
		deleted = img
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func scanImage(row rowScanner) (*domain.Image, error) {
	var img domain.Image
	if err := row.Scan(&img.ID, &img.FileName, &img.PathName, &img.Extension); err != nil {
		return nil, err
	}
	return &img, nil
}
