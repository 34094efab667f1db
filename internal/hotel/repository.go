package hotel

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, h *Hotel) error
	GetByID(ctx context.Context, id string) (*Hotel, error)
	List(ctx context.Context, filter Filter) ([]*Hotel, int, error)
	Update(ctx context.Context, h *Hotel) error
	Delete(ctx context.Context, id string) error

	AddImage(ctx context.Context, img *Image) error
	ListImages(ctx context.Context, hotelID string) ([]*Image, error)
	GetImage(ctx context.Context, id string) (*Image, error)
	DeleteImage(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, h *Hotel) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.hotels").
		Columns("name", "description", "address", "city", "country", "stars").
		Values(h.Name, h.Description, h.Address, h.City, h.Country, h.Stars).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create hotel query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&h.ID, &h.CreatedAt, &h.UpdatedAt); err != nil {
		return fmt.Errorf("create hotel failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Hotel, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "description", "address", "city", "country", "stars",
		"created_at", "updated_at",
	).
		From("public.hotels").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get hotel query failed: %w", err)
	}

	var h Hotel
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&h.ID, &h.Name, &h.Description, &h.Address, &h.City, &h.Country, &h.Stars,
		&h.CreatedAt, &h.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get hotel failed: %w", err)
	}
	return &h, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Hotel, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "description", "address", "city", "country", "stars",
		"created_at", "updated_at",
		"count(*) OVER() as total_count",
	).
		From("public.hotels")

	if filter.City != "" {
		query = query.Where(squirrel.Eq{"city": filter.City})
	}
	if filter.Country != "" {
		query = query.Where(squirrel.Eq{"country": filter.Country})
	}
	if filter.Stars > 0 {
		query = query.Where(squirrel.Eq{"stars": filter.Stars})
	}

	query = query.OrderBy("name ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	query = query.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list hotels query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list hotels failed: %w", err)
	}
	defer rows.Close()

	var result []*Hotel
	var total int
	for rows.Next() {
		var h Hotel
		if err := rows.Scan(
			&h.ID, &h.Name, &h.Description, &h.Address, &h.City, &h.Country, &h.Stars,
			&h.CreatedAt, &h.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan hotel failed: %w", err)
		}
		result = append(result, &h)
	}
	return result, total, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, h *Hotel) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.hotels").
		Set("name", h.Name).
		Set("description", h.Description).
		Set("address", h.Address).
		Set("city", h.City).
		Set("country", h.Country).
		Set("stars", h.Stars).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": h.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update hotel query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update hotel failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.hotels").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete hotel query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete hotel failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddImage(ctx context.Context, img *Image) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.hotel_images").
		Columns("hotel_id", "path", "thumbnail_path").
		Values(img.HotelID, img.Path, img.ThumbnailPath).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build add hotel image query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&img.ID, &img.CreatedAt); err != nil {
		return fmt.Errorf("add hotel image failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) ListImages(ctx context.Context, hotelID string) ([]*Image, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "hotel_id", "path", "thumbnail_path", "created_at").
		From("public.hotel_images").
		Where(squirrel.Eq{"hotel_id": hotelID}).
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list hotel images query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list hotel images failed: %w", err)
	}
	defer rows.Close()

	var images []*Image
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.HotelID, &img.Path, &img.ThumbnailPath, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan hotel image failed: %w", err)
		}
		images = append(images, &img)
	}
	return images, rows.Err()
}

func (r *pgxRepository) GetImage(ctx context.Context, id string) (*Image, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select("id", "hotel_id", "path", "thumbnail_path", "created_at").
		From("public.hotel_images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get hotel image query failed: %w", err)
	}

	var img Image
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&img.ID, &img.HotelID, &img.Path, &img.ThumbnailPath, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrImageNotFound
		}
		return nil, fmt.Errorf("get hotel image failed: %w", err)
	}
	return &img, nil
}

func (r *pgxRepository) DeleteImage(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.hotel_images").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete hotel image query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete hotel image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrImageNotFound
	}
	return nil
}
