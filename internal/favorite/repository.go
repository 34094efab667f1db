package favorite

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Add(ctx context.Context, f *Favorite) error
	Remove(ctx context.Context, userID, hotelID string) error
	ListByUser(ctx context.Context, userID string) ([]*Favorite, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Add(ctx context.Context, f *Favorite) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.favorites").
		Columns("user_id", "hotel_id").
		Values(f.UserID, f.HotelID).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build add favorite query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&f.ID, &f.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			case pgerrcode.UniqueViolation:
				return ErrAlreadyExists
			case pgerrcode.ForeignKeyViolation:
				return ErrHotelNotFound
			}
		}
		return fmt.Errorf("add favorite failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Remove(ctx context.Context, userID, hotelID string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.favorites").
		Where(squirrel.Eq{"user_id": userID, "hotel_id": hotelID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build remove favorite query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("remove favorite failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListByUser(ctx context.Context, userID string) ([]*Favorite, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"f.id", "f.user_id", "f.hotel_id", "h.name", "h.city", "f.created_at",
	).
		From("public.favorites f").
		Join("public.hotels h ON f.hotel_id = h.id").
		Where(squirrel.Eq{"f.user_id": userID}).
		OrderBy("f.created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list favorites query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list favorites failed: %w", err)
	}
	defer rows.Close()

	var favorites []*Favorite
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.HotelID, &f.HotelName, &f.HotelCity, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite failed: %w", err)
		}
		favorites = append(favorites, &f)
	}
	return favorites, rows.Err()
}
