package roomtype

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rt *RoomType) error
	GetByID(ctx context.Context, id string) (*RoomType, error)
	List(ctx context.Context, filter Filter) ([]*RoomType, int, error)
	Update(ctx context.Context, rt *RoomType) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rt *RoomType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.room_types").
		Columns("name", "description", "base_price_cents", "capacity").
		Values(rt.Name, rt.Description, rt.BasePriceCents, rt.Capacity).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room type query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&rt.ID, &rt.CreatedAt); err != nil {
		return fmt.Errorf("create room type failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*RoomType, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(
		"id", "name", "description", "base_price_cents", "capacity", "created_at",
	).
		From("public.room_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room type query failed: %w", err)
	}

	var rt RoomType
	err = r.pool.QueryRow(ctx, query, args...).
		Scan(&rt.ID, &rt.Name, &rt.Description, &rt.BasePriceCents, &rt.Capacity, &rt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room type failed: %w", err)
	}
	return &rt, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*RoomType, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	queryBuilder := psql.Select(
		"id", "name", "description", "base_price_cents", "capacity", "created_at",
		"count(*) OVER() as total_count",
	).
		From("public.room_types").
		OrderBy("name ASC")

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize
	queryBuilder = queryBuilder.Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := queryBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list room types query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list room types failed: %w", err)
	}
	defer rows.Close()

	var result []*RoomType
	var total int
	for rows.Next() {
		var rt RoomType
		if err := rows.Scan(
			&rt.ID, &rt.Name, &rt.Description, &rt.BasePriceCents, &rt.Capacity, &rt.CreatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan room type failed: %w", err)
		}
		result = append(result, &rt)
	}
	return result, total, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, rt *RoomType) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.room_types").
		Set("name", rt.Name).
		Set("description", rt.Description).
		Set("base_price_cents", rt.BasePriceCents).
		Set("capacity", rt.Capacity).
		Where(squirrel.Eq{"id": rt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room type query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update room type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.room_types").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room type query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete room type failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
