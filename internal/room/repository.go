package room

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, rm *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, rm *Room) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.rooms").
		Columns("hotel_id", "room_type_id", "room_number", "floor", "is_active").
		Values(rm.HotelID, rm.RoomTypeID, rm.RoomNumber, rm.Floor, rm.IsActive).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create room query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&rm.ID, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNumberAlreadyTaken
		}
		return fmt.Errorf("create room failed: %w", err)
	}
	return nil
}

func roomColumns() []string {
	return []string{
		"r.id", "r.hotel_id", "h.name", "r.room_type_id", "rt.name",
		"r.room_number", "r.floor", "r.is_active",
		"rt.capacity", "rt.base_price_cents",
		"r.created_at", "r.updated_at",
	}
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Room, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(roomColumns()...).
		From("public.rooms r").
		Join("public.hotels h ON r.hotel_id = h.id").
		Join("public.room_types rt ON r.room_type_id = rt.id").
		Where(squirrel.Eq{"r.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get room query failed: %w", err)
	}

	var rm Room
	err = r.pool.QueryRow(ctx, query, args...).Scan(
		&rm.ID, &rm.HotelID, &rm.HotelName, &rm.RoomTypeID, &rm.RoomTypeName,
		&rm.RoomNumber, &rm.Floor, &rm.IsActive,
		&rm.Capacity, &rm.BasePriceCents,
		&rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room failed: %w", err)
	}
	return &rm, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns := append(roomColumns(), "count(*) OVER() as total_count")
	query := psql.Select(columns...).
		From("public.rooms r").
		Join("public.hotels h ON r.hotel_id = h.id").
		Join("public.room_types rt ON r.room_type_id = rt.id")

	if filter.HotelID != "" {
		query = query.Where(squirrel.Eq{"r.hotel_id": filter.HotelID})
	}
	if filter.RoomTypeID != "" {
		query = query.Where(squirrel.Eq{"r.room_type_id": filter.RoomTypeID})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"r.is_active": *filter.IsActive})
	}

	query = query.OrderBy("h.name ASC", "r.room_number ASC")

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
		return nil, 0, fmt.Errorf("build list rooms query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list rooms failed: %w", err)
	}
	defer rows.Close()

	var result []*Room
	var total int
	for rows.Next() {
		var rm Room
		if err := rows.Scan(
			&rm.ID, &rm.HotelID, &rm.HotelName, &rm.RoomTypeID, &rm.RoomTypeName,
			&rm.RoomNumber, &rm.Floor, &rm.IsActive,
			&rm.Capacity, &rm.BasePriceCents,
			&rm.CreatedAt, &rm.UpdatedAt, &total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan room failed: %w", err)
		}
		result = append(result, &rm)
	}
	return result, total, rows.Err()
}

func (r *pgxRepository) Update(ctx context.Context, rm *Room) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.rooms").
		Set("room_type_id", rm.RoomTypeID).
		Set("room_number", rm.RoomNumber).
		Set("floor", rm.Floor).
		Set("is_active", rm.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": rm.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrNumberAlreadyTaken
		}
		return fmt.Errorf("update room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Delete("public.rooms").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete room query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("delete room failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
