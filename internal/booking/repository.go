package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// UpdateStatus moves the booking to the given status and payment status.
	// Status transitions are the only mutation path after creation.
	UpdateStatus(ctx context.Context, id string, status Status, payment PaymentStatus) error

	// ListActive returns pending and confirmed bookings whose stay ends
	// after the given date. Used by the reconciliation scan.
	ListActive(ctx context.Context, stayEndsAfter time.Time) ([]*Booking, error)
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

func (r *pgxRepository) Create(ctx context.Context, b *Booking) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.bookings").
		Columns("user_id", "room_id", "check_in_date", "check_out_date",
			"adults", "children", "total_price_cents", "status", "payment_status").
		Values(b.UserID, b.RoomID, b.CheckIn, b.CheckOut,
			b.Adults, b.Children, b.TotalPriceCents, b.Status, b.PaymentStatus).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create booking query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).
		Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return fmt.Errorf("create booking failed: %w", err)
	}
	return nil
}

func bookingColumns() []string {
	return []string{
		"b.id", "b.user_id", "u.first_name || ' ' || u.last_name", "b.room_id", "r.room_number",
		"h.id", "h.name",
		"b.check_in_date", "b.check_out_date", "b.adults", "b.children",
		"b.total_price_cents", "b.status", "b.payment_status",
		"b.created_at", "b.updated_at",
	}
}

func scanBooking(row pgx.Row, b *Booking, extra ...any) error {
	dest := []any{
		&b.ID, &b.UserID, &b.UserName, &b.RoomID, &b.RoomNumber,
		&b.HotelID, &b.HotelName,
		&b.CheckIn, &b.CheckOut, &b.Adults, &b.Children,
		&b.TotalPriceCents, &b.Status, &b.PaymentStatus,
		&b.CreatedAt, &b.UpdatedAt,
	}
	dest = append(dest, extra...)
	return row.Scan(dest...)
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns()...).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.hotels h ON r.hotel_id = h.id").
		Where(squirrel.Eq{"b.id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get booking query failed: %w", err)
	}

	var b Booking
	if err := scanBooking(r.pool.QueryRow(ctx, query, args...), &b); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get booking failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	columns := append(bookingColumns(), "count(*) OVER() as total_count")
	query := psql.Select(columns...).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.hotels h ON r.hotel_id = h.id")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"b.user_id": filter.UserID})
	}
	if filter.RoomID != "" {
		query = query.Where(squirrel.Eq{"b.room_id": filter.RoomID})
	}
	if filter.HotelID != "" {
		query = query.Where(squirrel.Eq{"h.id": filter.HotelID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"b.status": filter.Status})
	}
	// Stays intersecting the requested window.
	if filter.FromDate != nil {
		query = query.Where(squirrel.Gt{"b.check_out_date": filter.FromDate})
	}
	if filter.ToDate != nil {
		query = query.Where(squirrel.LtOrEq{"b.check_in_date": filter.ToDate})
	}

	query = query.OrderBy("b.check_in_date DESC")

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
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b, &total); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, total, rows.Err()
}

func (r *pgxRepository) UpdateStatus(ctx context.Context, id string, status Status, payment PaymentStatus) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.bookings").
		Set("status", status).
		Set("payment_status", payment).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update booking status query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update booking status failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) ListActive(ctx context.Context, stayEndsAfter time.Time) ([]*Booking, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Select(bookingColumns()...).
		From("public.bookings b").
		Join("public.users u ON b.user_id = u.id").
		Join("public.rooms r ON b.room_id = r.id").
		Join("public.hotels h ON r.hotel_id = h.id").
		Where(squirrel.Eq{"b.status": []Status{StatusPending, StatusConfirmed}}).
		Where(squirrel.Gt{"b.check_out_date": stayEndsAfter}).
		OrderBy("b.room_id", "b.check_in_date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list active bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list active bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	for rows.Next() {
		var b Booking
		if err := scanBooking(rows, &b); err != nil {
			return nil, fmt.Errorf("scan active booking failed: %w", err)
		}
		bookings = append(bookings, &b)
	}
	return bookings, rows.Err()
}
