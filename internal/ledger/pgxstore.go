package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type pgxStore struct {
	pool *pgxpool.Pool
}

// NewPgxStore creates a Store backed by the room_nights table.
func NewPgxStore(pool *pgxpool.Pool) Store {
	return &pgxStore{pool: pool}
}

func dateStrings(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(time.DateOnly)
	}
	return out
}

func (s *pgxStore) GetNights(ctx context.Context, roomID string, start, end time.Time) ([]*RoomNight, error) {
	const query = `
		SELECT room_id, date, is_available, price_cents, blocked, created_at, updated_at
		FROM public.room_nights
		WHERE room_id = $1 AND date >= $2::date AND date < $3::date
		ORDER BY date`

	rows, err := s.pool.Query(ctx, query, roomID, start.Format(time.DateOnly), end.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("get room nights failed: %w", err)
	}
	defer rows.Close()

	var result []*RoomNight
	for rows.Next() {
		var n RoomNight
		if err := rows.Scan(&n.RoomID, &n.Date, &n.IsAvailable, &n.PriceCents, &n.Blocked, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan room night failed: %w", err)
		}
		n.Date = Day(n.Date)
		result = append(result, &n)
	}
	return result, rows.Err()
}

func (s *pgxStore) SetAvailability(ctx context.Context, roomID string, date time.Time, available bool) error {
	const query = `
		INSERT INTO public.room_nights (room_id, date, is_available, blocked)
		VALUES ($1, $2::date, $3, $4)
		ON CONFLICT (room_id, date) DO UPDATE
		SET is_available = EXCLUDED.is_available,
		    blocked = EXCLUDED.blocked,
		    updated_at = now()`

	if _, err := s.pool.Exec(ctx, query, roomID, date.Format(time.DateOnly), available, !available); err != nil {
		return fmt.Errorf("set availability failed: %w", err)
	}
	return nil
}

func (s *pgxStore) SetPrice(ctx context.Context, roomID string, date time.Time, priceCents *int64) error {
	const query = `
		INSERT INTO public.room_nights (room_id, date, price_cents)
		VALUES ($1, $2::date, $3)
		ON CONFLICT (room_id, date) DO UPDATE
		SET price_cents = EXCLUDED.price_cents,
		    updated_at = now()`

	if _, err := s.pool.Exec(ctx, query, roomID, date.Format(time.DateOnly), priceCents); err != nil {
		return fmt.Errorf("set price failed: %w", err)
	}
	return nil
}

// Claim runs inside a transaction: missing rows are inserted as available,
// the full set is locked FOR UPDATE in date order, and only if every night is
// free does the conditional update flip them. Any conflict rolls back with
// nothing mutated.
func (s *pgxStore) Claim(ctx context.Context, roomID string, dates []time.Time) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("begin claim tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	const seed = `
		INSERT INTO public.room_nights (room_id, date)
		SELECT $1, unnest($2::date[])
		ON CONFLICT (room_id, date) DO NOTHING`
	if _, err := tx.Exec(ctx, seed, roomID, dateStrings(dates)); err != nil {
		return fmt.Errorf("seed room nights failed: %w", err)
	}

	const lock = `
		SELECT date, is_available
		FROM public.room_nights
		WHERE room_id = $1 AND date = ANY($2::date[])
		ORDER BY date
		FOR UPDATE`
	rows, err := tx.Query(ctx, lock, roomID, dateStrings(dates))
	if err != nil {
		return fmt.Errorf("lock room nights failed: %w", err)
	}
	for rows.Next() {
		var date time.Time
		var available bool
		if err := rows.Scan(&date, &available); err != nil {
			rows.Close()
			return fmt.Errorf("scan locked night failed: %w", err)
		}
		if !available {
			rows.Close()
			return &ConflictError{RoomID: roomID, Date: Day(date)}
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("lock room nights failed: %w", err)
	}

	const flip = `
		UPDATE public.room_nights
		SET is_available = false, blocked = false, updated_at = now()
		WHERE room_id = $1 AND date = ANY($2::date[]) AND is_available`
	ct, err := tx.Exec(ctx, flip, roomID, dateStrings(dates))
	if err != nil {
		return fmt.Errorf("claim room nights failed: %w", err)
	}
	if int(ct.RowsAffected()) != len(dates) {
		// Rows were locked above, so this indicates a bug rather than a race.
		return fmt.Errorf("claim flipped %d of %d nights", ct.RowsAffected(), len(dates))
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit claim tx failed: %w", err)
	}
	return nil
}

func (s *pgxStore) Release(ctx context.Context, roomID string, dates []time.Time) error {
	const query = `
		UPDATE public.room_nights
		SET is_available = true, blocked = false, updated_at = now()
		WHERE room_id = $1 AND date = ANY($2::date[]) AND NOT is_available`

	if _, err := s.pool.Exec(ctx, query, roomID, dateStrings(dates)); err != nil {
		return fmt.Errorf("release room nights failed: %w", err)
	}
	return nil
}

func (s *pgxStore) ListClaimedFrom(ctx context.Context, from time.Time) ([]*RoomNight, error) {
	const query = `
		SELECT room_id, date, is_available, price_cents, blocked, created_at, updated_at
		FROM public.room_nights
		WHERE NOT is_available AND NOT blocked AND date >= $1::date
		ORDER BY room_id, date`

	rows, err := s.pool.Query(ctx, query, from.Format(time.DateOnly))
	if err != nil {
		return nil, fmt.Errorf("list claimed nights failed: %w", err)
	}
	defer rows.Close()

	var result []*RoomNight
	for rows.Next() {
		var n RoomNight
		if err := rows.Scan(&n.RoomID, &n.Date, &n.IsAvailable, &n.PriceCents, &n.Blocked, &n.CreatedAt, &n.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan claimed night failed: %w", err)
		}
		n.Date = Day(n.Date)
		result = append(result, &n)
	}
	return result, rows.Err()
}
