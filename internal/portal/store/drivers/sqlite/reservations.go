package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/stadspark/dvsportal/internal/portal/domain"
	"github.com/stadspark/dvsportal/internal/portal/store"
)

type reservationsRepo struct {
	q dbtx
}

const reservationColumns = `id, media_id, plate_value, plate_name, valid_from, valid_until, units, ended, created_at, updated_at`

func scanReservation(scan func(dest ...any) error) (domain.Reservation, error) {
	var (
		r     domain.Reservation
		until sql.NullTime
	)
	err := scan(&r.ID, &r.MediaID, &r.PlateValue, &r.PlateName,
		&r.ValidFrom, &until, &r.Units, &r.Ended, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return domain.Reservation{}, err
	}
	r.ValidUntil = mapNullTimePtr(until)
	return r, nil
}

func (r *reservationsRepo) CreateReservation(ctx context.Context, res domain.Reservation) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO reservations
		   (id, media_id, plate_value, plate_name, valid_from, valid_until, units, ended, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		res.ID, res.MediaID, res.PlateValue, res.PlateName,
		res.ValidFrom.UTC(), mapOptionalTime(res.ValidUntil),
		res.Units, res.Ended, res.CreatedAt.UTC(), res.UpdatedAt.UTC())
	return mapConstraint(err)
}

func (r *reservationsRepo) GetReservationByID(ctx context.Context, id string) (domain.Reservation, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
	res, err := scanReservation(row.Scan)
	if err != nil {
		return domain.Reservation{}, mapNotFound(err)
	}
	return res, nil
}

// listByMedia returns all reservations of a media, newest first. State
// filtering (active vs finished) happens in Go; timestamp comparison in
// SQL across drivers is more trouble than it is worth at this scale.
func (r *reservationsRepo) listByMedia(ctx context.Context, mediaID string) ([]domain.Reservation, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+reservationColumns+`
		 FROM reservations WHERE media_id = ? ORDER BY valid_from DESC, id DESC`, mediaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

func (r *reservationsRepo) GetActiveByPlate(ctx context.Context, mediaID, plateValue string, now time.Time) (domain.Reservation, error) {
	all, err := r.listByMedia(ctx, mediaID)
	if err != nil {
		return domain.Reservation{}, err
	}
	for _, res := range all {
		if res.PlateValue == plateValue && res.Active(now) {
			return res, nil
		}
	}
	return domain.Reservation{}, store.ErrNotFound
}

func (r *reservationsRepo) ListActiveByMedia(ctx context.Context, mediaID string, now time.Time) ([]domain.Reservation, error) {
	all, err := r.listByMedia(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	var out []domain.Reservation
	for _, res := range all {
		if res.Active(now) {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *reservationsRepo) ListFinishedByMedia(ctx context.Context, mediaID string, now time.Time, limit int) ([]domain.Reservation, error) {
	all, err := r.listByMedia(ctx, mediaID)
	if err != nil {
		return nil, err
	}
	var out []domain.Reservation
	for _, res := range all {
		if res.Active(now) {
			continue
		}
		out = append(out, res)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *reservationsRepo) EndReservation(ctx context.Context, id string, until time.Time, units int) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE reservations
		 SET ended = 1, valid_until = ?, units = ?, updated_at = ?
		 WHERE id = ? AND ended = 0`,
		until.UTC(), units, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *reservationsRepo) FinalizeLapsedReservations(ctx context.Context, now time.Time) (int, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+reservationColumns+`
		 FROM reservations WHERE ended = 0 AND valid_until IS NOT NULL`)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	var lapsed []domain.Reservation
	for rows.Next() {
		res, err := scanReservation(rows.Scan)
		if err != nil {
			return 0, err
		}
		if res.ValidUntil != nil && !res.ValidUntil.After(now) {
			lapsed = append(lapsed, res)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	for i, res := range lapsed {
		_, err := r.q.ExecContext(ctx,
			`UPDATE reservations SET ended = 1, updated_at = ? WHERE id = ? AND ended = 0`,
			now.UTC(), res.ID)
		if err != nil {
			return i, err
		}
	}
	return len(lapsed), nil
}
