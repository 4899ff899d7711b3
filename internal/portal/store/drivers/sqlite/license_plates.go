package sqlite

import (
	"context"

	"github.com/stadspark/dvsportal/internal/portal/domain"
	"github.com/stadspark/dvsportal/internal/portal/store"
)

type licensePlatesRepo struct {
	q dbtx
}

func (r *licensePlatesRepo) UpsertLicensePlate(ctx context.Context, p domain.LicensePlate) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO license_plates (id, media_id, value, name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (media_id, value)
		 DO UPDATE SET name = excluded.name, updated_at = excluded.updated_at`,
		p.ID, p.MediaID, p.Value, p.Name, p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	return err
}

func (r *licensePlatesRepo) GetLicensePlate(ctx context.Context, mediaID, value string) (domain.LicensePlate, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, media_id, value, name, created_at, updated_at
		 FROM license_plates WHERE media_id = ? AND value = ?`, mediaID, value)

	var p domain.LicensePlate
	if err := row.Scan(&p.ID, &p.MediaID, &p.Value, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return domain.LicensePlate{}, mapNotFound(err)
	}
	return p, nil
}

func (r *licensePlatesRepo) ListLicensePlatesByMedia(ctx context.Context, mediaID string) ([]domain.LicensePlate, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT id, media_id, value, name, created_at, updated_at
		 FROM license_plates WHERE media_id = ? ORDER BY created_at, value`, mediaID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LicensePlate
	for rows.Next() {
		var p domain.LicensePlate
		if err := rows.Scan(&p.ID, &p.MediaID, &p.Value, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *licensePlatesRepo) DeleteLicensePlate(ctx context.Context, mediaID, value string) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM license_plates WHERE media_id = ? AND value = ?`, mediaID, value)
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
