package sqlite

import (
	"context"

	"github.com/stadspark/dvsportal/internal/portal/domain"
	"github.com/stadspark/dvsportal/internal/portal/store"
)

type permitsRepo struct {
	q dbtx
}

func (r *permitsRepo) CreatePermit(ctx context.Context, p domain.Permit) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO permits (id, account_id, zonal_code, unit_price)
		 VALUES (?, ?, ?, ?)`,
		p.ID, p.AccountID, p.ZonalCode, p.UnitPrice)
	return mapConstraint(err)
}

func (r *permitsRepo) CreatePermitMedia(ctx context.Context, m domain.PermitMedia) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO permit_media (id, permit_id, type_id, code, balance)
		 VALUES (?, ?, ?, ?, ?)`,
		m.ID, m.PermitID, m.TypeID, m.Code, m.Balance)
	return mapConstraint(err)
}

func (r *permitsRepo) GetPermitByAccount(ctx context.Context, accountID string) (domain.Permit, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, account_id, zonal_code, unit_price
		 FROM permits WHERE account_id = ? LIMIT 1`, accountID)

	var p domain.Permit
	if err := row.Scan(&p.ID, &p.AccountID, &p.ZonalCode, &p.UnitPrice); err != nil {
		return domain.Permit{}, mapNotFound(err)
	}
	return p, nil
}

func (r *permitsRepo) GetMediaByPermit(ctx context.Context, permitID string) (domain.PermitMedia, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, permit_id, type_id, code, balance
		 FROM permit_media WHERE permit_id = ? LIMIT 1`, permitID)

	var m domain.PermitMedia
	if err := row.Scan(&m.ID, &m.PermitID, &m.TypeID, &m.Code, &m.Balance); err != nil {
		return domain.PermitMedia{}, mapNotFound(err)
	}
	return m, nil
}

func (r *permitsRepo) GetMediaByCode(ctx context.Context, code string) (domain.PermitMedia, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT id, permit_id, type_id, code, balance
		 FROM permit_media WHERE code = ?`, code)

	var m domain.PermitMedia
	if err := row.Scan(&m.ID, &m.PermitID, &m.TypeID, &m.Code, &m.Balance); err != nil {
		return domain.PermitMedia{}, mapNotFound(err)
	}
	return m, nil
}

func (r *permitsRepo) AdjustMediaBalance(ctx context.Context, mediaID string, delta float64) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE permit_media SET balance = balance + ? WHERE id = ?`, delta, mediaID)
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
