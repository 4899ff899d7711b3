package sqlite

import (
	"context"

	"github.com/stadspark/dvsportal/internal/portal/domain"
)

type accountsRepo struct {
	q dbtx
}

const accountColumns = `id, identifier, password_hash, created_at, updated_at`

func (r *accountsRepo) GetAccountByID(ctx context.Context, id string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE id = ?`, id)

	var a domain.Account
	if err := row.Scan(&a.ID, &a.Identifier, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) GetAccountByIdentifier(ctx context.Context, identifier string) (domain.Account, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+accountColumns+` FROM accounts WHERE identifier = ?`, identifier)

	var a domain.Account
	if err := row.Scan(&a.ID, &a.Identifier, &a.PasswordHash, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return domain.Account{}, mapNotFound(err)
	}
	return a, nil
}

func (r *accountsRepo) CreateAccount(ctx context.Context, a domain.Account) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO accounts (id, identifier, password_hash, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Identifier, a.PasswordHash, a.CreatedAt.UTC(), a.UpdatedAt.UTC())
	return mapConstraint(err)
}

func (r *accountsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	row := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM accounts`)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}
