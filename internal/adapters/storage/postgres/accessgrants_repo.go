package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"health-records-access/internal/domain/accessgrants"

	"github.com/google/uuid"
)

const grantColumns = `id, patient_wallet, provider_wallet, grant_access, accepted, created_at, updated_at`

type AccessGrantsRepo struct {
	db  *sql.DB
	now func() time.Time
}

var _ accessgrants.Repository = (*AccessGrantsRepo)(nil)

func NewAccessGrantsRepo(db *sql.DB) *AccessGrantsRepo {
	return &AccessGrantsRepo{db: db, now: time.Now}
}

func (r *AccessGrantsRepo) FindExact(ctx context.Context, patientWallet, providerWallet string, grantAccess accessgrants.Answer) (accessgrants.AccessGrant, bool, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+grantColumns+`
		FROM access_grants
		WHERE patient_wallet = $1
		  AND provider_wallet = $2
		  AND grant_access = $3
		LIMIT 1
	`, patientWallet, providerWallet, grantAccess.String())

	return scanOne(row)
}

func (r *AccessGrantsRepo) Insert(ctx context.Context, g accessgrants.AccessGrant) (accessgrants.AccessGrant, error) {
	now := r.now().UTC()
	g.ID = uuid.NewString()
	g.CreatedAt = now
	g.UpdatedAt = now

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO access_grants (`+grantColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`,
		g.ID,
		g.PatientWallet,
		g.ProviderWallet,
		g.GrantAccess.String(),
		g.Accepted.String(),
		g.CreatedAt,
		g.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return accessgrants.AccessGrant{}, accessgrants.ErrConflict
		}
		return accessgrants.AccessGrant{}, err
	}
	return g, nil
}

func (r *AccessGrantsRepo) GetByID(ctx context.Context, id string) (accessgrants.AccessGrant, bool, error) {
	id, ok := normalizeID(id)
	if !ok {
		return accessgrants.AccessGrant{}, false, nil
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+grantColumns+`
		FROM access_grants
		WHERE id = $1
	`, id)

	return scanOne(row)
}

func (r *AccessGrantsRepo) FindByPatient(ctx context.Context, patientWallet string) ([]accessgrants.AccessGrant, error) {
	return r.list(ctx, `
		SELECT `+grantColumns+`
		FROM access_grants
		WHERE patient_wallet = $1
		ORDER BY created_at ASC, id ASC
	`, patientWallet)
}

func (r *AccessGrantsRepo) FindByProvider(ctx context.Context, providerWallet string) ([]accessgrants.AccessGrant, error) {
	return r.list(ctx, `
		SELECT `+grantColumns+`
		FROM access_grants
		WHERE provider_wallet = $1
		ORDER BY created_at ASC, id ASC
	`, providerWallet)
}

func (r *AccessGrantsRepo) UpdateAccepted(ctx context.Context, id string) (accessgrants.AccessGrant, bool, error) {
	id, ok := normalizeID(id)
	if !ok {
		return accessgrants.AccessGrant{}, false, nil
	}

	row := r.db.QueryRowContext(ctx, `
		UPDATE access_grants
		SET accepted = 'Yes', updated_at = $2
		WHERE id = $1
		RETURNING `+grantColumns, id, r.now().UTC())

	return scanOne(row)
}

func (r *AccessGrantsRepo) DeleteByID(ctx context.Context, id string) (bool, error) {
	id, ok := normalizeID(id)
	if !ok {
		return false, nil
	}

	res, err := r.db.ExecContext(ctx, `DELETE FROM access_grants WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *AccessGrantsRepo) list(ctx context.Context, query string, wallet string) ([]accessgrants.AccessGrant, error) {
	rows, err := r.db.QueryContext(ctx, query, wallet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]accessgrants.AccessGrant, 0)
	for rows.Next() {
		g, err := scanGrant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

// helpers

type scanner interface {
	Scan(dest ...any) error
}

func scanOne(row *sql.Row) (accessgrants.AccessGrant, bool, error) {
	g, err := scanGrant(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return accessgrants.AccessGrant{}, false, nil
		}
		return accessgrants.AccessGrant{}, false, err
	}
	return g, true, nil
}

func scanGrant(s scanner) (accessgrants.AccessGrant, error) {
	var (
		g                     accessgrants.AccessGrant
		grantAccess, accepted string
	)
	if err := s.Scan(
		&g.ID,
		&g.PatientWallet,
		&g.ProviderWallet,
		&grantAccess,
		&accepted,
		&g.CreatedAt,
		&g.UpdatedAt,
	); err != nil {
		return accessgrants.AccessGrant{}, err
	}

	var err error
	if g.GrantAccess, err = accessgrants.ParseAnswer(grantAccess); err != nil {
		return accessgrants.AccessGrant{}, fmt.Errorf("row %s: grant_access: %w", g.ID, err)
	}
	if g.Accepted, err = accessgrants.ParseAnswer(accepted); err != nil {
		return accessgrants.AccessGrant{}, fmt.Errorf("row %s: accepted: %w", g.ID, err)
	}
	return g, nil
}

// normalizeID: la columna es UUID; un id mal formado no existe (en vez de error 22P02).
func normalizeID(id string) (string, bool) {
	u, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", false
	}
	return u.String(), true
}
