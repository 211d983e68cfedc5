package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
)

const adminColumns = `id, email, password_hash, mfa_secret, mfa_enabled_at, created_at, updated_at`

type adminsRepo struct {
	db dbtx
}

func scanAdmin(s scanner) (domain.Admin, error) {
	var a domain.Admin
	var secret sql.NullString
	var enabledAt sql.NullInt64
	var createdAt, updatedAt int64
	if err := s.Scan(&a.ID, &a.Email, &a.PasswordHash, &secret, &enabledAt, &createdAt, &updatedAt); err != nil {
		return domain.Admin{}, err
	}

	a.MFASecret = mapNullStringPtr(secret)
	a.MFAEnabledAt = mapNullTimePtr(enabledAt)
	a.CreatedAt = fromMillis(createdAt)
	a.UpdatedAt = fromMillis(updatedAt)
	return a, nil
}

func (r *adminsRepo) CreateAdmin(ctx context.Context, a domain.Admin) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO admins (id, email, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.PasswordHash, toMillis(a.CreatedAt), toMillis(a.UpdatedAt),
	)
	return mapWriteErr(err)
}

func (r *adminsRepo) GetAdminByID(ctx context.Context, id string) (domain.Admin, error) {
	a, err := scanAdmin(r.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE id = ?`, id))
	return a, mapNotFound(err)
}

func (r *adminsRepo) GetAdminByEmail(ctx context.Context, email string) (domain.Admin, error) {
	a, err := scanAdmin(r.db.QueryRowContext(ctx, `SELECT `+adminColumns+` FROM admins WHERE email = ?`, email))
	return a, mapNotFound(err)
}

func (r *adminsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var count int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count); err != nil {
		return false, err
	}
	return count == 0, nil
}

func (r *adminsRepo) UpdateMFASecret(ctx context.Context, id, secret string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE admins SET mfa_secret = ?, updated_at = ? WHERE id = ?`,
		secret, toMillis(at), id,
	))
}

func (r *adminsRepo) EnableMFA(ctx context.Context, id string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE admins SET mfa_enabled_at = ?, updated_at = ? WHERE id = ? AND mfa_secret IS NOT NULL`,
		toMillis(at), toMillis(at), id,
	))
}

func (r *adminsRepo) DisableMFA(ctx context.Context, id string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE admins SET mfa_secret = NULL, mfa_enabled_at = NULL, updated_at = ? WHERE id = ?`,
		toMillis(at), id,
	))
}
