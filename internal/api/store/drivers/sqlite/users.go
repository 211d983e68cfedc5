package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
)

const userColumns = `id, username, email, password_hash, organisation_id, google_id, confirmed_at,
	token_hash, token_purpose, token_expires_at, created_at, updated_at`

type usersRepo struct {
	db dbtx
}

func scanUser(s scanner) (domain.User, error) {
	var u domain.User
	var org, google, tokenHash, purpose sql.NullString
	var confirmed, tokenExpires sql.NullInt64
	var createdAt, updatedAt int64
	if err := s.Scan(
		&u.ID, &u.Username, &u.Email, &u.PasswordHash, &org, &google, &confirmed,
		&tokenHash, &purpose, &tokenExpires, &createdAt, &updatedAt,
	); err != nil {
		return domain.User{}, err
	}

	u.OrganisationID = mapNullStringPtr(org)
	u.GoogleID = mapNullStringPtr(google)
	u.ConfirmedAt = mapNullTimePtr(confirmed)
	u.TokenHash = mapNullStringPtr(tokenHash)
	if purpose.Valid {
		p := domain.TokenPurpose(purpose.String)
		u.TokenPurpose = &p
	}
	u.TokenExpiresAt = mapNullTimePtr(tokenExpires)
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

func (r *usersRepo) getOne(ctx context.Context, where string, args ...any) (domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, args...)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, email, password_hash, organisation_id, google_id,
			confirmed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.Email, u.PasswordHash,
		mapOptionalString(u.OrganisationID), mapOptionalString(u.GoogleID),
		nullMillis(u.ConfirmedAt), toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	)
	return mapWriteErr(err)
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.getOne(ctx, `id = ?`, id)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.getOne(ctx, `email = ?`, email)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return r.getOne(ctx, `username = ?`, username)
}

func (r *usersRepo) GetUserByGoogleID(ctx context.Context, googleID string) (domain.User, error) {
	return r.getOne(ctx, `google_id = ?`, googleID)
}

func (r *usersRepo) GetUserByTokenHash(ctx context.Context, hash string, purpose domain.TokenPurpose) (domain.User, error) {
	return r.getOne(ctx, `token_hash = ? AND token_purpose = ?`, hash, string(purpose))
}

func (r *usersRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) UpdateUsername(ctx context.Context, id, username string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE users SET username = ?, updated_at = ? WHERE id = ?`,
		username, toMillis(at), id,
	))
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, id, hash string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, toMillis(at), id,
	))
}

func (r *usersRepo) SetGoogleID(ctx context.Context, id, googleID string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE users SET google_id = ?, updated_at = ? WHERE id = ?`,
		googleID, toMillis(at), id,
	))
}

func (r *usersRepo) SetToken(ctx context.Context, id, hash string, purpose domain.TokenPurpose, expiresAt, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE users SET token_hash = ?, token_purpose = ?, token_expires_at = ?, updated_at = ?
		WHERE id = ?`,
		hash, string(purpose), toMillis(expiresAt), toMillis(at), id,
	))
}

func (r *usersRepo) ClearToken(ctx context.Context, id string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE users SET token_hash = NULL, token_purpose = NULL, token_expires_at = NULL, updated_at = ?
		WHERE id = ?`,
		toMillis(at), id,
	))
}

func (r *usersRepo) MarkConfirmed(ctx context.Context, id string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE users SET confirmed_at = ?, token_hash = NULL, token_purpose = NULL,
			token_expires_at = NULL, updated_at = ?
		WHERE id = ?`,
		toMillis(at), toMillis(at), id,
	))
}

func (r *usersRepo) DeleteUser(ctx context.Context, id string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id))
}

func (r *usersRepo) ClearExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	return affected(r.db.ExecContext(ctx, `
		UPDATE users SET token_hash = NULL, token_purpose = NULL, token_expires_at = NULL, updated_at = ?
		WHERE token_expires_at IS NOT NULL AND token_expires_at <= ?`,
		toMillis(now), toMillis(now),
	))
}
