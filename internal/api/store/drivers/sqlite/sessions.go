package sqlite

import (
	"context"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, token_hash, principal_kind, principal_id, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.TokenHash, string(s.PrincipalKind), s.PrincipalID, toMillis(s.ExpiresAt), toMillis(s.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error) {
	var s domain.Session
	var kind string
	var expiresAt, createdAt int64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, token_hash, principal_kind, principal_id, expires_at, created_at
		FROM sessions WHERE token_hash = ?`, hash,
	).Scan(&s.ID, &s.TokenHash, &kind, &s.PrincipalID, &expiresAt, &createdAt)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}

	s.PrincipalKind = domain.Kind(kind)
	s.ExpiresAt = fromMillis(expiresAt)
	s.CreatedAt = fromMillis(createdAt)
	return s, nil
}

func (r *sessionsRepo) DeleteSessionByTokenHash(ctx context.Context, hash string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = ?`, hash))
}

func (r *sessionsRepo) DeleteSessionsForPrincipal(ctx context.Context, kind domain.Kind, principalID string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM sessions WHERE principal_kind = ? AND principal_id = ?`,
		string(kind), principalID,
	)
	return err
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	return affected(r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`, toMillis(now)))
}
