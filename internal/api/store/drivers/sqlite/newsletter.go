package sqlite

import (
	"context"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
)

type newsletterRepo struct {
	db dbtx
}

func (r *newsletterRepo) CreateSubscriber(ctx context.Context, s domain.Subscriber) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO newsletter_subscribers (uuid, email, created_at) VALUES (?, ?, ?)`,
		s.UUID, s.Email, toMillis(s.CreatedAt),
	)
	return mapWriteErr(err)
}

func (r *newsletterRepo) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT uuid, email, created_at FROM newsletter_subscribers ORDER BY created_at, uuid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Subscriber
	for rows.Next() {
		var s domain.Subscriber
		var createdAt int64
		if err := rows.Scan(&s.UUID, &s.Email, &createdAt); err != nil {
			return nil, err
		}
		s.CreatedAt = fromMillis(createdAt)
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *newsletterRepo) DeleteSubscriber(ctx context.Context, uuid string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM newsletter_subscribers WHERE uuid = ?`, uuid))
}
