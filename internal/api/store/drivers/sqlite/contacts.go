package sqlite

import (
	"context"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
)

const contactColumns = `uuid, name, category, description, email, processed, created_at, updated_at`

type contactsRepo struct {
	db dbtx
}

func scanContact(s scanner) (domain.Contact, error) {
	var c domain.Contact
	var createdAt, updatedAt int64
	if err := s.Scan(
		&c.UUID, &c.Name, &c.Category, &c.Description, &c.Email, &c.Processed, &createdAt, &updatedAt,
	); err != nil {
		return domain.Contact{}, err
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}

func (r *contactsRepo) CreateContact(ctx context.Context, c domain.Contact) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO contacts (uuid, name, category, description, email, processed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		c.UUID, c.Name, c.Category, c.Description, c.Email, c.Processed,
		toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	return mapWriteErr(err)
}

func (r *contactsRepo) GetContact(ctx context.Context, uuid string) (domain.Contact, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contactColumns+` FROM contacts WHERE uuid = ?`, uuid)
	c, err := scanContact(row)
	if err != nil {
		return domain.Contact{}, mapNotFound(err)
	}
	return c, nil
}

func (r *contactsRepo) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+contactColumns+` FROM contacts ORDER BY created_at, uuid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *contactsRepo) UpdateContact(ctx context.Context, c domain.Contact) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE contacts SET name = ?, email = ?, processed = ?, updated_at = ? WHERE uuid = ?`,
		c.Name, c.Email, c.Processed, toMillis(c.UpdatedAt), c.UUID,
	))
}

func (r *contactsRepo) DeleteContact(ctx context.Context, uuid string) error {
	return expectOne(r.db.ExecContext(ctx, `DELETE FROM contacts WHERE uuid = ?`, uuid))
}
