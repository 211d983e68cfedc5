package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
)

const customerColumns = `id, username, email, password_hash, first_name, last_name, phone_number,
	liked_suggestions, created_at, updated_at`

type customersRepo struct {
	db dbtx
}

func scanCustomer(s scanner) (domain.Customer, error) {
	var c domain.Customer
	var liked string
	var createdAt, updatedAt int64
	if err := s.Scan(
		&c.ID, &c.Username, &c.Email, &c.PasswordHash, &c.FirstName, &c.LastName, &c.PhoneNumber,
		&liked, &createdAt, &updatedAt,
	); err != nil {
		return domain.Customer{}, err
	}

	if err := json.Unmarshal([]byte(liked), &c.LikedSuggestions); err != nil {
		return domain.Customer{}, fmt.Errorf("sqlite: customer %s liked_suggestions: %w", c.ID, err)
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}

func encodeLiked(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}
	b, err := json.Marshal(ids)
	return string(b), err
}

func (r *customersRepo) CreateCustomer(ctx context.Context, c domain.Customer) error {
	liked, err := encodeLiked(c.LikedSuggestions)
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, `
		INSERT INTO customers (id, username, email, password_hash, first_name, last_name,
			phone_number, liked_suggestions, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Username, c.Email, c.PasswordHash, c.FirstName, c.LastName, c.PhoneNumber,
		liked, toMillis(c.CreatedAt), toMillis(c.UpdatedAt),
	)
	return mapWriteErr(err)
}

func (r *customersRepo) GetCustomerByID(ctx context.Context, id string) (domain.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = ?`, id))
	return c, mapNotFound(err)
}

func (r *customersRepo) GetCustomerByEmail(ctx context.Context, email string) (domain.Customer, error) {
	c, err := scanCustomer(r.db.QueryRowContext(ctx, `SELECT `+customerColumns+` FROM customers WHERE email = ?`, email))
	return c, mapNotFound(err)
}

func (r *customersRepo) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+customerColumns+` FROM customers ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *customersRepo) UpdateCustomer(ctx context.Context, c domain.Customer) error {
	liked, err := encodeLiked(c.LikedSuggestions)
	if err != nil {
		return err
	}
	return expectOne(r.db.ExecContext(ctx, `
		UPDATE customers SET username = ?, email = ?, first_name = ?, last_name = ?,
			phone_number = ?, liked_suggestions = ?, updated_at = ?
		WHERE id = ?`,
		c.Username, c.Email, c.FirstName, c.LastName, c.PhoneNumber, liked, toMillis(c.UpdatedAt), c.ID,
	))
}

func (r *customersRepo) UpdatePasswordHash(ctx context.Context, id, hash string, at time.Time) error {
	return expectOne(r.db.ExecContext(ctx,
		`UPDATE customers SET password_hash = ?, updated_at = ? WHERE id = ?`,
		hash, toMillis(at), id,
	))
}
