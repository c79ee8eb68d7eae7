package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"wedding-rsvp/internal/models"
)

// CreateAdminUser stores a new admin account. The caller hashes the password.
func (s *Storage) CreateAdminUser(ctx context.Context, email, passwordHash string) (models.AdminUser, error) {
	u := models.AdminUser{
		ID:           s.newID(),
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	}
	_, err := s.db.ExecContext(ctx, s.rebind(`
		INSERT INTO admin_users (id, email, password_hash, created_at) VALUES (?, ?, ?, ?)
	`), u.ID, u.Email, u.PasswordHash, u.CreatedAt)
	if isUniqueViolation(err) {
		return models.AdminUser{}, ErrDuplicateEmail
	}
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("create admin user: %w", err)
	}
	return u, nil
}

// GetAdminUserByEmail looks an admin up by (case-insensitive) email
func (s *Storage) GetAdminUserByEmail(ctx context.Context, email string) (models.AdminUser, error) {
	return s.getAdminUser(ctx, `email = ?`, strings.ToLower(strings.TrimSpace(email)))
}

// GetAdminUser looks an admin up by id
func (s *Storage) GetAdminUser(ctx context.Context, id string) (models.AdminUser, error) {
	return s.getAdminUser(ctx, `id = ?`, id)
}

func (s *Storage) getAdminUser(ctx context.Context, where string, arg any) (models.AdminUser, error) {
	var u models.AdminUser
	err := s.db.QueryRowContext(ctx, s.rebind(`
		SELECT id, email, password_hash, created_at FROM admin_users WHERE `+where), arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.AdminUser{}, ErrNotFound
	}
	if err != nil {
		return models.AdminUser{}, fmt.Errorf("get admin user: %w", err)
	}
	return u, nil
}
