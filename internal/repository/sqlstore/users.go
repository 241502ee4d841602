package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/garnizeh/skillbridge/internal/db"
	"github.com/garnizeh/skillbridge/pkg/models"
	"github.com/google/uuid"
)

const userColumns = `id, email, name, role, password_hash, created_at`

func (r *Repo) CreateUser(ctx context.Context, email, name, role string) (*models.User, error) {
	return r.createUser(ctx, email, name, role, "")
}

func (r *Repo) CreateUserWithPassword(ctx context.Context, email, name, role, passwordHash string) (*models.User, error) {
	return r.createUser(ctx, email, name, role, passwordHash)
}

func (r *Repo) createUser(ctx context.Context, email, name, role, passwordHash string) (*models.User, error) {
	if email == "" {
		return nil, fmt.Errorf("user email is required")
	}
	if role == "" {
		role = models.RoleStudent
	}

	id := uuid.NewString()
	_, err := r.q.Exec(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?)`,
		id, email, name, role, nullString(passwordHash), r.stamp())
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	r.logger.Debug("user created", slog.String("user_id", id))
	return r.GetUserByID(ctx, id)
}

func (r *Repo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *Repo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *Repo) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := r.q.QueryRows(ctx, `SELECT `+userColumns+` FROM users ORDER BY created_at ASC`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, db.Classify(err)
	}
	return out, nil
}

func (r *Repo) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count users: %w", db.Classify(err))
	}
	return n, nil
}

func scanUser(row rowScanner) (*models.User, error) {
	var u models.User
	var pw sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &pw, &u.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, db.Classify(err)
	}
	if pw.Valid {
		u.PasswordHash = pw.String
	}
	return &u, nil
}
