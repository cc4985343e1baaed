package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/garnizeh/learnprofile/internal/models"
	"github.com/garnizeh/learnprofile/pkg/repository"
)

const userColumns = `id, username, email, first_name, last_name, hashed_password, role, phone_number, is_active, created`

// CreateUser inserts a new user. Email uniqueness is checked before username
// so a request colliding on both reports the email.
func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) (int64, error) {
	if u == nil {
		return 0, fmt.Errorf("user is nil")
	}

	var id int64
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var exists int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, u.Email).Scan(&exists); err != nil {
			return err
		}
		if exists > 0 {
			return repository.ErrDuplicateEmail
		}
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, u.Username).Scan(&exists); err != nil {
			return err
		}
		if exists > 0 {
			return repository.ErrDuplicateUsername
		}

		created := now()
		res, err := tx.ExecContext(ctx,
			`INSERT INTO users (username, email, first_name, last_name, hashed_password, role, phone_number, is_active, created) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			u.Username, u.Email, u.FirstName, u.LastName, u.PasswordHash, nullString(u.Role), u.PhoneNumber, u.IsActive, created)
		if err != nil {
			return mapUniqueViolation(err)
		}
		id, err = res.LastInsertId()
		if err != nil {
			return err
		}
		u.ID = id
		u.Created = created
		return nil
	})
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *SQLiteRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getUser(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *SQLiteRepo) getUser(ctx context.Context, query string, arg any) (*models.User, error) {
	row := r.conn.QueryRow(ctx, query, arg)
	var u models.User
	var role, phone sql.NullString
	if err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash, &role, &phone, &u.IsActive, &u.Created); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	if role.Valid {
		u.Role = role.String
	}
	if phone.Valid {
		p := phone.String
		u.PhoneNumber = &p
	}

	return &u, nil
}

// mapUniqueViolation turns a UNIQUE constraint failure that slipped past the
// pre-checks (a concurrent insert) into the matching conflict error.
func mapUniqueViolation(err error) error {
	var se *msqlite.Error
	if !errors.As(err, &se) || se.Code() != sqlite3.SQLITE_CONSTRAINT_UNIQUE {
		return err
	}
	if strings.Contains(se.Error(), "users.email") {
		return repository.ErrDuplicateEmail
	}
	if strings.Contains(se.Error(), "users.username") {
		return repository.ErrDuplicateUsername
	}
	return fmt.Errorf("%w: %v", repository.ErrConflict, err)
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
