package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/cabwise/dispatch-go/internal/model"
)

var ErrUserNotFound = errors.New("user not found")

const userColumns = `id, public_id, username, email, password_hash, last_active, avatar_hash, confirmed`

// userUpdateColumns is the set of columns a partial user update may touch.
var userUpdateColumns = map[string]bool{
	"username":      true,
	"email":         true,
	"password_hash": true,
	"last_active":   true,
	"avatar_hash":   true,
	"confirmed":     true,
}

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

var _ Store[model.User] = (*UserRepository)(nil)

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the record.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (public_id, username, email, password_hash, last_active, avatar_hash, confirmed)
		VALUES (?, ?, ?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query,
		user.PublicID, user.Username, user.Email, user.PasswordHash,
		user.LastActive, user.AvatarHash, user.Confirmed,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByID retrieves a user by internal numeric id.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByPublicID retrieves a user by public identifier.
func (r *UserRepository) GetByPublicID(ctx context.Context, publicID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE public_id = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, publicID))
}

// GetByUsername retrieves a user by username. Used by the basic-auth and
// login paths.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ?`
	return r.scanUser(r.db.QueryRowContext(ctx, query, username))
}

// List retrieves all users.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.PublicID, &u.Username, &u.Email, &u.PasswordHash,
			&u.LastActive, &u.AvatarHash, &u.Confirmed,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// Update overwrites only the named columns and persists immediately.
func (r *UserRepository) Update(ctx context.Context, id int64, fields map[string]any) error {
	query, args, err := buildUpdate("users", userUpdateColumns, fields, id)
	if err != nil {
		return err
	}
	if query == "" {
		return nil
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// Delete removes a user record.
func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *UserRepository) scanUser(row *sql.Row) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.PublicID, &user.Username, &user.Email, &user.PasswordHash,
		&user.LastActive, &user.AvatarHash, &user.Confirmed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}
