package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/videogamed/videogamed/internal/model"
	"github.com/videogamed/videogamed/internal/utils"
)

// ErrEmailExists is returned when registration hits the unique key on
// users.email.
var ErrEmailExists = errors.New("email already exists")

// ErrInvalidCredentials is returned on login when the email is unknown or
// the password does not match. Callers must not distinguish the two cases.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrUserNotFound is returned when a user id has no row.
var ErrUserNotFound = errors.New("user not found")

// UserRepo manages persistence for the users table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id, email, password_hash, username, pfp, created_at, edited_at"

func scanUser(row *sql.Row) (model.User, error) {
	var u model.User
	var edited sql.NullTime
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Username, &u.Pfp, &u.CreatedAt, &edited)
	if err != nil {
		return model.User{}, err
	}
	if edited.Valid {
		u.EditedAt = &edited.Time
	}
	return u, nil
}

// Create inserts a user with a bcrypt-hashed password and returns the stored
// row, including the database defaults for username and pfp. The unique key
// on email turns a duplicate registration into ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password string, cost int) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return model.User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (email, password_hash) VALUES (?,?)",
		email, hash)
	if err != nil {
		if isDuplicate(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// Authenticate fetches the user by normalized email and verifies the
// password against the stored bcrypt hash. An unknown email and a wrong
// password both yield ErrInvalidCredentials.
func (r *UserRepo) Authenticate(ctx context.Context, email, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrInvalidCredentials
		}
		return model.User{}, err
	}
	if !utils.VerifyPassword(u.PasswordHash, password) {
		return model.User{}, ErrInvalidCredentials
	}
	return u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, err
	}
	return u, nil
}

// UpdateUsername changes the display name and stamps edited_at.
func (r *UserRepo) UpdateUsername(ctx context.Context, id uint64, username string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET username=?, edited_at=UTC_TIMESTAMP() WHERE id=?",
		username, id)
	return err
}

// UpdateAvatar changes the profile picture URL and stamps edited_at.
func (r *UserRepo) UpdateAvatar(ctx context.Context, id uint64, url string) error {
	_, err := r.DB.ExecContext(ctx,
		"UPDATE users SET pfp=?, edited_at=UTC_TIMESTAMP() WHERE id=?",
		url, id)
	return err
}
