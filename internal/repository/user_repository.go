package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fmbfi/scholar-portal/internal/model"
	"github.com/fmbfi/scholar-portal/internal/utils"
)

// UserRepo is the credential store: it owns all access to the 'tblusers'
// table. Passwords are bcrypt-hashed before insert; the plain credential
// never reaches the database.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// Create inserts a new account and returns its scholar ID. The email is
// normalized (trimmed, lower-cased) before insert. A duplicate email maps
// to ErrEmailExists whether it is caught here or by the unique constraint,
// so concurrent registrations for the same email resolve atomically at
// the database.
func (r *UserRepo) Create(ctx context.Context, email, password, role string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	// Registration collects only email and password; the display name
	// starts as the email local part and staff can correct it later.
	username := email
	if i := strings.IndexByte(email, '@'); i > 0 {
		username = email[:i]
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO tblusers (username, email, password_hash, role, auditdate) VALUES (?,?,?,?,NOW())",
		username, email, hash, model.DefaultRole(role))
	if err != nil {
		// MySQL 1062 = duplicate entry for a unique key.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an account by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT scholarid,username,email,password_hash,role,auditdate FROM tblusers WHERE email=? LIMIT 1",
		email).Scan(&u.ScholarID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.AuditDate)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// GetByID fetches an account by scholar ID.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT scholarid,username,email,password_hash,role,auditdate FROM tblusers WHERE scholarid=? LIMIT 1",
		id).Scan(&u.ScholarID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.AuditDate)
	if err == sql.ErrNoRows {
		return u, ErrNotFound
	}
	return u, err
}

// List returns all accounts ordered by scholar ID. The password hash is
// not selected; callers receive records safe to expose to admins.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT scholarid,username,email,role,auditdate FROM tblusers ORDER BY scholarid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ScholarID, &u.Username, &u.Email, &u.Role, &u.AuditDate); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
