package store

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"inkwell/internal/models"
)

// UserStore handles all user-related database operations.
type UserStore struct {
	db *sql.DB
}

// NewUserStore creates a new UserStore with the given database connection.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, name, password_hash, admin, active, created_at, updated_at`

func scanUser(scanner interface{ Scan(...any) error }) (*models.User, error) {
	var u models.User
	err := scanner.Scan(
		&u.ID, &u.Name, &u.PasswordHash, &u.Admin, &u.Active,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID retrieves a user by id. Returns nil if not found.
func (s *UserStore) FindByID(id int64) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return u, nil
}

// FindByName retrieves a user by their unique name. Returns nil if not found.
func (s *UserStore) FindByName(name string) (*models.User, error) {
	row := s.db.QueryRow(`SELECT `+userColumns+` FROM users WHERE name = $1`, name)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user by name: %w", err)
	}
	return u, nil
}

// Create inserts a new user with a bcrypt-hashed password.
func (s *UserStore) Create(name, password string, admin bool) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	row := s.db.QueryRow(`
		INSERT INTO users (name, password_hash, admin)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		name, string(hash), admin,
	)
	u, err := scanUser(row)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

// Update replaces a user's name, password, and admin flag. The password
// is re-hashed on every save, matching the edit form's full-replace
// semantics. Returns false if no user with that id exists.
func (s *UserStore) Update(id int64, name, password string, admin bool) (bool, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	res, err := s.db.Exec(`
		UPDATE users SET name = $1, password_hash = $2, admin = $3, updated_at = NOW()
		WHERE id = $4
	`, name, string(hash), admin, id)
	if err != nil {
		return false, fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("update user rows: %w", err)
	}
	return n > 0, nil
}

// ListWithPostCounts returns up to limit users with the number of posts
// each has authored, for the admin user table. Users with zero posts are
// included.
func (s *UserStore) ListWithPostCounts(limit int) ([]models.User, error) {
	rows, err := s.db.Query(`
		SELECT u.id, u.name, u.password_hash, u.admin, u.active, u.created_at, u.updated_at,
		       COUNT(pu.id) AS post_count
		FROM users u
		LEFT JOIN post_users pu ON pu.user_id = u.id
		GROUP BY u.id
		ORDER BY u.name
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.PasswordHash, &u.Admin, &u.Active,
			&u.CreatedAt, &u.UpdatedAt, &u.PostCount,
		); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// CheckPassword verifies a plaintext password against the user's stored hash.
func (s *UserStore) CheckPassword(user *models.User, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) == nil
}
