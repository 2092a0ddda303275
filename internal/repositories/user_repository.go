package repositories

import (
	"database/sql"
	"fmt"

	"gestalba/internal/models"
)

type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int64) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	UpdateProfile(email, name, surname, nif string) (bool, error)
	SetVerified(email string) error
	SetLogo(userID, logoID int64) error
}

type userRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{DB: db}
}

func (r *userRepository) Create(user *models.User) error {
	const q = `
		INSERT INTO users (name, surname, nif, email, password_hash, role, verified)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE)
		RETURNING id, created_at
	`
	role := user.Role
	if role == "" {
		role = models.RoleUser
	}
	err := r.DB.QueryRow(q, user.Name, user.Surname, user.NIF, user.Email, user.PasswordHash, role).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if IsUniqueViolation(err) {
			return err
		}
		return fmt.Errorf("user create: %w", err)
	}
	user.Role = role
	return nil
}

const userColumns = `
	id, COALESCE(name,''), COALESCE(surname,''), COALESCE(nif,''),
	email, password_hash, role, verified, verified_at, logo_id, created_at
`

func (r *userRepository) scanUser(row *sql.Row) (*models.User, error) {
	u := &models.User{}
	var (
		verifiedAt sql.NullTime
		logoID     sql.NullInt64
	)
	err := row.Scan(
		&u.ID, &u.Name, &u.Surname, &u.NIF,
		&u.Email, &u.PasswordHash, &u.Role, &u.Verified, &verifiedAt, &logoID, &u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("user scan: %w", err)
	}
	if verifiedAt.Valid {
		t := verifiedAt.Time
		u.VerifiedAt = &t
	}
	if logoID.Valid {
		id := logoID.Int64
		u.LogoID = &id
	}
	return u, nil
}

func (r *userRepository) GetByID(id int64) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE id=$1`, id))
}

func (r *userRepository) GetByEmail(email string) (*models.User, error) {
	return r.scanUser(r.DB.QueryRow(`SELECT `+userColumns+` FROM users WHERE email=$1`, email))
}

// UpdateProfile fills in the onboarding fields. Returns false when no user
// has that email.
func (r *userRepository) UpdateProfile(email, name, surname, nif string) (bool, error) {
	res, err := r.DB.Exec(`
		UPDATE users SET name=$1, surname=$2, nif=$3 WHERE email=$4
	`, name, surname, nif, email)
	if err != nil {
		return false, fmt.Errorf("user update profile: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *userRepository) SetVerified(email string) error {
	_, err := r.DB.Exec(`
		UPDATE users SET verified=TRUE, verified_at=NOW() WHERE email=$1
	`, email)
	if err != nil {
		return fmt.Errorf("user set verified: %w", err)
	}
	return nil
}

func (r *userRepository) SetLogo(userID, logoID int64) error {
	res, err := r.DB.Exec(`UPDATE users SET logo_id=$1 WHERE id=$2`, logoID, userID)
	if err != nil {
		return fmt.Errorf("user set logo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
